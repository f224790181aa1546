package errorbank

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestStatusCodeByKind(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{BadRequest("bad"), http.StatusBadRequest},
		{InvalidTransition("illegal"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("raced"), http.StatusConflict},
		{Unavailable("down"), http.StatusServiceUnavailable},
		{Internal("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.StatusCode(); got != tc.want {
			t.Fatalf("StatusCode(%s) = %d, want %d", tc.err.Kind(), got, tc.want)
		}
	}
}

func TestGRPCCodeByKind(t *testing.T) {
	cases := []struct {
		err  *AppError
		want codes.Code
	}{
		{BadRequest("bad"), codes.InvalidArgument},
		{InvalidTransition("illegal"), codes.FailedPrecondition},
		{NotFound("missing"), codes.NotFound},
		{Conflict("raced"), codes.Aborted},
		{Unavailable("down"), codes.Unavailable},
	}
	for _, tc := range cases {
		if got := tc.err.GRPCCode(); got != tc.want {
			t.Fatalf("GRPCCode(%s) = %v, want %v", tc.err.Kind(), got, tc.want)
		}
	}
}

func TestFromPreservesAppErrors(t *testing.T) {
	original := NotFound("order not found")
	wrapped := From(original)
	if wrapped != original {
		t.Fatal("From re-wrapped an AppError")
	}

	plain := errors.New("disk full")
	coerced := From(plain)
	if coerced.Kind() != KindInternal {
		t.Fatalf("coerced kind = %s, want internal", coerced.Kind())
	}
	if !errors.Is(coerced, plain) {
		t.Fatal("cause lost during coercion")
	}
}

func TestDetailsAndCause(t *testing.T) {
	cause := errors.New("row missing")
	err := InvalidTransition("cannot move order from ready to pending",
		WithCause(cause),
		WithDetail("current", "ready"),
		WithDetail("requested", "pending"),
	)

	if !errors.Is(err, cause) {
		t.Fatal("Unwrap chain broken")
	}
	details := err.Details()
	if details["current"] != "ready" || details["requested"] != "pending" {
		t.Fatalf("details = %v", details)
	}
}
