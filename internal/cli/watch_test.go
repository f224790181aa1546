package cli

import (
	"strings"
	"testing"

	"github.com/bitbites/canteen/internal/entity"
)

func TestRenderOrderBoard(t *testing.T) {
	out := renderOrderBoard([]*entity.Order{
		{Token: "MED-101", Status: entity.StatusPending, Total: 285, ClientName: "John Doe"},
		{Token: "MED-102", Status: entity.StatusPreparing, Total: 150, ClientName: "Jane Smith"},
	})

	if !strings.HasPrefix(out, "-- 2 order(s) --\n") {
		t.Fatalf("missing header: %q", out)
	}
	first := strings.Index(out, "MED-101")
	second := strings.Index(out, "MED-102")
	if first < 0 || second < 0 {
		t.Fatalf("tokens missing from board: %q", out)
	}
	if first > second {
		t.Fatal("board does not preserve listing order")
	}
	if !strings.Contains(out, "pending") || !strings.Contains(out, "preparing") {
		t.Fatalf("statuses missing from board: %q", out)
	}
}

func TestRenderOrderBoardEmpty(t *testing.T) {
	out := renderOrderBoard(nil)
	if out != "-- 0 order(s) --\n" {
		t.Fatalf("empty board = %q", out)
	}
}
