package profile

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bitbites/canteen/internal/dto"
	"github.com/bitbites/canteen/internal/presentation/http/response"
	service "github.com/bitbites/canteen/internal/service/profile"
	"github.com/bitbites/canteen/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/bitbites/canteen/transport/http/profile")

// Handler exposes user profile endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a profile Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/users")
	g.GET("/:userId", h.get)
	g.POST("", h.upsert)
}

func (h *Handler) get(c echo.Context) error {
	b := response.New(c)

	userID := c.Param("userId")

	ctx, span := httpTracer.Start(c.Request().Context(), "users.get", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	profile, err := h.svc.Get(ctx, userID)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewProfileResponse(profile)).Build()
}

func (h *Handler) upsert(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		UserID   string `json:"user_id"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "users.upsert", trace.WithAttributes(attribute.String("user.id", payload.UserID)))
	defer span.End()

	profile, err := h.svc.Upsert(ctx, service.UpsertInput{
		UserID:   payload.UserID,
		Email:    payload.Email,
		Name:     payload.Name,
		Role:     payload.Role,
		Phone:    payload.Phone,
		Location: payload.Location,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewProfileResponse(profile)).Build()
}
