package menu

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bitbites/canteen/internal/dto"
	"github.com/bitbites/canteen/internal/presentation/http/response"
	service "github.com/bitbites/canteen/internal/service/menu"
	"github.com/bitbites/canteen/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/bitbites/canteen/transport/http/menu")

// Handler exposes menu endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a menu Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/menu")
	g.GET("", h.list)
	g.POST("", h.create)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	location := c.QueryParam("location")

	ctx, span := httpTracer.Start(c.Request().Context(), "menu.list", trace.WithAttributes(attribute.String("location", location)))
	defer span.End()

	items, err := h.svc.List(ctx, location)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewMenuItemResponses(items)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
		Image       string  `json:"image"`
		Location    string  `json:"location"`
		Available   *bool   `json:"available"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	available := true
	if payload.Available != nil {
		available = *payload.Available
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "menu.create", trace.WithAttributes(attribute.String("item.name", payload.Name)))
	defer span.End()

	item, err := h.svc.Create(ctx, service.CreateInput{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Image:       payload.Image,
		Location:    payload.Location,
		Available:   available,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.NewMenuItemResponse(item)).Build()
}
