package order

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bitbites/canteen/internal/config"
	"github.com/bitbites/canteen/internal/dto"
	"github.com/bitbites/canteen/internal/entity"
	"github.com/bitbites/canteen/internal/presentation/http/response"
	"github.com/bitbites/canteen/internal/refresh"
	repo "github.com/bitbites/canteen/internal/repository/order"
	service "github.com/bitbites/canteen/internal/service/order"
	"github.com/bitbites/canteen/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/bitbites/canteen/transport/http/order")

// Handler exposes order endpoints over HTTP, including the refresh stream
// that staff and client views subscribe to.
type Handler struct {
	svc       *service.Service
	hub       *refresh.Hub
	heartbeat time.Duration
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service, hub *refresh.Hub, cfg config.Config) *Handler {
	return &Handler{
		svc:       svc,
		hub:       hub,
		heartbeat: cfg.Sync.StreamHeartbeat,
	}
}

// Register routes with the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/orders")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("/:id/status", h.updateStatus)
	g.GET("/stream", h.stream)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	filter := repo.Filter{
		Location: c.QueryParam("location"),
		OwnerID:  c.QueryParam("user_id"),
	}
	if raw := c.QueryParam("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := entity.Status(strings.TrimSpace(part))
			if !status.Valid() {
				return b.WithError(errorbank.BadRequest("unknown status", errorbank.WithDetail("status", string(status)))).Build()
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders, err := h.svc.List(ctx, filter)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewOrderResponses(orders)).Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var payload struct {
		Location    string `json:"location"`
		ClientName  string `json:"client_name"`
		ClientPhone string `json:"client_phone"`
		TableNumber string `json:"table_number"`
		UserID      string `json:"user_id"`
		Items       []struct {
			ItemID   int64   `json:"item_id"`
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Quantity int     `json:"quantity"`
		} `json:"items"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	input := service.CreateInput{
		Location:    payload.Location,
		ClientName:  payload.ClientName,
		ClientPhone: payload.ClientPhone,
		TableNumber: payload.TableNumber,
		OwnerID:     payload.UserID,
	}
	for _, item := range payload.Items {
		input.Lines = append(input.Lines, service.LineInput{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(
		attribute.String("order.location", payload.Location),
	))
	defer span.End()

	order, err := h.svc.Create(ctx, input)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) updateStatus(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	var payload struct {
		Status entity.Status `json:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.updateStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status.requested", string(payload.Status)),
	))
	defer span.End()

	order, err := h.svc.Advance(ctx, id, payload.Status)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewOrderResponse(order)).Build()
}

// stream serves the push-mode refresh feed as server-sent events. Each
// event tells the consumer to re-run its query; no order data is pushed.
func (h *Handler) stream(c echo.Context) error {
	location := c.QueryParam("location")
	userID := c.QueryParam("user_id")
	if location == "" && userID == "" {
		return response.New(c).
			WithError(errorbank.BadRequest("location or user_id is required")).
			Build()
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ctx := c.Request().Context()
	sub := h.hub.Subscribe(ctx, refresh.Scope{Location: location, OwnerID: userID})
	defer sub.Close()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sub.C:
			if _, err := fmt.Fprint(w, "event: refresh\ndata: {}\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
