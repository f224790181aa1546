package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bitbites/canteen/internal/config"
	"github.com/bitbites/canteen/internal/entity"
	"github.com/bitbites/canteen/internal/messaging"
	"github.com/bitbites/canteen/internal/refresh"
	repo "github.com/bitbites/canteen/internal/repository/order"
	"github.com/bitbites/canteen/internal/token"
	"github.com/bitbites/canteen/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/bitbites/canteen/service/order")

// Store is the persistence surface the lifecycle engine needs.
type Store interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	List(ctx context.Context, filter repo.Filter) ([]*entity.Order, error)
	AdvanceStatus(ctx context.Context, id int64, from, to entity.Status, at time.Time) (int64, error)
}

// LineInput is one cart line handed over at checkout. Name and Price are
// the menu snapshot values; they are stored as-is.
type LineInput struct {
	ItemID   int64
	Name     string
	Price    float64
	Quantity int
}

// CreateInput carries everything needed to submit an order.
type CreateInput struct {
	Location    string
	ClientName  string
	ClientPhone string
	TableNumber string
	OwnerID     string
	Lines       []LineInput
}

// Service is the order lifecycle engine: it owns creation, the
// forward-only status pipeline, and listing.
type Service struct {
	store     Store
	tokens    *token.Generator
	hub       *refresh.Hub
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
	now       func() time.Time
}

// messagingConfig contains messaging specific knobs we care about.
type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Tokens     *token.Generator
	Hub        *refresh.Hub
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		store:     p.Repository,
		tokens:    p.Tokens,
		hub:       p.Hub,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
		now: time.Now,
	}
}

// Create validates checkout input, assigns a pickup token, computes the
// total once, and persists the order in its initial pending state. The
// stored record, id included, is returned. On any error the caller must
// assume nothing was created and keep the cart for retry.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(attribute.String("order.location", input.Location)))
	defer span.End()

	clientName := strings.TrimSpace(input.ClientName)
	if clientName == "" {
		return nil, errorbank.BadRequest("client name is required")
	}
	if len(input.Lines) == 0 {
		return nil, errorbank.BadRequest("order must contain at least one item")
	}
	if !s.tokens.Known(input.Location) {
		return nil, errorbank.BadRequest("unknown location", errorbank.WithDetail("location", input.Location))
	}

	total := 0.0
	lines := make([]*entity.OrderLine, 0, len(input.Lines))
	for _, in := range input.Lines {
		if in.Quantity < 1 {
			return nil, errorbank.BadRequest("item quantity must be at least 1", errorbank.WithDetail("item", in.Name))
		}
		if in.Price < 0 {
			return nil, errorbank.BadRequest("item price must not be negative", errorbank.WithDetail("item", in.Name))
		}
		lines = append(lines, &entity.OrderLine{
			ItemID:   in.ItemID,
			Name:     in.Name,
			Price:    in.Price,
			Quantity: in.Quantity,
		})
		total += in.Price * float64(in.Quantity)
	}

	pickup, err := s.tokens.Pickup(input.Location)
	if err != nil {
		return nil, errorbank.BadRequest("unknown location", errorbank.WithCause(err))
	}

	now := s.now().UTC()
	order := &entity.Order{
		Token:       pickup,
		Location:    input.Location,
		Total:       total,
		Status:      entity.StatusPending,
		ClientName:  clientName,
		ClientPhone: strings.TrimSpace(input.ClientPhone),
		TableNumber: strings.TrimSpace(input.TableNumber),
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Lines:       lines,
	}

	if err := s.store.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to create order", errorbank.WithCause(err))
	}

	s.publishEvent(ctx, Event{
		Type:       EventOrderCreated,
		ID:         order.ID,
		Token:      order.Token,
		Location:   order.Location,
		OwnerID:    order.OwnerID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: now,
	})
	s.notify(order)

	return order, nil
}

// Advance moves an order to the requested status, which must be the single
// immediate successor of its current status. The write is conditional on
// the status still being the predecessor so racing staff actions surface
// as a Conflict rather than silently overwriting each other.
func (s *Service) Advance(ctx context.Context, id int64, requested entity.Status) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Advance", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status.requested", string(requested)),
	))
	defer span.End()

	if !requested.Valid() {
		return nil, errorbank.BadRequest("unknown status", errorbank.WithDetail("status", string(requested)))
	}

	order, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to load order", errorbank.WithCause(err))
	}

	current := order.Status
	if !current.CanTransition(requested) {
		return nil, errorbank.InvalidTransition(
			fmt.Sprintf("cannot move order from %s to %s", current, requested),
			errorbank.WithDetail("current", string(current)),
			errorbank.WithDetail("requested", string(requested)),
		)
	}

	now := s.now().UTC()
	affected, err := s.store.AdvanceStatus(ctx, id, current, requested, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to update order", errorbank.WithCause(err))
	}
	if affected == 0 {
		return nil, errorbank.Conflict("order was updated concurrently",
			errorbank.WithDetail("expected", string(current)),
		)
	}

	order.Status = requested
	order.UpdatedAt = now

	s.publishEvent(ctx, Event{
		Type:       EventOrderStatusChanged,
		ID:         order.ID,
		Token:      order.Token,
		Location:   order.Location,
		OwnerID:    order.OwnerID,
		Status:     requested,
		PrevStatus: current,
		OccurredAt: now,
	})
	s.notify(order)

	if s.logger != nil {
		s.logger.Info("order advanced",
			zap.Int64("id", order.ID),
			zap.String("from", string(current)),
			zap.String("to", string(requested)),
		)
	}

	return order, nil
}

// List returns orders matching the filter, newest first.
func (s *Service) List(ctx context.Context, filter repo.Filter) ([]*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	orders, err := s.store.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to list orders", errorbank.WithCause(err))
	}
	return orders, nil
}

func (s *Service) notify(order *entity.Order) {
	if s.hub == nil {
		return
	}
	s.hub.Notify(refresh.Event{
		OrderID:  order.ID,
		Location: order.Location,
		OwnerID:  order.OwnerID,
		Status:   order.Status,
	})
}

func (s *Service) publishEvent(ctx context.Context, event Event) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("marshal order event", zap.Error(err))
		}
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", event.ID)), payload); err != nil {
		if s.logger != nil {
			s.logger.Error("publish order event", zap.Error(err), zap.String("type", event.Type))
		}
	}
}
