package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bitbites/canteen/internal/config"
	"github.com/bitbites/canteen/internal/messaging"
	"github.com/bitbites/canteen/internal/refresh"
	ordersvc "github.com/bitbites/canteen/internal/service/order"
	"github.com/bitbites/canteen/internal/worker"
)

var workerTracer = otel.Tracer("github.com/bitbites/canteen/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderEventHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderEventHandler consumes order events from the bus and turns them
// into refresh signals, so views subscribed on another instance than the
// one that took the write still learn about the change.
func NewOrderEventHandler(logger *zap.Logger, cfg config.Config, hub *refresh.Hub) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		_, span := workerTracer.Start(ctx, "worker.orders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event ordersvc.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		hub.Notify(refresh.Event{
			OrderID:  event.ID,
			Location: event.Location,
			OwnerID:  event.OwnerID,
			Status:   event.Status,
		})

		logger.Info("order event processed",
			zap.String("type", event.Type),
			zap.Int64("id", event.ID),
			zap.String("location", event.Location),
			zap.String("status", string(event.Status)),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
