package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bitbites/canteen/internal/database"
	"github.com/bitbites/canteen/internal/entity"
)

var repoTracer = otel.Tracer("github.com/bitbites/canteen/repository/order")

// ErrNotFound is returned when an order is missing.
var ErrNotFound = errors.New("order not found")

// Filter narrows a listing. Zero fields are ignored.
type Filter struct {
	Location string
	OwnerID  string
	Statuses []entity.Status
}

// Repository encapsulates read/write access for orders and their lines.
type Repository struct {
	writer *bun.DB
	reader *bun.DB
}

// NewRepository wires a repository backed by configured database connections.
func NewRepository(conns *database.Connections) *Repository {
	return &Repository{
		writer: conns.Writer,
		reader: conns.Reader,
	}
}

// Create persists a new order and its lines in one transaction.
func (r *Repository) Create(ctx context.Context, order *entity.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(attribute.String("order.token", order.Token)))
	defer span.End()

	err := r.writer.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return err
		}
		for _, line := range order.Lines {
			line.OrderID = order.ID
		}
		if len(order.Lines) > 0 {
			if _, err := tx.NewInsert().Model(&order.Lines).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// GetByID fetches an order with its lines, using the read replica when available.
func (r *Repository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order := new(entity.Order)
	err := r.reader.NewSelect().Model(order).Relation("Lines").Where("o.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return order, nil
}

// List returns orders matching the filter, newest first. Equal creation
// timestamps fall back to id so later insertions still list first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.List", trace.WithAttributes(attribute.String("filter.location", filter.Location)))
	defer span.End()

	var orders []*entity.Order
	q := r.reader.NewSelect().Model(&orders).Relation("Lines")
	if filter.Location != "" {
		q = q.Where("o.location = ?", filter.Location)
	}
	if filter.OwnerID != "" {
		q = q.Where("o.owner_id = ?", filter.OwnerID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("o.status IN (?)", bun.In(filter.Statuses))
	}
	q = q.Order("created_at DESC", "id DESC")

	if err := q.Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return orders, nil
}

// AdvanceStatus performs the conditional transition write: the status
// column is only set when it still holds the expected predecessor. It
// returns the number of rows updated; zero with a live order means a
// concurrent writer got there first.
func (r *Repository) AdvanceStatus(ctx context.Context, id int64, from, to entity.Status, at time.Time) (int64, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.AdvanceStatus", trace.WithAttributes(
		attribute.Int64("order.id", id),
		attribute.String("order.status.from", string(from)),
		attribute.String("order.status.to", string(to)),
	))
	defer span.End()

	res, err := r.writer.NewUpdate().
		Model((*entity.Order)(nil)).
		Set("status = ?", to).
		Set("updated_at = ?", at).
		Where("id = ?", id).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return affected, nil
}
