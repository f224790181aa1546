package menu

import (
	"context"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bitbites/canteen/internal/database"
	"github.com/bitbites/canteen/internal/entity"
)

var repoTracer = otel.Tracer("github.com/bitbites/canteen/repository/menu")

// Repository encapsulates catalog access.
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

// ListAvailable returns available items, optionally narrowed to one site.
func (r *Repository) ListAvailable(ctx context.Context, location string) ([]*entity.MenuItem, error) {
	ctx, span := repoTracer.Start(ctx, "MenuRepository.ListAvailable", trace.WithAttributes(attribute.String("location", location)))
	defer span.End()

	var items []*entity.MenuItem
	q := r.reader.NewSelect().Model(&items).Where("available = TRUE")
	if location != "" {
		q = q.Where("location = ?", location)
	}
	if err := q.Order("id ASC").Scan(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return items, nil
}

// Create persists a new menu item using the write connection.
func (r *Repository) Create(ctx context.Context, item *entity.MenuItem) error {
	if item == nil {
		return errors.New("nil menu item")
	}
	ctx, span := repoTracer.Start(ctx, "MenuRepository.Create", trace.WithAttributes(attribute.String("item.name", item.Name)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(item).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}
