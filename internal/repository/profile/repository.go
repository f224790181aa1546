package profile

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bitbites/canteen/internal/database"
	"github.com/bitbites/canteen/internal/entity"
)

var repoTracer = otel.Tracer("github.com/bitbites/canteen/repository/profile")

// ErrNotFound is returned when no profile exists for a user id.
var ErrNotFound = errors.New("profile not found")

// Repository encapsulates profile access keyed by identity-provider user id.
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

// GetByUserID fetches the profile for an identity-provider user id.
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	ctx, span := repoTracer.Start(ctx, "ProfileRepository.GetByUserID", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	profile := new(entity.Profile)
	err := r.reader.NewSelect().Model(profile).Where("user_id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, err
	}
	return profile, nil
}

// Insert persists a new profile.
func (r *Repository) Insert(ctx context.Context, profile *entity.Profile) error {
	if profile == nil {
		return errors.New("nil profile")
	}
	ctx, span := repoTracer.Start(ctx, "ProfileRepository.Insert", trace.WithAttributes(attribute.String("user.id", profile.UserID)))
	defer span.End()

	_, err := r.writer.NewInsert().Model(profile).Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
	}
	return err
}

// Update rewrites an existing profile row.
func (r *Repository) Update(ctx context.Context, profile *entity.Profile) error {
	if profile == nil {
		return errors.New("nil profile")
	}
	ctx, span := repoTracer.Start(ctx, "ProfileRepository.Update", trace.WithAttributes(attribute.String("user.id", profile.UserID)))
	defer span.End()

	_, err := r.writer.NewUpdate().Model(profile).WherePK().Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
	}
	return err
}
