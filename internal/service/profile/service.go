package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/bitbites/canteen/internal/entity"
	repo "github.com/bitbites/canteen/internal/repository/profile"
	"github.com/bitbites/canteen/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/bitbites/canteen/service/profile")

// UpsertInput carries the fields accepted on profile save. Blank fields
// keep whatever is already stored.
type UpsertInput struct {
	UserID   string
	Email    string
	Name     string
	Role     string
	Phone    string
	Location string
}

// Service manages identity-provider backed profiles.
type Service struct {
	repo   *repo.Repository
	logger *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{repo: p.Repository, logger: p.Logger}
}

// Get fetches the profile for an identity-provider user id.
func (s *Service) Get(ctx context.Context, userID string) (*entity.Profile, error) {
	ctx, span := serviceTracer.Start(ctx, "ProfileService.Get", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound("user not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to load profile", errorbank.WithCause(err))
	}
	return profile, nil
}

// Upsert creates the profile on first save and merges field-by-field on
// later saves, matching the behaviour clients rely on after sign-in.
func (s *Service) Upsert(ctx context.Context, input UpsertInput) (*entity.Profile, error) {
	ctx, span := serviceTracer.Start(ctx, "ProfileService.Upsert", trace.WithAttributes(attribute.String("user.id", input.UserID)))
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return nil, errorbank.BadRequest("user id is required")
	}
	if input.Role != "" && !entity.ValidRole(input.Role) {
		return nil, errorbank.BadRequest("unknown role", errorbank.WithDetail("role", input.Role))
	}

	now := time.Now().UTC()

	existing, err := s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if input.Email != "" {
			existing.Email = input.Email
		}
		if input.Name != "" {
			existing.Name = input.Name
		}
		if input.Role != "" {
			existing.Role = input.Role
		}
		if input.Phone != "" {
			existing.Phone = input.Phone
		}
		if input.Location != "" {
			existing.Location = input.Location
		}
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "repository error")
			return nil, errorbank.Unavailable("failed to update profile", errorbank.WithCause(err))
		}
		return existing, nil

	case errors.Is(err, repo.ErrNotFound):
		if input.Email == "" || input.Name == "" {
			return nil, errorbank.BadRequest("email and name are required for a new profile")
		}
		role := input.Role
		if role == "" {
			role = entity.RoleClient
		}
		profile := &entity.Profile{
			UserID:    userID,
			Email:     input.Email,
			Name:      input.Name,
			Role:      role,
			Phone:     input.Phone,
			Location:  input.Location,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, profile); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "repository error")
			return nil, errorbank.Unavailable("failed to create profile", errorbank.WithCause(err))
		}
		return profile, nil

	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to load profile", errorbank.WithCause(err))
	}
}
