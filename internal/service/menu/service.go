package menu

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

	"github.com/bitbites/canteen/internal/cache"
	"github.com/bitbites/canteen/internal/config"
	"github.com/bitbites/canteen/internal/entity"
	repo "github.com/bitbites/canteen/internal/repository/menu"
	"github.com/bitbites/canteen/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/bitbites/canteen/service/menu")

// CreateInput carries the fields for a new catalog entry (admin/seed path).
type CreateInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       string
	Location    string
	Available   bool
}

// Service exposes the menu catalog, consulting cache for listings.
type Service struct {
	repo     *repo.Repository
	cache    cache.Store
	cacheTTL time.Duration
	sites    config.Sites
	logger   *zap.Logger
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:     p.Repository,
		cache:    p.Cache,
		cacheTTL: p.Config.Cache.DefaultTTL,
		sites:    p.Config.Sites,
		logger:   p.Logger,
	}
}

// List returns available items for a site, or all sites when location is
// empty. Listings are cached per location; catalog edits invalidate them.
func (s *Service) List(ctx context.Context, location string) ([]*entity.MenuItem, error) {
	ctx, span := serviceTracer.Start(ctx, "MenuService.List", trace.WithAttributes(attribute.String("location", location)))
	defer span.End()

	if location != "" && !s.sites.Known(location) {
		return nil, errorbank.BadRequest("unknown location", errorbank.WithDetail("location", location))
	}

	if items, err := s.getFromCache(ctx, location); err == nil {
		return items, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		if s.logger != nil {
			s.logger.Warn("menu cache read failed", zap.String("location", location), zap.Error(err))
		}
	}

	items, err := s.repo.ListAvailable(ctx, location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to load menu", errorbank.WithCause(err))
	}

	if err := s.storeInCache(ctx, location, items); err != nil {
		if s.logger != nil {
			s.logger.Warn("menu cache write failed", zap.String("location", location), zap.Error(err))
		}
	}

	return items, nil
}

// Create adds a catalog entry and drops the affected cached listings.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entity.MenuItem, error) {
	ctx, span := serviceTracer.Start(ctx, "MenuService.Create", trace.WithAttributes(attribute.String("item.name", input.Name)))
	defer span.End()

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errorbank.BadRequest("item name is required")
	}
	if input.Price < 0 {
		return nil, errorbank.BadRequest("item price must not be negative")
	}
	if !entity.ValidCategory(input.Category) {
		return nil, errorbank.BadRequest("unknown category", errorbank.WithDetail("category", input.Category))
	}
	if !s.sites.Known(input.Location) {
		return nil, errorbank.BadRequest("unknown location", errorbank.WithDetail("location", input.Location))
	}

	image := input.Image
	if image == "" {
		image = "/placeholder.svg"
	}

	now := time.Now().UTC()
	item := &entity.MenuItem{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    input.Category,
		Image:       image,
		Location:    input.Location,
		Available:   input.Available,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Unavailable("failed to create menu item", errorbank.WithCause(err))
	}

	s.invalidate(ctx, item.Location)
	s.invalidate(ctx, "")

	return item, nil
}

func (s *Service) cacheKey(location string) string {
	if location == "" {
		return "menu:all"
	}
	return fmt.Sprintf("menu:%s", location)
}

func (s *Service) getFromCache(ctx context.Context, location string) ([]*entity.MenuItem, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(location))
	if err != nil {
		return nil, err
	}
	var items []*entity.MenuItem
	if err := json.Unmarshal(bytes, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) storeInCache(ctx context.Context, location string, items []*entity.MenuItem) error {
	if s.cache == nil {
		return nil
	}
	bytes, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, s.cacheKey(location), bytes, s.cacheTTL)
}

func (s *Service) invalidate(ctx context.Context, location string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(location)); err != nil {
		if s.logger != nil {
			s.logger.Warn("menu cache invalidation failed", zap.String("location", location), zap.Error(err))
		}
	}
}
