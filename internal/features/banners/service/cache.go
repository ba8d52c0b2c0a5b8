package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"banner-service/internal/core/cache"
	"banner-service/internal/core/entity"
	"banner-service/internal/core/i18n"
	"banner-service/internal/core/logger"
	"banner-service/internal/features/banners/domain"
	"banner-service/internal/features/banners/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const generationKey = "banners:gen"

// CachedBannerService caches the shop reads of a ports.BannerService.
// Every successful write rotates a generation token that is part of each
// key, so earlier entries are never read again and simply expire.
type CachedBannerService struct {
	ports.BannerService
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedBannerService wraps next with a read cache.
func NewCachedBannerService(next ports.BannerService, c cache.Cache, ttl time.Duration) *CachedBannerService {
	return &CachedBannerService{
		BannerService: next,
		cache:         c,
		ttl:           ttl,
	}
}

// FindOne serves enabled-only lookups from the cache.
func (s *CachedBannerService) FindOne(ctx context.Context, id entity.ID, includeDisabled bool) (*domain.Banner, error) {
	if includeDisabled {
		return s.BannerService.FindOne(ctx, id, includeDisabled)
	}
	return s.cached(ctx, "id", id.String(), func() (*domain.Banner, error) {
		return s.BannerService.FindOne(ctx, id, false)
	})
}

// FindByName serves lookups from the cache.
func (s *CachedBannerService) FindByName(ctx context.Context, name string) (*domain.Banner, error) {
	return s.cached(ctx, "name", name, func() (*domain.Banner, error) {
		return s.BannerService.FindByName(ctx, name)
	})
}

func (s *CachedBannerService) Create(ctx context.Context, input domain.CreateBannerInput) (*domain.Banner, error) {
	banner, err := s.BannerService.Create(ctx, input)
	if err == nil {
		s.invalidate(ctx)
	}
	return banner, err
}

func (s *CachedBannerService) Update(ctx context.Context, input domain.UpdateBannerInput) (*domain.Banner, error) {
	banner, err := s.BannerService.Update(ctx, input)
	if err == nil {
		s.invalidate(ctx)
	}
	return banner, err
}

func (s *CachedBannerService) Delete(ctx context.Context, id entity.ID) (bool, error) {
	deleted, err := s.BannerService.Delete(ctx, id)
	if err == nil && deleted {
		s.invalidate(ctx)
	}
	return deleted, err
}

func (s *CachedBannerService) DeleteSection(ctx context.Context, id entity.ID) (bool, error) {
	deleted, err := s.BannerService.DeleteSection(ctx, id)
	if err == nil && deleted {
		s.invalidate(ctx)
	}
	return deleted, err
}

func (s *CachedBannerService) cached(ctx context.Context, kind, value string, load func() (*domain.Banner, error)) (*domain.Banner, error) {
	key := s.key(ctx, kind, value)

	data, err := s.cache.Get(ctx, key)
	if err == nil {
		var banner domain.Banner
		if err := json.Unmarshal(data, &banner); err == nil {
			return &banner, nil
		}
		logger.Get().Warn("Discarding unreadable cached banner", zap.String("key", key))
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Get().Warn("Banner cache read failed", zap.String("key", key), zap.Error(err))
	}

	banner, err := load()
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(banner)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal banner: %w", err)
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.Get().Warn("Banner cache write failed", zap.String("key", key), zap.Error(err))
	}
	return banner, nil
}

func (s *CachedBannerService) key(ctx context.Context, kind, value string) string {
	gen := "0"
	if data, err := s.cache.Get(ctx, generationKey); err == nil {
		gen = string(data)
	}

	lang := "default"
	if code, ok := i18n.FromContext(ctx); ok {
		lang = code.String()
	}
	return fmt.Sprintf("banners:%s:%s:%s:%s", gen, kind, lang, value)
}

func (s *CachedBannerService) invalidate(ctx context.Context) {
	if err := s.cache.Set(ctx, generationKey, []byte(uuid.NewString()), 0); err != nil {
		logger.Get().Error("Failed to invalidate banner cache", zap.Error(err))
	}
}
