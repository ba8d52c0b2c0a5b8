package adapters

import (
	"context"
	"errors"
	"fmt"

	"banner-service/internal/core/entity"
	"banner-service/internal/features/catalog/domain"

	"gorm.io/gorm"
)

// GormResolver looks catalog entities up by id in the platform tables.
type GormResolver struct {
	db *gorm.DB
}

// NewGormResolver creates a new GormResolver.
func NewGormResolver(db *gorm.DB) *GormResolver {
	return &GormResolver{db: db}
}

// GetOrFail returns the entity of the given kind or a NotFoundError.
func (r *GormResolver) GetOrFail(ctx context.Context, kind domain.Kind, id entity.ID) (domain.Entity, error) {
	switch kind {
	case domain.KindAsset:
		return first[domain.Asset](ctx, r.db, kind, id)
	case domain.KindProduct:
		return first[domain.Product](ctx, r.db, kind, id)
	case domain.KindCollection:
		return first[domain.Collection](ctx, r.db, kind, id)
	default:
		return nil, fmt.Errorf("%w: unknown entity kind %q", entity.ErrValidation, kind)
	}
}

func first[T any, PT interface {
	*T
	domain.Entity
}](ctx context.Context, db *gorm.DB, kind domain.Kind, id entity.ID) (domain.Entity, error) {
	var row T
	err := db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.NewNotFound(string(kind), id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %s: %w", kind, id, err)
	}
	return PT(&row), nil
}
