package ports

import (
	"context"

	"banner-service/internal/core/database"
	"banner-service/internal/core/entity"
	"banner-service/internal/core/i18n"
	"banner-service/internal/features/banners/domain"
	catalog "banner-service/internal/features/catalog/domain"
)

// BannerService defines the primary port for banner operations.
type BannerService interface {
	FindOne(ctx context.Context, id entity.ID, includeDisabled bool) (*domain.Banner, error)
	FindByName(ctx context.Context, name string) (*domain.Banner, error)
	FindAll(ctx context.Context, opts domain.ListOptions) (domain.PaginatedList[domain.Banner], error)
	Create(ctx context.Context, input domain.CreateBannerInput) (*domain.Banner, error)
	Update(ctx context.Context, input domain.UpdateBannerInput) (*domain.Banner, error)
	Delete(ctx context.Context, id entity.ID) (bool, error)
	DeleteSection(ctx context.Context, id entity.ID) (bool, error)
}

// BannerQuery narrows a single banner lookup.
type BannerQuery struct {
	IncludeDisabled bool
}

// BannerRepository defines the secondary port for banner storage. Every
// call runs on the given unit of work.
type BannerRepository interface {
	GetBanner(ctx context.Context, tx database.Tx, id entity.ID, q BannerQuery) (*domain.Banner, error)
	GetBannerByName(ctx context.Context, tx database.Tx, name string, q BannerQuery) (*domain.Banner, error)
	GetSections(ctx context.Context, tx database.Tx, ids []entity.ID) ([]domain.BannerSection, error)
	List(ctx context.Context, tx database.Tx, opts domain.ListOptions) ([]domain.Banner, int64, error)
	Save(ctx context.Context, tx database.Tx, banner *domain.Banner, syncSections bool) error
	DeleteBanner(ctx context.Context, tx database.Tx, id entity.ID) (int64, error)
	DeleteSection(ctx context.Context, tx database.Tx, id entity.ID) (int64, error)
}

// Transactor scopes a unit of work. Reader serves lookups that run outside
// of one.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx database.Tx) error) error
	Reader() database.Tx
}

// EntityResolver loads catalog entities a section references.
type EntityResolver interface {
	GetOrFail(ctx context.Context, kind catalog.Kind, id entity.ID) (catalog.Entity, error)
}

// Translator flattens the translation for code onto the section.
type Translator interface {
	Translate(section *domain.BannerSection, code i18n.LanguageCode)
}
