package adapters

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"banner-service/internal/core/database"
	"banner-service/internal/core/entity"
	"banner-service/internal/features/banners/domain"
	"banner-service/internal/features/banners/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	bannerColumns      = []string{"name", "enabled", "updated_at"}
	sectionColumns     = []string{"banner_id", "position", "external_link", "asset_id", "product_id", "collection_id", "updated_at"}
	translationColumns = []string{"language_code", "title", "description", "call_to_action", "updated_at"}
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormBannerRepository implements ports.BannerRepository on a relational
// store. It holds no handle of its own; every call uses the given Tx.
type GormBannerRepository struct{}

// NewGormBannerRepository creates a new GormBannerRepository.
func NewGormBannerRepository() *GormBannerRepository {
	return &GormBannerRepository{}
}

// GetBanner loads a banner with its sections, their translations and
// catalog references.
func (r *GormBannerRepository) GetBanner(ctx context.Context, tx database.Tx, id entity.ID, q ports.BannerQuery) (*domain.Banner, error) {
	query := withSections(tx.DB(ctx)).Where("id = ?", id)
	if !q.IncludeDisabled {
		query = query.Where("enabled = ?", true)
	}

	var banner domain.Banner
	if err := query.First(&banner).Error; err != nil {
		return nil, translateError(err, "Banner", id.String())
	}
	return &banner, nil
}

// GetBannerByName loads the banner row only.
func (r *GormBannerRepository) GetBannerByName(ctx context.Context, tx database.Tx, name string, q ports.BannerQuery) (*domain.Banner, error) {
	query := tx.DB(ctx).Where("name = ?", name)
	if !q.IncludeDisabled {
		query = query.Where("enabled = ?", true)
	}

	var banner domain.Banner
	if err := query.First(&banner).Error; err != nil {
		return nil, translateError(err, "Banner", name)
	}
	return &banner, nil
}

// GetSections bulk loads sections with translations. Missing ids are
// simply absent from the result.
func (r *GormBannerRepository) GetSections(ctx context.Context, tx database.Tx, ids []entity.ID) ([]domain.BannerSection, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var sections []domain.BannerSection
	err := tx.DB(ctx).
		Preload("Translations", orderByCreation).
		Where("id IN ?", ids).
		Find(&sections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load banner sections: %w", err)
	}
	return sections, nil
}

// List returns one page of banners and the total matching the filter.
func (r *GormBannerRepository) List(ctx context.Context, tx database.Tx, opts domain.ListOptions) ([]domain.Banner, int64, error) {
	filter := filterScope(opts.Filter, opts.FilterOperator)

	var total int64
	if err := tx.DB(ctx).Model(&domain.Banner{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count banners: %w", err)
	}

	var banners []domain.Banner
	err := withSections(tx.DB(ctx)).
		Scopes(filter).
		Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: opts.Sort.Column()},
			Desc:   opts.Order == domain.SortDesc,
		}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}}).
		Offset(opts.Skip).
		Limit(opts.Take).
		Find(&banners).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, total, nil
}

// Save writes the banner row. With syncSections the stored sections and
// translations are made to match banner.Sections exactly: rows absent from
// it are deleted, new ones inserted and the rest updated.
func (r *GormBannerRepository) Save(ctx context.Context, tx database.Tx, banner *domain.Banner, syncSections bool) error {
	db := writer(ctx, tx)

	var err error
	if banner.IsNew() {
		err = db.Create(banner).Error
	} else {
		err = db.Model(banner).Select(bannerColumns).Updates(banner).Error
	}
	if err != nil {
		return translateError(err, "Banner", banner.Name)
	}

	if !syncSections {
		return nil
	}
	return r.syncSections(ctx, tx, banner)
}

func (r *GormBannerRepository) syncSections(ctx context.Context, tx database.Tx, banner *domain.Banner) error {
	keep := make([]entity.ID, 0, len(banner.Sections))
	for _, s := range banner.Sections {
		if !s.IsNew() {
			keep = append(keep, s.ID)
		}
	}

	var removed []entity.ID
	query := tx.DB(ctx).Model(&domain.BannerSection{}).Where("banner_id = ?", banner.ID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	if err := query.Pluck("id", &removed).Error; err != nil {
		return fmt.Errorf("failed to find removed sections: %w", err)
	}
	if _, err := deleteSections(tx.DB(ctx), removed); err != nil {
		return err
	}

	db := writer(ctx, tx)
	for i := range banner.Sections {
		section := &banner.Sections[i]
		section.BannerID = banner.ID

		var err error
		if section.IsNew() {
			err = db.Create(section).Error
		} else {
			err = db.Model(section).Select(sectionColumns).Updates(section).Error
		}
		if err != nil {
			return translateError(err, "BannerSection", section.ID.String())
		}

		if err := r.syncTranslations(ctx, tx, section); err != nil {
			return err
		}
	}
	return nil
}

func (r *GormBannerRepository) syncTranslations(ctx context.Context, tx database.Tx, section *domain.BannerSection) error {
	keep := make([]entity.ID, 0, len(section.Translations))
	for _, t := range section.Translations {
		if !t.IsNew() {
			keep = append(keep, t.ID)
		}
	}

	del := tx.DB(ctx).Where("section_id = ?", section.ID)
	if len(keep) > 0 {
		del = del.Where("id NOT IN ?", keep)
	}
	if err := del.Delete(&domain.BannerSectionTranslation{}).Error; err != nil {
		return fmt.Errorf("failed to delete stale translations: %w", err)
	}

	db := writer(ctx, tx)
	for i := range section.Translations {
		t := &section.Translations[i]
		t.SectionID = section.ID

		var err error
		if t.IsNew() {
			err = db.Create(t).Error
		} else {
			err = db.Model(t).Select(translationColumns).Updates(t).Error
		}
		if err != nil {
			return translateError(err, "BannerSectionTranslation", t.ID.String())
		}
	}
	return nil
}

// DeleteBanner removes a banner with its sections and translations.
func (r *GormBannerRepository) DeleteBanner(ctx context.Context, tx database.Tx, id entity.ID) (int64, error) {
	var sectionIDs []entity.ID
	if err := tx.DB(ctx).Model(&domain.BannerSection{}).Where("banner_id = ?", id).Pluck("id", &sectionIDs).Error; err != nil {
		return 0, fmt.Errorf("failed to find banner sections: %w", err)
	}
	if _, err := deleteSections(tx.DB(ctx), sectionIDs); err != nil {
		return 0, err
	}

	res := tx.DB(ctx).Where("id = ?", id).Delete(&domain.Banner{})
	if res.Error != nil {
		return 0, translateError(res.Error, "Banner", id.String())
	}
	return res.RowsAffected, nil
}

// DeleteSection removes one section and its translations.
func (r *GormBannerRepository) DeleteSection(ctx context.Context, tx database.Tx, id entity.ID) (int64, error) {
	return deleteSections(tx.DB(ctx), []entity.ID{id})
}

func deleteSections(db *gorm.DB, ids []entity.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if err := db.Where("section_id IN ?", ids).Delete(&domain.BannerSectionTranslation{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete section translations: %w", err)
	}
	res := db.Where("id IN ?", ids).Delete(&domain.BannerSection{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete sections: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// writer returns a reusable handle that never cascades writes into
// associations.
func writer(ctx context.Context, tx database.Tx) *gorm.DB {
	return tx.DB(ctx).Omit(clause.Associations).Session(&gorm.Session{})
}

func withSections(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC").Order("created_at ASC").Order("id ASC")
		}).
		Preload("Sections.Translations", orderByCreation).
		Preload("Sections.Asset").
		Preload("Sections.Product").
		Preload("Sections.Collection")
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func filterScope(f domain.BannerFilter, op domain.LogicalOperator) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		var exprs []clause.Expression
		if f.NameEq != nil {
			exprs = append(exprs, clause.Eq{Column: clause.Column{Name: "name"}, Value: *f.NameEq})
		}
		if f.NameContains != nil {
			exprs = append(exprs, clause.Expr{
				SQL:  `LOWER(name) LIKE ? ESCAPE '\'`,
				Vars: []interface{}{"%" + likeEscaper.Replace(strings.ToLower(*f.NameContains)) + "%"},
			})
		}
		if f.Enabled != nil {
			exprs = append(exprs, clause.Eq{Column: clause.Column{Name: "enabled"}, Value: *f.Enabled})
		}

		switch {
		case len(exprs) == 0:
			return db
		case op == domain.OperatorOr:
			return db.Where(clause.Or(exprs...))
		default:
			return db.Where(clause.And(exprs...))
		}
	}
}

func translateError(err error, entityName, key string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &domain.NotFoundError{Entity: entityName, Key: key}
	case database.IsUniqueViolation(err) && entityName == "Banner":
		return fmt.Errorf("%w: %q", domain.ErrDuplicateName, key)
	case database.IsUniqueViolation(err), database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s %s: %v", domain.ErrConstraintViolation, entityName, key, err)
	default:
		return fmt.Errorf("failed to persist %s %s: %w", entityName, key, err)
	}
}
