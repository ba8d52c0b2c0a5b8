package service

import (
	"context"
	"fmt"

	"banner-service/internal/core/database"
	"banner-service/internal/core/entity"
	"banner-service/internal/core/i18n"
	"banner-service/internal/core/logger"
	"banner-service/internal/features/banners/domain"
	"banner-service/internal/features/banners/ports"
	catalog "banner-service/internal/features/catalog/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BannerServiceImpl implements ports.BannerService.
type BannerServiceImpl struct {
	repo       ports.BannerRepository
	tx         ports.Transactor
	resolver   ports.EntityResolver
	translator ports.Translator
}

// NewBannerService creates a new BannerServiceImpl.
func NewBannerService(repo ports.BannerRepository, tx ports.Transactor, resolver ports.EntityResolver, translator ports.Translator) *BannerServiceImpl {
	return &BannerServiceImpl{
		repo:       repo,
		tx:         tx,
		resolver:   resolver,
		translator: translator,
	}
}

// FindOne returns the banner with its sections translated to the caller's
// language and sorted by position. Disabled banners are not found unless
// includeDisabled is set.
func (s *BannerServiceImpl) FindOne(ctx context.Context, id entity.ID, includeDisabled bool) (*domain.Banner, error) {
	banner, err := s.repo.GetBanner(ctx, s.tx.Reader(), id, ports.BannerQuery{IncludeDisabled: includeDisabled})
	if err != nil {
		return nil, fmt.Errorf("service: failed to find banner: %w", err)
	}

	s.assemble(ctx, banner)
	return banner, nil
}

// FindByName returns the enabled banner with the given name.
func (s *BannerServiceImpl) FindByName(ctx context.Context, name string) (*domain.Banner, error) {
	banner, err := s.repo.GetBannerByName(ctx, s.tx.Reader(), name, ports.BannerQuery{})
	if err != nil {
		return nil, fmt.Errorf("service: failed to find banner by name: %w", err)
	}

	return s.FindOne(ctx, banner.ID, false)
}

// FindAll returns a page of banners matching opts.
func (s *BannerServiceImpl) FindAll(ctx context.Context, opts domain.ListOptions) (domain.PaginatedList[domain.Banner], error) {
	opts = opts.Normalized()
	if err := opts.Validate(); err != nil {
		return domain.PaginatedList[domain.Banner]{}, domain.NewValidationError(err)
	}

	banners, total, err := s.repo.List(ctx, s.tx.Reader(), opts)
	if err != nil {
		return domain.PaginatedList[domain.Banner]{}, fmt.Errorf("service: failed to list banners: %w", err)
	}

	for i := range banners {
		s.assemble(ctx, &banners[i])
	}
	if banners == nil {
		banners = []domain.Banner{}
	}
	return domain.PaginatedList[domain.Banner]{Items: banners, TotalItems: total}, nil
}

// Create persists a new banner with its sections in one transaction.
func (s *BannerServiceImpl) Create(ctx context.Context, input domain.CreateBannerInput) (*domain.Banner, error) {
	if err := input.Validate(); err != nil {
		return nil, domain.NewValidationError(err)
	}

	refs, err := s.resolveRefs(ctx, input.Sections)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve section references: %w", err)
	}

	banner := &domain.Banner{Name: input.Name, Enabled: true}
	domain.ApplyBannerInput(banner, nil, input.Enabled)
	for i, in := range input.Sections {
		section := domain.NewSection(banner.ID, in, refs[i])
		if _, err := domain.ReconcileTranslations(&section, in.Translations); err != nil {
			return nil, fmt.Errorf("service: invalid translations of section %d: %w", i, err)
		}
		banner.Sections = append(banner.Sections, section)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx database.Tx) error {
		return s.repo.Save(ctx, tx, banner, true)
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to create banner: %w", err)
	}

	logger.Get().Info("Banner created",
		zap.String("banner_id", banner.ID.String()),
		zap.String("name", banner.Name),
		zap.Int("sections", len(banner.Sections)),
	)
	return s.FindOne(ctx, banner.ID, true)
}

// Update applies input to an existing banner. When input.Sections is set
// it becomes the complete section list.
func (s *BannerServiceImpl) Update(ctx context.Context, input domain.UpdateBannerInput) (*domain.Banner, error) {
	if err := input.Validate(); err != nil {
		return nil, domain.NewValidationError(err)
	}

	refs, err := s.resolveRefs(ctx, input.Sections)
	if err != nil {
		return nil, fmt.Errorf("service: failed to resolve section references: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx database.Tx) error {
		banner, err := s.repo.GetBanner(ctx, tx, input.ID, ports.BannerQuery{IncludeDisabled: true})
		if err != nil {
			return err
		}

		domain.ApplyBannerInput(banner, input.Name, input.Enabled)

		syncSections := input.Sections != nil
		if syncSections {
			sections, err := s.buildSections(ctx, tx, banner.ID, input.Sections, refs)
			if err != nil {
				return err
			}
			banner.Sections = sections
		}

		return s.repo.Save(ctx, tx, banner, syncSections)
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to update banner: %w", err)
	}

	logger.Get().Info("Banner updated", zap.String("banner_id", input.ID.String()))
	return s.FindOne(ctx, input.ID, true)
}

// Delete removes a banner. It reports false when nothing was deleted.
func (s *BannerServiceImpl) Delete(ctx context.Context, id entity.ID) (bool, error) {
	var affected int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx database.Tx) error {
		var err error
		affected, err = s.repo.DeleteBanner(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("service: failed to delete banner: %w", err)
	}

	if affected > 0 {
		logger.Get().Info("Banner deleted", zap.String("banner_id", id.String()))
	}
	return affected > 0, nil
}

// DeleteSection removes one section. It reports false when nothing was
// deleted.
func (s *BannerServiceImpl) DeleteSection(ctx context.Context, id entity.ID) (bool, error) {
	var affected int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx database.Tx) error {
		var err error
		affected, err = s.repo.DeleteSection(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("service: failed to delete banner section: %w", err)
	}
	return affected > 0, nil
}

// buildSections turns the incoming list into the banner's new sections.
// Existing sections are loaded in one read, must belong to bannerID and
// get their translations reconciled.
func (s *BannerServiceImpl) buildSections(ctx context.Context, tx database.Tx, bannerID entity.ID, inputs []domain.BannerSectionInput, refs []domain.SectionRefs) ([]domain.BannerSection, error) {
	var ids []entity.ID
	for _, in := range inputs {
		if !in.IsNew() {
			ids = append(ids, *in.ID)
		}
	}

	loaded, err := s.repo.GetSections(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[entity.ID]domain.BannerSection, len(loaded))
	for _, section := range loaded {
		byID[section.ID] = section
	}

	sections := make([]domain.BannerSection, 0, len(inputs))
	for i, in := range inputs {
		var section domain.BannerSection
		if in.IsNew() {
			section = domain.NewSection(bannerID, in, refs[i])
		} else {
			existing, ok := byID[*in.ID]
			if !ok {
				return nil, entity.NewNotFound("BannerSection", *in.ID)
			}
			if existing.BannerID != bannerID {
				return nil, fmt.Errorf("%w: %s", domain.ErrForeignSection, *in.ID)
			}
			section = existing
			domain.ApplySectionInput(&section, in, refs[i])
		}

		if in.IsNew() || in.Translations != nil {
			if _, err := domain.ReconcileTranslations(&section, in.Translations); err != nil {
				return nil, fmt.Errorf("section %d: %w", i, err)
			}
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// resolveRefs looks up every catalog entity the inputs reference. The
// lookups run concurrently; the first failure cancels the rest.
func (s *BannerServiceImpl) resolveRefs(ctx context.Context, inputs []domain.BannerSectionInput) ([]domain.SectionRefs, error) {
	refs := make([]domain.SectionRefs, len(inputs))
	g, gctx := errgroup.WithContext(ctx)

	for i, in := range inputs {
		ref := &refs[i]
		if in.AssetID != nil {
			id := *in.AssetID
			g.Go(func() error {
				found, err := s.resolver.GetOrFail(gctx, catalog.KindAsset, id)
				if err != nil {
					return err
				}
				ref.Asset, _ = found.(*catalog.Asset)
				return nil
			})
		}

		target, _ := in.Target()
		if kind, ok := target.CatalogKind(); ok {
			id := target.ID
			g.Go(func() error {
				found, err := s.resolver.GetOrFail(gctx, kind, id)
				if err != nil {
					return err
				}
				switch v := found.(type) {
				case *catalog.Product:
					ref.Product = v
				case *catalog.Collection:
					ref.Collection = v
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *BannerServiceImpl) assemble(ctx context.Context, banner *domain.Banner) {
	code, _ := i18n.FromContext(ctx)
	for i := range banner.Sections {
		s.translator.Translate(&banner.Sections[i], code)
	}
	banner.SortSections()
}
