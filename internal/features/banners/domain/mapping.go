package domain

import (
	"banner-service/internal/core/entity"
	catalog "banner-service/internal/features/catalog/domain"
)

// SectionRefs holds the catalog entities a section input resolved to.
type SectionRefs struct {
	Asset      *catalog.Asset
	Product    *catalog.Product
	Collection *catalog.Collection
}

// ApplyBannerInput copies the banner fields that are set.
func ApplyBannerInput(b *Banner, name *string, enabled *bool) {
	if name != nil {
		b.Name = *name
	}
	if enabled != nil {
		b.Enabled = *enabled
	}
}

// NewSection builds an unsaved section of bannerID from in.
func NewSection(bannerID entity.ID, in BannerSectionInput, refs SectionRefs) BannerSection {
	s := BannerSection{BannerID: bannerID}
	ApplySectionInput(&s, in, refs)
	return s
}

// ApplySectionInput copies position, asset and target onto s. Fields
// absent from in keep their current value. Translations are left to
// ReconcileTranslations.
func ApplySectionInput(s *BannerSection, in BannerSectionInput, refs SectionRefs) {
	if in.Position != nil {
		s.Position = *in.Position
	}
	if refs.Asset != nil {
		id := refs.Asset.ID
		s.AssetID = &id
		s.Asset = refs.Asset
	}

	target, err := in.Target()
	if err != nil || target.IsZero() {
		return
	}
	s.SetTarget(target)
	switch target.Kind {
	case TargetProduct:
		s.Product = refs.Product
	case TargetCollection:
		s.Collection = refs.Collection
	}
}

// ApplyTranslationInput copies the localized text onto t. Identity and
// timestamps are kept.
func ApplyTranslationInput(t *BannerSectionTranslation, in BannerSectionTranslationInput) {
	t.LanguageCode = in.LanguageCode
	t.Title = in.Title
	t.Description = in.Description
	t.CallToAction = in.CallToAction
}
