package domain

import (
	"sort"

	"banner-service/internal/core/entity"
	"banner-service/internal/core/i18n"
	catalog "banner-service/internal/features/catalog/domain"
)

// Banner is a named, orderable set of promotional sections.
type Banner struct {
	entity.Base
	Name     string          `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	Enabled  bool            `json:"enabled" gorm:"not null"`
	Sections []BannerSection `json:"sections" gorm:"foreignKey:BannerID;constraint:OnDelete:CASCADE"`
}

func (Banner) TableName() string { return "banner" }

// SortSections orders sections by ascending position, keeping the stored
// order for equal positions.
func (b *Banner) SortSections() {
	sort.SliceStable(b.Sections, func(i, j int) bool {
		return b.Sections[i].Position < b.Sections[j].Position
	})
}

// Section returns the section with the given id, if the banner owns it.
func (b *Banner) Section(id entity.ID) (*BannerSection, bool) {
	for i := range b.Sections {
		if b.Sections[i].ID == id {
			return &b.Sections[i], true
		}
	}
	return nil, false
}

// BannerSection is one slide of a banner. It points to exactly one of a
// product, a collection or an external link, and always shows an asset.
type BannerSection struct {
	entity.Base
	BannerID     entity.ID  `json:"bannerId" gorm:"type:uuid;not null;index"`
	Position     int        `json:"position" gorm:"not null"`
	ExternalLink *string    `json:"externalLink"`
	AssetID      *entity.ID `json:"assetId" gorm:"type:uuid;index"`
	ProductID    *entity.ID `json:"productId" gorm:"type:uuid;index"`
	CollectionID *entity.ID `json:"collectionId" gorm:"type:uuid;index"`

	Asset      *catalog.Asset      `json:"asset,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:SET NULL"`
	Product    *catalog.Product    `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Collection *catalog.Collection `json:"collection,omitempty" gorm:"foreignKey:CollectionID"`

	Translations []BannerSectionTranslation `json:"translations" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`

	// Text of the active language, filled on read.
	LanguageCode i18n.LanguageCode `json:"languageCode" gorm:"-"`
	Title        string            `json:"title" gorm:"-"`
	Description  string            `json:"description" gorm:"-"`
	CallToAction string            `json:"callToAction" gorm:"-"`
}

func (BannerSection) TableName() string { return "banner_section" }

// Target returns the association the section currently points to.
func (s *BannerSection) Target() SectionTarget {
	switch {
	case s.ProductID != nil:
		return ProductTarget(*s.ProductID)
	case s.CollectionID != nil:
		return CollectionTarget(*s.CollectionID)
	case s.ExternalLink != nil && *s.ExternalLink != "":
		return ExternalLinkTarget(*s.ExternalLink)
	default:
		return SectionTarget{}
	}
}

// SetTarget points the section at t and clears the other arms.
func (s *BannerSection) SetTarget(t SectionTarget) {
	s.ProductID, s.CollectionID, s.ExternalLink = nil, nil, nil
	s.Product, s.Collection = nil, nil

	switch t.Kind {
	case TargetProduct:
		id := t.ID
		s.ProductID = &id
	case TargetCollection:
		id := t.ID
		s.CollectionID = &id
	case TargetExternalLink:
		link := t.URL
		s.ExternalLink = &link
	}
}

// Localize copies the translation's text onto the section.
func (s *BannerSection) Localize(t i18n.LocalizedText) {
	s.LanguageCode = t.LanguageCode
	s.Title = t.Title
	s.Description = t.Description
	s.CallToAction = t.CallToAction
}

// BannerSectionTranslation holds one language's text for a section.
type BannerSectionTranslation struct {
	entity.Base
	i18n.LocalizedText
	SectionID entity.ID `json:"sectionId" gorm:"type:uuid;not null;index"`
}

func (BannerSectionTranslation) TableName() string { return "banner_section_translation" }

// Language implements i18n.Translation.
func (t BannerSectionTranslation) Language() i18n.LanguageCode {
	return t.LanguageCode
}

// Models lists the banner tables in migration order.
func Models() []interface{} {
	return []interface{}{&Banner{}, &BannerSection{}, &BannerSectionTranslation{}}
}
