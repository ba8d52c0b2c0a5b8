package domain

import (
	"errors"

	"banner-service/internal/core/entity"
	"banner-service/internal/core/i18n"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateBannerInput is the payload for creating a banner with its sections.
type CreateBannerInput struct {
	Name     string               `json:"name"`
	Enabled  *bool                `json:"enabled,omitempty"`
	Sections []BannerSectionInput `json:"sections"`
}

// Validate validates CreateBannerInput
func (in CreateBannerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Sections, validation.By(newSectionsOnly)),
	)
}

// UpdateBannerInput changes a banner. A nil Sections leaves the sections
// untouched; a non-nil one (even empty) replaces the whole list.
type UpdateBannerInput struct {
	ID       entity.ID            `json:"id"`
	Name     *string              `json:"name,omitempty"`
	Enabled  *bool                `json:"enabled,omitempty"`
	Sections []BannerSectionInput `json:"sections"`
}

// Validate validates UpdateBannerInput
func (in UpdateBannerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ID, validation.By(requiredID)),
		validation.Field(&in.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&in.Sections, validation.By(uniqueSectionIDs)),
	)
}

// BannerSectionInput describes a section. Without ID it creates a new one.
type BannerSectionInput struct {
	ID           *entity.ID                      `json:"id,omitempty"`
	AssetID      *entity.ID                      `json:"assetId,omitempty"`
	ProductID    *entity.ID                      `json:"productId,omitempty"`
	CollectionID *entity.ID                      `json:"collectionId,omitempty"`
	ExternalLink *string                         `json:"externalLink,omitempty"`
	Position     *int                            `json:"position,omitempty"`
	Translations []BannerSectionTranslationInput `json:"translations"`
}

// Validate validates BannerSectionInput. New sections need an asset and
// exactly one target; existing ones accept at most one target.
func (in BannerSectionInput) Validate() error {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.ExternalLink, is.URL),
		validation.Field(&in.Translations),
	); err != nil {
		return err
	}

	target, err := in.Target()
	if err != nil {
		return err
	}
	if in.IsNew() {
		if in.AssetID == nil {
			return ErrMissingAsset
		}
		if target.IsZero() {
			return ErrMissingTarget
		}
	}
	return nil
}

// IsNew reports whether the input creates a section.
func (in BannerSectionInput) IsNew() bool {
	return in.ID == nil
}

// Target folds the three optional arms into a SectionTarget. The zero
// target means none was given.
func (in BannerSectionInput) Target() (SectionTarget, error) {
	var targets []SectionTarget
	if in.ProductID != nil {
		targets = append(targets, ProductTarget(*in.ProductID))
	}
	if in.CollectionID != nil {
		targets = append(targets, CollectionTarget(*in.CollectionID))
	}
	if in.ExternalLink != nil && *in.ExternalLink != "" {
		targets = append(targets, ExternalLinkTarget(*in.ExternalLink))
	}

	switch len(targets) {
	case 0:
		return SectionTarget{}, nil
	case 1:
		return targets[0], nil
	default:
		return SectionTarget{}, ErrMultipleTargets
	}
}

// BannerSectionTranslationInput is one language's text. With ID it updates
// an existing translation of the section.
type BannerSectionTranslationInput struct {
	ID           *entity.ID        `json:"id,omitempty"`
	LanguageCode i18n.LanguageCode `json:"languageCode"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	CallToAction string            `json:"callToAction"`
}

// Validate validates BannerSectionTranslationInput
func (in BannerSectionTranslationInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.LanguageCode, validation.Required, validation.By(supportedLanguage)),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.CallToAction, validation.Required, validation.Length(1, 255)),
	)
}

func requiredID(value interface{}) error {
	if id, _ := value.(entity.ID); id == (entity.ID{}) {
		return errors.New("cannot be blank")
	}
	return nil
}

func supportedLanguage(value interface{}) error {
	if code, _ := value.(i18n.LanguageCode); !code.Valid() {
		return i18n.ErrUnsupportedLanguage
	}
	return nil
}

func newSectionsOnly(value interface{}) error {
	sections, _ := value.([]BannerSectionInput)
	for _, s := range sections {
		if !s.IsNew() {
			return errors.New("sections of a new banner cannot have an id")
		}
	}
	return nil
}

func uniqueSectionIDs(value interface{}) error {
	sections, _ := value.([]BannerSectionInput)
	seen := make(map[entity.ID]bool, len(sections))
	for _, s := range sections {
		if s.IsNew() {
			continue
		}
		if seen[*s.ID] {
			return errors.New("section ids must be unique")
		}
		seen[*s.ID] = true
	}
	return nil
}
