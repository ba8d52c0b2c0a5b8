package domain

import (
	"fmt"

	"banner-service/internal/core/entity"
	"banner-service/internal/core/i18n"
)

// TranslationDiff is the change set between a section's stored
// translations and an incoming list. Result is the collection to persist,
// in incoming order.
type TranslationDiff struct {
	Updated  []BannerSectionTranslation
	Inserted []BannerSectionTranslation
	Deleted  []BannerSectionTranslation
	Result   []BannerSectionTranslation
}

// DiffTranslations matches incoming inputs to existing rows by id. Inputs
// with an id update that row, inputs without one become new rows and rows
// nobody references are dropped. An id that matches no existing row is an
// invariant violation; two rows of the same language fail validation.
func DiffTranslations(sectionID entity.ID, existing []BannerSectionTranslation, incoming []BannerSectionTranslationInput) (TranslationDiff, error) {
	byID := make(map[entity.ID]BannerSectionTranslation, len(existing))
	for _, t := range existing {
		byID[t.ID] = t
	}

	var diff TranslationDiff
	referenced := make(map[entity.ID]bool, len(incoming))
	for _, in := range incoming {
		if in.ID == nil {
			t := BannerSectionTranslation{SectionID: sectionID}
			ApplyTranslationInput(&t, in)
			diff.Inserted = append(diff.Inserted, t)
			diff.Result = append(diff.Result, t)
			continue
		}

		current, ok := byID[*in.ID]
		if !ok {
			return TranslationDiff{}, fmt.Errorf("%w: %s", ErrUnknownTranslation, *in.ID)
		}
		if referenced[*in.ID] {
			return TranslationDiff{}, fmt.Errorf("%w: %s", ErrDuplicateTranslation, *in.ID)
		}
		referenced[*in.ID] = true

		ApplyTranslationInput(&current, in)
		diff.Updated = append(diff.Updated, current)
		diff.Result = append(diff.Result, current)
	}

	for _, t := range existing {
		if !referenced[t.ID] {
			diff.Deleted = append(diff.Deleted, t)
		}
	}

	seen := make(map[i18n.LanguageCode]bool, len(diff.Result))
	for _, t := range diff.Result {
		if seen[t.LanguageCode] {
			return TranslationDiff{}, fmt.Errorf("%w: %s", ErrDuplicateLanguage, t.LanguageCode)
		}
		seen[t.LanguageCode] = true
	}

	return diff, nil
}

// ReconcileTranslations replaces s.Translations with the reconciled set.
// s is left untouched on error.
func ReconcileTranslations(s *BannerSection, incoming []BannerSectionTranslationInput) (TranslationDiff, error) {
	diff, err := DiffTranslations(s.ID, s.Translations, incoming)
	if err != nil {
		return TranslationDiff{}, err
	}
	s.Translations = diff.Result
	return diff, nil
}
