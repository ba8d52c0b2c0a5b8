package service

import (
	"banner-service/internal/core/i18n"
	"banner-service/internal/features/banners/domain"
)

// LanguageTranslator resolves section text: the requested language, then
// the configured default, then whatever was stored first.
type LanguageTranslator struct {
	fallback i18n.LanguageCode
}

// NewLanguageTranslator creates a LanguageTranslator.
func NewLanguageTranslator(fallback i18n.LanguageCode) *LanguageTranslator {
	return &LanguageTranslator{fallback: fallback}
}

// Translate implements ports.Translator. A section without translations
// gets empty text.
func (t *LanguageTranslator) Translate(section *domain.BannerSection, code i18n.LanguageCode) {
	picked, ok := i18n.Pick(section.Translations, code, t.fallback)
	if !ok {
		section.Localize(i18n.LocalizedText{})
		return
	}
	section.Localize(picked.LocalizedText)
}
