package i18n

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// LanguageCode is a supported content language, ISO 639-1 with optional
// script or region suffix (e.g. "en", "pt_BR", "zh_Hans").
type LanguageCode string

const (
	LanguageAR     LanguageCode = "ar"
	LanguageCS     LanguageCode = "cs"
	LanguageDA     LanguageCode = "da"
	LanguageDE     LanguageCode = "de"
	LanguageEL     LanguageCode = "el"
	LanguageEN     LanguageCode = "en"
	LanguageENGB   LanguageCode = "en_GB"
	LanguageENUS   LanguageCode = "en_US"
	LanguageES     LanguageCode = "es"
	LanguageFI     LanguageCode = "fi"
	LanguageFR     LanguageCode = "fr"
	LanguageHE     LanguageCode = "he"
	LanguageHU     LanguageCode = "hu"
	LanguageIT     LanguageCode = "it"
	LanguageJA     LanguageCode = "ja"
	LanguageKO     LanguageCode = "ko"
	LanguageNL     LanguageCode = "nl"
	LanguageNO     LanguageCode = "no"
	LanguagePL     LanguageCode = "pl"
	LanguagePT     LanguageCode = "pt"
	LanguagePTBR   LanguageCode = "pt_BR"
	LanguageRO     LanguageCode = "ro"
	LanguageRU     LanguageCode = "ru"
	LanguageSK     LanguageCode = "sk"
	LanguageSV     LanguageCode = "sv"
	LanguageTR     LanguageCode = "tr"
	LanguageUK     LanguageCode = "uk"
	LanguageZHHans LanguageCode = "zh_Hans"
	LanguageZHHant LanguageCode = "zh_Hant"
)

// ErrUnsupportedLanguage is returned when a code is not in the supported set.
var ErrUnsupportedLanguage = errors.New("unsupported language code")

var supported = map[LanguageCode]struct{}{
	LanguageAR: {}, LanguageCS: {}, LanguageDA: {}, LanguageDE: {}, LanguageEL: {},
	LanguageEN: {}, LanguageENGB: {}, LanguageENUS: {}, LanguageES: {}, LanguageFI: {},
	LanguageFR: {}, LanguageHE: {}, LanguageHU: {}, LanguageIT: {}, LanguageJA: {},
	LanguageKO: {}, LanguageNL: {}, LanguageNO: {}, LanguagePL: {}, LanguagePT: {},
	LanguagePTBR: {}, LanguageRO: {}, LanguageRU: {}, LanguageSK: {}, LanguageSV: {},
	LanguageTR: {}, LanguageUK: {}, LanguageZHHans: {}, LanguageZHHant: {},
}

// Valid reports whether the code is part of the supported set.
func (c LanguageCode) Valid() bool {
	_, ok := supported[c]
	return ok
}

func (c LanguageCode) String() string {
	return string(c)
}

// ParseLanguageCode accepts both the enum form ("pt_BR") and BCP 47 tags
// ("pt-BR", "en-us") and returns the closest supported code.
func ParseLanguageCode(s string) (LanguageCode, error) {
	s = strings.TrimSpace(s)
	if c := LanguageCode(strings.ReplaceAll(s, "-", "_")); c.Valid() {
		return c, nil
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", ErrUnsupportedLanguage
	}
	if c, ok := fromTag(tag); ok {
		return c, nil
	}
	return "", ErrUnsupportedLanguage
}

// MatchAcceptLanguage picks the first supported code of an Accept-Language
// header, honoring q-weights. It returns false when nothing matches.
func MatchAcceptLanguage(header string) (LanguageCode, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", false
	}
	for _, tag := range tags {
		if c, ok := fromTag(tag); ok {
			return c, true
		}
	}
	return "", false
}

func fromTag(tag language.Tag) (LanguageCode, bool) {
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}

	if region, rc := tag.Region(); rc == language.Exact {
		if c := LanguageCode(base.String() + "_" + region.String()); c.Valid() {
			return c, true
		}
	}
	if script, sc := tag.Script(); sc == language.Exact {
		if c := LanguageCode(base.String() + "_" + script.String()); c.Valid() {
			return c, true
		}
	}
	if c := LanguageCode(base.String()); c.Valid() {
		return c, true
	}
	return "", false
}
