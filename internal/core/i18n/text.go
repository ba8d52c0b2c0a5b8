package i18n

// LocalizedText is one language's copy of a translatable record.
type LocalizedText struct {
	LanguageCode LanguageCode `json:"languageCode" gorm:"type:varchar(16);not null"`
	Title        string       `json:"title" gorm:"not null"`
	Description  string       `json:"description" gorm:"type:text;not null"`
	CallToAction string       `json:"callToAction" gorm:"not null"`
}

// Translation is any per-language row of a translatable entity.
type Translation interface {
	Language() LanguageCode
}

// Pick selects the translation to surface for the requested language.
// It prefers an exact match, then the fallback language, then the first
// element. ok is false only when translations is empty.
func Pick[T Translation](translations []T, requested, fallback LanguageCode) (t T, ok bool) {
	if len(translations) == 0 {
		return t, false
	}
	for _, candidate := range translations {
		if candidate.Language() == requested {
			return candidate, true
		}
	}
	if fallback != "" && fallback != requested {
		for _, candidate := range translations {
			if candidate.Language() == fallback {
				return candidate, true
			}
		}
	}
	return translations[0], true
}
