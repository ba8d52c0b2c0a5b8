package i18n

import "context"

type languageKey struct{}

// WithLanguage returns a context carrying the caller's active language.
func WithLanguage(ctx context.Context, code LanguageCode) context.Context {
	return context.WithValue(ctx, languageKey{}, code)
}

// FromContext returns the active language stored in ctx, if any.
func FromContext(ctx context.Context) (LanguageCode, bool) {
	code, ok := ctx.Value(languageKey{}).(LanguageCode)
	return code, ok && code != ""
}
