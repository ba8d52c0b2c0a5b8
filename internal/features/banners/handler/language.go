package handler

import (
	"banner-service/internal/core/i18n"
	"banner-service/internal/features/banners/domain"

	"github.com/gofiber/fiber/v2"
)

// Language stores the caller's content language in the request context.
// The languageCode query parameter wins over Accept-Language; without
// either the service falls back to the default language.
func Language() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if q := c.Query("languageCode"); q != "" {
			code, err := i18n.ParseLanguageCode(q)
			if err != nil {
				return respondError(c, domain.NewValidationError(err))
			}
			c.SetUserContext(i18n.WithLanguage(c.UserContext(), code))
			return c.Next()
		}

		if code, ok := i18n.MatchAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)); ok {
			c.SetUserContext(i18n.WithLanguage(c.UserContext(), code))
		}
		return c.Next()
	}
}
