package handler

import (
	"errors"
	"net/http"

	"banner-service/internal/core/auth"
	"banner-service/internal/core/entity"
	"banner-service/internal/core/logger"
	"banner-service/internal/features/banners/domain"
	"banner-service/internal/features/banners/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BannerHandler handles HTTP requests for banners.
type BannerHandler struct {
	service ports.BannerService
}

// NewBannerHandler creates a new BannerHandler.
func NewBannerHandler(service ports.BannerService) *BannerHandler {
	return &BannerHandler{
		service: service,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Message string            `json:"message"`
	RayID   string            `json:"ray_id"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// DeletionResponse reports whether a delete removed anything.
type DeletionResponse struct {
	Result string `json:"result" example:"DELETED"`
}

// ListQuery holds the query parameters of the admin list.
type ListQuery struct {
	Skip           int     `query:"skip"`
	Take           int     `query:"take"`
	Sort           string  `query:"sort"`
	Order          string  `query:"order"`
	Name           *string `query:"name"`
	NameContains   *string `query:"nameContains"`
	Enabled        *bool   `query:"enabled"`
	FilterOperator string  `query:"filterOperator"`
}

// ListOptions converts the query into service options.
func (q ListQuery) ListOptions() domain.ListOptions {
	return domain.ListOptions{
		Skip:  q.Skip,
		Take:  q.Take,
		Sort:  domain.SortField(q.Sort),
		Order: domain.SortOrder(q.Order),
		Filter: domain.BannerFilter{
			NameEq:       q.Name,
			NameContains: q.NameContains,
			Enabled:      q.Enabled,
		},
		FilterOperator: domain.LogicalOperator(q.FilterOperator),
	}
}

// Register mounts the shop and admin routes. Admin routes require a bearer
// token carrying the matching banner permission.
func (h *BannerHandler) Register(router fiber.Router, tokens *auth.TokenService) {
	shop := router.Group("/shop", Language())
	shop.Get("/banners/by-name/:name", h.GetShopBannerByName)
	shop.Get("/banners/:id", h.GetShopBanner)

	admin := router.Group("/admin", Language())
	admin.Get("/banners", auth.Require(tokens, auth.PermissionReadBanner), h.ListBanners)
	admin.Get("/banners/:id", auth.Require(tokens, auth.PermissionReadBanner), h.GetBanner)
	admin.Post("/banners", auth.Require(tokens, auth.PermissionCreateBanner), h.CreateBanner)
	admin.Put("/banners/:id", auth.Require(tokens, auth.PermissionUpdateBanner), h.UpdateBanner)
	admin.Delete("/banners/:id", auth.Require(tokens, auth.PermissionDeleteBanner), h.DeleteBanner)
	admin.Delete("/banner-sections/:id", auth.Require(tokens, auth.PermissionDeleteBanner), h.DeleteBannerSection)
}

// GetShopBanner handles GET /shop/banners/:id.
// @Summary Get an enabled banner
// @Description Retrieves an enabled banner with its sections in the requested language.
// @Tags Shop
// @Produce json
// @Param id path string true "Banner ID"
// @Param languageCode query string false "Content language, e.g. en or pt_BR"
// @Success 200 {object} domain.Banner
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shop/banners/{id} [get]
func (h *BannerHandler) GetShopBanner(c *fiber.Ctx) error {
	id, err := entity.ParseID(c.Params("id"))
	if err != nil {
		return respondError(c, domain.NewValidationError(err))
	}

	banner, err := h.service.FindOne(c.UserContext(), id, false)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(banner)
}

// GetShopBannerByName handles GET /shop/banners/by-name/:name.
// @Summary Get an enabled banner by name
// @Description Retrieves the enabled banner with the given unique name.
// @Tags Shop
// @Produce json
// @Param name path string true "Banner name"
// @Param languageCode query string false "Content language, e.g. en or pt_BR"
// @Success 200 {object} domain.Banner
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shop/banners/by-name/{name} [get]
func (h *BannerHandler) GetShopBannerByName(c *fiber.Ctx) error {
	banner, err := h.service.FindByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(banner)
}

// ListBanners handles GET /admin/banners.
// @Summary List banners
// @Description Lists banners with paging, sorting and filtering.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip"
// @Param take query int false "Page size, at most 1000"
// @Param sort query string false "id, createdAt, updatedAt or name"
// @Param order query string false "ASC or DESC"
// @Param name query string false "Exact name"
// @Param nameContains query string false "Name substring"
// @Param enabled query bool false "Enabled flag"
// @Param filterOperator query string false "AND or OR"
// @Success 200 {object} BannerList
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/banners [get]
func (h *BannerHandler) ListBanners(c *fiber.Ctx) error {
	var q ListQuery
	if err := c.QueryParser(&q); err != nil {
		return respondError(c, domain.NewValidationError(err))
	}

	list, err := h.service.FindAll(c.UserContext(), q.ListOptions())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(list)
}

// BannerList documents the paginated list payload.
type BannerList = domain.PaginatedList[domain.Banner]

// GetBanner handles GET /admin/banners/:id.
// @Summary Get a banner
// @Description Retrieves a banner, enabled or not.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Success 200 {object} domain.Banner
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/banners/{id} [get]
func (h *BannerHandler) GetBanner(c *fiber.Ctx) error {
	id, err := entity.ParseID(c.Params("id"))
	if err != nil {
		return respondError(c, domain.NewValidationError(err))
	}

	banner, err := h.service.FindOne(c.UserContext(), id, true)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(banner)
}

// CreateBanner handles POST /admin/banners.
// @Summary Create a banner
// @Description Creates a banner with its sections and their translations.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param banner body domain.CreateBannerInput true "Banner"
// @Success 201 {object} domain.Banner
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/banners [post]
func (h *BannerHandler) CreateBanner(c *fiber.Ctx) error {
	var input domain.CreateBannerInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, domain.NewValidationError(err))
	}

	banner, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(banner)
}

// UpdateBanner handles PUT /admin/banners/:id.
// @Summary Update a banner
// @Description Updates a banner. When sections is present it replaces the whole list; omitted sections are deleted.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Param banner body domain.UpdateBannerInput true "Changes"
// @Success 200 {object} domain.Banner
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/banners/{id} [put]
func (h *BannerHandler) UpdateBanner(c *fiber.Ctx) error {
	id, err := entity.ParseID(c.Params("id"))
	if err != nil {
		return respondError(c, domain.NewValidationError(err))
	}

	var input domain.UpdateBannerInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, domain.NewValidationError(err))
	}
	input.ID = id

	banner, err := h.service.Update(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(banner)
}

// DeleteBanner handles DELETE /admin/banners/:id.
// @Summary Delete a banner
// @Description Deletes a banner with its sections and translations.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Success 200 {object} DeletionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/banners/{id} [delete]
func (h *BannerHandler) DeleteBanner(c *fiber.Ctx) error {
	id, err := entity.ParseID(c.Params("id"))
	if err != nil {
		return respondError(c, domain.NewValidationError(err))
	}

	deleted, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(deletion(deleted))
}

// DeleteBannerSection handles DELETE /admin/banner-sections/:id.
// @Summary Delete a banner section
// @Description Deletes one section and its translations.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Section ID"
// @Success 200 {object} DeletionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/banner-sections/{id} [delete]
func (h *BannerHandler) DeleteBannerSection(c *fiber.Ctx) error {
	id, err := entity.ParseID(c.Params("id"))
	if err != nil {
		return respondError(c, domain.NewValidationError(err))
	}

	deleted, err := h.service.DeleteSection(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(deletion(deleted))
}

func deletion(deleted bool) DeletionResponse {
	if deleted {
		return DeletionResponse{Result: "DELETED"}
	}
	return DeletionResponse{Result: "NOT_DELETED"}
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConstraintViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	rayID, ok := c.Locals("requestid").(string)
	if !ok {
		rayID = "unknown"
	}

	status := StatusFor(err)
	resp := ErrorResponse{Message: err.Error(), RayID: rayID}
	if status == http.StatusInternalServerError {
		logger.Get().Error("Banner request failed",
			zap.String("ray_id", rayID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		resp.Message = "Internal server error"
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) && len(ve.Fields) > 0 {
		resp.Fields = ve.Fields
	}
	return c.Status(status).JSON(resp)
}
