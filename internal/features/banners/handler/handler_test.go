package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"banner-service/internal/core/auth"
	"banner-service/internal/core/entity"
	"banner-service/internal/core/i18n"
	"banner-service/internal/features/banners/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBannerService is a mock implementation of ports.BannerService
type MockBannerService struct {
	mock.Mock
}

func (m *MockBannerService) FindOne(ctx context.Context, id entity.ID, includeDisabled bool) (*domain.Banner, error) {
	args := m.Called(ctx, id, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Banner), args.Error(1)
}

func (m *MockBannerService) FindByName(ctx context.Context, name string) (*domain.Banner, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Banner), args.Error(1)
}

func (m *MockBannerService) FindAll(ctx context.Context, opts domain.ListOptions) (domain.PaginatedList[domain.Banner], error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(domain.PaginatedList[domain.Banner]), args.Error(1)
}

func (m *MockBannerService) Create(ctx context.Context, input domain.CreateBannerInput) (*domain.Banner, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Banner), args.Error(1)
}

func (m *MockBannerService) Update(ctx context.Context, input domain.UpdateBannerInput) (*domain.Banner, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Banner), args.Error(1)
}

func (m *MockBannerService) Delete(ctx context.Context, id entity.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBannerService) DeleteSection(ctx context.Context, id entity.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var tokens = auth.NewTokenService("test-secret", time.Hour)

func setupApp(service *MockBannerService) *fiber.App {
	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Header: "X-Ray-ID"}))
	NewBannerHandler(service).Register(app, tokens)
	return app
}

func adminToken(t *testing.T, permissions ...auth.Permission) string {
	t.Helper()
	token, err := tokens.Issue("admin", permissions...)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeError(t *testing.T, resp *http.Response) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func languageIs(code i18n.LanguageCode) interface{} {
	return mock.MatchedBy(func(ctx context.Context) bool {
		got, ok := i18n.FromContext(ctx)
		return ok && got == code
	})
}

func TestBannerHandler_GetShopBanner(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		banner := &domain.Banner{Base: entity.Base{ID: id}, Name: "home", Enabled: true}
		mockService.On("FindOne", languageIs(i18n.LanguageUK), id, false).Return(banner, nil).Once()

		req := httptest.NewRequest("GET", "/shop/banners/"+id.String()+"?languageCode=uk", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got domain.Banner
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, "home", got.Name)
		mockService.AssertExpectations(t)
	})

	t.Run("AcceptLanguage", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		banner := &domain.Banner{Base: entity.Base{ID: id}, Name: "home"}
		mockService.On("FindOne", languageIs(i18n.LanguagePTBR), id, false).Return(banner, nil).Once()

		req := httptest.NewRequest("GET", "/shop/banners/"+id.String(), nil)
		req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("UnsupportedLanguage", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		req := httptest.NewRequest("GET", "/shop/banners/"+id.String()+"?languageCode=klingon", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockService.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		req := httptest.NewRequest("GET", "/shop/banners/not-a-uuid", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		mockService.On("FindOne", mock.Anything, id, false).
			Return(nil, fmt.Errorf("service: failed to find banner: %w", entity.NewNotFound("Banner", id))).Once()

		req := httptest.NewRequest("GET", "/shop/banners/"+id.String(), nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Contains(t, body.Message, "not found")
		assert.Equal(t, resp.Header.Get("X-Ray-ID"), body.RayID)
		mockService.AssertExpectations(t)
	})

	t.Run("InternalError", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		mockService.On("FindOne", mock.Anything, id, false).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest("GET", "/shop/banners/"+id.String(), nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Internal server error", decodeError(t, resp).Message)
		mockService.AssertExpectations(t)
	})
}

func TestBannerHandler_GetShopBannerByName(t *testing.T) {
	mockService := new(MockBannerService)
	app := setupApp(mockService)

	mockService.On("FindByName", mock.Anything, "home").Return(&domain.Banner{Name: "home"}, nil).Once()
	mockService.On("FindByName", mock.Anything, "missing").
		Return(nil, &domain.NotFoundError{Entity: "Banner", Key: "missing"}).Once()

	resp, err := app.Test(httptest.NewRequest("GET", "/shop/banners/by-name/home", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/shop/banners/by-name/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	mockService.AssertExpectations(t)
}

func TestBannerHandler_Permissions(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		wantStatus int
	}{
		{name: "NoToken", method: "GET", path: "/admin/banners", wantStatus: http.StatusUnauthorized},
		{name: "BadToken", method: "GET", path: "/admin/banners", auth: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "ReadCannotCreate", method: "POST", path: "/admin/banners", auth: "read", wantStatus: http.StatusForbidden},
		{name: "ReadCannotDelete", method: "DELETE", path: "/admin/banners/" + uuid.NewString(), auth: "read", wantStatus: http.StatusForbidden},
		{name: "CreateCannotUpdate", method: "PUT", path: "/admin/banners/" + uuid.NewString(), auth: "create", wantStatus: http.StatusForbidden},
		{name: "CreateCannotRead", method: "GET", path: "/admin/banners/" + uuid.NewString(), auth: "create", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockBannerService)
			app := setupApp(mockService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			switch tt.auth {
			case "read":
				req.Header.Set("Authorization", adminToken(t, auth.PermissionReadBanner))
			case "create":
				req.Header.Set("Authorization", adminToken(t, auth.PermissionCreateBanner))
			case "":
			default:
				req.Header.Set("Authorization", tt.auth)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			mockService.AssertExpectations(t)
		})
	}
}

func TestBannerHandler_ListBanners(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		enabled := true
		name := "sum"
		want := domain.ListOptions{
			Skip:           10,
			Take:           5,
			Sort:           domain.SortByName,
			Order:          domain.SortDesc,
			Filter:         domain.BannerFilter{NameContains: &name, Enabled: &enabled},
			FilterOperator: domain.OperatorOr,
		}
		list := domain.PaginatedList[domain.Banner]{Items: []domain.Banner{{Name: "summer"}}, TotalItems: 11}
		mockService.On("FindAll", mock.Anything, want).Return(list, nil).Once()

		req := httptest.NewRequest("GET", "/admin/banners?skip=10&take=5&sort=name&order=DESC&nameContains=sum&enabled=true&filterOperator=OR", nil)
		req.Header.Set("Authorization", adminToken(t, auth.PermissionReadBanner))
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got domain.PaginatedList[domain.Banner]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, int64(11), got.TotalItems)
		require.Len(t, got.Items, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("BadQuery", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		req := httptest.NewRequest("GET", "/admin/banners?enabled=maybe", nil)
		req.Header.Set("Authorization", adminToken(t, auth.PermissionReadBanner))
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockService.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})
}

func TestBannerHandler_CreateBanner(t *testing.T) {
	input := domain.CreateBannerInput{
		Name: "home",
		Sections: []domain.BannerSectionInput{{
			AssetID:      ptr(uuid.New()),
			ExternalLink: ptr("https://example.com"),
			Translations: []domain.BannerSectionTranslationInput{
				{LanguageCode: i18n.LanguageEN, Title: "Sale", Description: "Sale", CallToAction: "Shop"},
			},
		}},
	}

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "Created", wantStatus: http.StatusCreated},
		{name: "Validation", serviceErr: domain.NewValidationError(errors.New("bad")), wantStatus: http.StatusBadRequest},
		{name: "AssetNotFound", serviceErr: entity.NewNotFound("Asset", uuid.New()), wantStatus: http.StatusNotFound},
		{name: "DuplicateName", serviceErr: domain.ErrDuplicateName, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockBannerService)
			app := setupApp(mockService)

			if tt.serviceErr != nil {
				mockService.On("Create", mock.Anything, input).Return(nil, tt.serviceErr).Once()
			} else {
				mockService.On("Create", mock.Anything, input).Return(&domain.Banner{Name: "home"}, nil).Once()
			}

			body, _ := json.Marshal(input)
			req := httptest.NewRequest("POST", "/admin/banners", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", adminToken(t, auth.PermissionCreateBanner))
			resp, err := app.Test(req)

			require.NoError(t, err)
			if resp.StatusCode != tt.wantStatus {
				raw, _ := io.ReadAll(resp.Body)
				t.Logf("Response Body: %s", raw)
			}
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			mockService.AssertExpectations(t)
		})
	}

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		req := httptest.NewRequest("POST", "/admin/banners", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", adminToken(t, auth.PermissionCreateBanner))
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestBannerHandler_UpdateBanner(t *testing.T) {
	id := uuid.New()

	t.Run("PathIDWins", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		mockService.On("Update", mock.Anything, mock.MatchedBy(func(in domain.UpdateBannerInput) bool {
			return in.ID == id && in.Name != nil && *in.Name == "renamed" && in.Sections == nil
		})).Return(&domain.Banner{Name: "renamed"}, nil).Once()

		body := fmt.Sprintf(`{"id":%q,"name":"renamed"}`, uuid.NewString())
		req := httptest.NewRequest("PUT", "/admin/banners/"+id.String(), bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", adminToken(t, auth.PermissionUpdateBanner))
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("EmptySectionsIsNotNil", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		mockService.On("Update", mock.Anything, mock.MatchedBy(func(in domain.UpdateBannerInput) bool {
			return in.Sections != nil && len(in.Sections) == 0
		})).Return(&domain.Banner{}, nil).Once()

		req := httptest.NewRequest("PUT", "/admin/banners/"+id.String(), bytes.NewReader([]byte(`{"sections":[]}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", adminToken(t, auth.PermissionUpdateBanner))
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockService.AssertExpectations(t)
	})

	t.Run("InvariantViolation", func(t *testing.T) {
		mockService := new(MockBannerService)
		app := setupApp(mockService)

		mockService.On("Update", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("service: failed to update banner: %w", domain.ErrUnknownTranslation)).Once()

		req := httptest.NewRequest("PUT", "/admin/banners/"+id.String(), bytes.NewReader([]byte(`{"sections":[]}`)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", adminToken(t, auth.PermissionUpdateBanner))
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		mockService.AssertExpectations(t)
	})
}

func TestBannerHandler_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		path       string
		method     string
		deleted    bool
		wantResult string
	}{
		{name: "BannerDeleted", path: "/admin/banners/", method: "Delete", deleted: true, wantResult: "DELETED"},
		{name: "BannerMissing", path: "/admin/banners/", method: "Delete", deleted: false, wantResult: "NOT_DELETED"},
		{name: "SectionDeleted", path: "/admin/banner-sections/", method: "DeleteSection", deleted: true, wantResult: "DELETED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockBannerService)
			app := setupApp(mockService)
			mockService.On(tt.method, mock.Anything, id).Return(tt.deleted, nil).Once()

			req := httptest.NewRequest("DELETE", tt.path+id.String(), nil)
			req.Header.Set("Authorization", adminToken(t, auth.PermissionDeleteBanner))
			resp, err := app.Test(req)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var got DeletionResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			assert.Equal(t, tt.wantResult, got.Result)
			mockService.AssertExpectations(t)
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: entity.NewNotFound("Banner", uuid.New()), want: http.StatusNotFound},
		{err: domain.ErrMissingAsset, want: http.StatusBadRequest},
		{err: domain.ErrDuplicateTranslation, want: http.StatusUnprocessableEntity},
		{err: domain.ErrDuplicateName, want: http.StatusConflict},
		{err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func ptr[T any](v T) *T { return &v }
