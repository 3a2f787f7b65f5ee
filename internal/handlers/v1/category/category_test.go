package category

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) Create(ctx context.Context, title string, ownerID int64) (*service.Category, error) {
	args := m.Called(ctx, title, ownerID)
	c, _ := args.Get(0).(*service.Category)
	return c, args.Error(1)
}

func (m *mockCategoryService) FindAll(ctx context.Context, ownerID int64) ([]service.Category, error) {
	args := m.Called(ctx, ownerID)
	c, _ := args.Get(0).([]service.Category)
	return c, args.Error(1)
}

func (m *mockCategoryService) FindOne(ctx context.Context, id int64) (*service.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*service.Category)
	return c, args.Error(1)
}

func (m *mockCategoryService) Update(ctx context.Context, id int64, update service.CategoryUpdate) (*service.UpdateResult, error) {
	args := m.Called(ctx, id, update)
	r, _ := args.Get(0).(*service.UpdateResult)
	return r, args.Error(1)
}

func (m *mockCategoryService) Remove(ctx context.Context, id int64) (*service.DeleteResult, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*service.DeleteResult)
	return r, args.Error(1)
}

// asCaller authenticates every request as the given user.
func asCaller(id int64) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithCaller(ctx.Context(), &auth.Caller{ID: id})))
	}
}

func newTestAPI(t *testing.T, svc *mockCategoryService, middlewares huma.Middlewares) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateCategoryHandler(svc, middlewares).Register(api)
	NewListCategoriesHandler(svc, middlewares).Register(api)
	NewFindCategoryHandler(svc, middlewares).Register(api)
	NewUpdateCategoryHandler(svc, middlewares).Register(api)
	NewRemoveCategoryHandler(svc, middlewares).Register(api)
	return api
}

func TestHTTP_CreateCategory(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		svc := new(mockCategoryService)
		svc.On("Create", mock.Anything, "Food", int64(1)).Return(&service.Category{
			ID: 5, Title: "Food", UserID: 1, CreatedAt: created, UpdatedAt: created,
		}, nil)

		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Post("/api/categories", CreateCategoryBody{Title: "Food"})
		assert.Equal(t, http.StatusCreated, resp.Code)

		var body Category
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(5), body.ID)
		assert.Equal(t, int64(1), body.UserID)
		assert.NotNil(t, body.Transactions)
	})

	t.Run("duplicate", func(t *testing.T) {
		svc := new(mockCategoryService)
		svc.On("Create", mock.Anything, "Food", int64(1)).Return(nil, apperror.BadRequest("category already exists"))

		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Post("/api/categories", CreateCategoryBody{Title: "Food"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "category already exists")
	})

	t.Run("empty title", func(t *testing.T) {
		svc := new(mockCategoryService)
		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Post("/api/categories", CreateCategoryBody{})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("no caller", func(t *testing.T) {
		svc := new(mockCategoryService)
		resp := newTestAPI(t, svc, nil).Post("/api/categories", CreateCategoryBody{Title: "Food"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestHTTP_ListCategories(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("FindAll", mock.Anything, int64(1)).Return([]service.Category{
		{ID: 1, Title: "Food", UserID: 1, Transactions: []service.Transaction{
			{ID: 3, Title: "Lunch", Amount: decimal.RequireFromString("12.5")},
		}},
		{ID: 2, Title: "Travel", UserID: 1},
	}, nil)

	resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Get("/api/categories")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body []Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	require.Len(t, body[0].Transactions, 1)
	assert.Equal(t, "12.50", body[0].Transactions[0].Amount)
	assert.Empty(t, body[1].Transactions)
}

func TestHTTP_FindCategory(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("FindOne", mock.Anything, int64(2)).Return(&service.Category{ID: 2, Title: "Travel", UserID: 1}, nil)
	svc.On("FindOne", mock.Anything, int64(3)).Return(nil, apperror.NotFound("category not found"))
	api := newTestAPI(t, svc, nil)

	resp := api.Get("/api/categories/category/2")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/categories/category/3")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_UpdateCategory(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("Update", mock.Anything, int64(2), service.CategoryUpdate{Title: omit.From("Trips")}).
		Return(&service.UpdateResult{Affected: 1}, nil)

	resp := newTestAPI(t, svc, nil).Patch("/api/categories/category/2", map[string]any{"title": "Trips"})
	assert.Equal(t, http.StatusOK, resp.Code)

	var body CategoryAffectedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(1), body.Affected)
	svc.AssertExpectations(t)
}

func TestHTTP_RemoveCategory(t *testing.T) {
	svc := new(mockCategoryService)
	svc.On("Remove", mock.Anything, int64(2)).Return(&service.DeleteResult{Affected: 1}, nil)
	svc.On("Remove", mock.Anything, int64(9)).Return(nil, apperror.NotFound("category not found"))
	api := newTestAPI(t, svc, nil)

	resp := api.Delete("/api/categories/category/2")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.Delete("/api/categories/category/9")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
