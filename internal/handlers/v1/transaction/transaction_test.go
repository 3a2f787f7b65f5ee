package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
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

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) Create(ctx context.Context, create service.TransactionCreate, ownerID int64) (*service.Transaction, error) {
	args := m.Called(ctx, create, ownerID)
	t, _ := args.Get(0).(*service.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionService) FindAll(ctx context.Context, ownerID int64) ([]service.Transaction, error) {
	args := m.Called(ctx, ownerID)
	t, _ := args.Get(0).([]service.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionService) FindAllWithPagination(ctx context.Context, ownerID int64, page, pageSize int) ([]service.Transaction, error) {
	args := m.Called(ctx, ownerID, page, pageSize)
	t, _ := args.Get(0).([]service.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionService) FindAllByType(ctx context.Context, ownerID int64, transactionType string) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, transactionType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockTransactionService) FindOne(ctx context.Context, id int64) (*service.Transaction, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*service.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionService) Update(ctx context.Context, id int64, update service.TransactionUpdate) (*service.UpdateResult, error) {
	args := m.Called(ctx, id, update)
	r, _ := args.Get(0).(*service.UpdateResult)
	return r, args.Error(1)
}

func (m *mockTransactionService) Remove(ctx context.Context, id int64) (*service.DeleteResult, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*service.DeleteResult)
	return r, args.Error(1)
}

func asCaller(id int64) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithCaller(ctx.Context(), &auth.Caller{ID: id, Email: "a@b.co"})))
	}
}

func newTestAPI(t *testing.T, svc *mockTransactionService, middlewares huma.Middlewares) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc, middlewares).Register(api)
	NewListTransactionsHandler(svc, middlewares).Register(api)
	NewPaginateTransactionsHandler(svc, middlewares).Register(api)
	NewSumTransactionsHandler(svc, middlewares).Register(api)
	NewFindTransactionHandler(svc, middlewares).Register(api)
	NewUpdateTransactionHandler(svc, middlewares).Register(api)
	NewRemoveTransactionHandler(svc, middlewares).Register(api)
	return api
}

func strPtr(s string) *string { return &s }

func TestHTTP_CreateTransaction(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	categoryID := int64(4)

	t.Run("success", func(t *testing.T) {
		svc := new(mockTransactionService)
		svc.On("Create", mock.Anything, service.TransactionCreate{
			Title:      "Salary",
			Type:       strPtr("income"),
			Amount:     decimal.RequireFromString("100.5"),
			CategoryID: &categoryID,
		}, int64(1)).Return(&service.Transaction{
			ID: 9, Title: "Salary", Type: strPtr("income"), Amount: decimal.RequireFromString("100.5"),
			UserID: 1, CategoryID: &categoryID, CreatedAt: created, UpdatedAt: created,
		}, nil)

		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Post("/api/transactions", map[string]any{
			"title": "Salary", "amount": "100.5", "type": "income", "categoryID": 4,
		})
		assert.Equal(t, http.StatusCreated, resp.Code)

		var body Transaction
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(9), body.ID)
		assert.Equal(t, "100.50", body.Amount)
		require.NotNil(t, body.Type)
		assert.Equal(t, "income", *body.Type)
		assert.Equal(t, "2025-06-01T12:00:00Z", body.CreatedAt)
		svc.AssertExpectations(t)
	})

	t.Run("invalid amount", func(t *testing.T) {
		svc := new(mockTransactionService)
		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Post("/api/transactions", map[string]any{
			"title": "Salary", "amount": "lots",
		})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		svc.AssertNotCalled(t, "Create")
	})

	t.Run("foreign category", func(t *testing.T) {
		svc := new(mockTransactionService)
		svc.On("Create", mock.Anything, mock.Anything, int64(1)).Return(nil, apperror.BadRequest("category not found"))

		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Post("/api/transactions", map[string]any{
			"title": "Salary", "amount": "1", "categoryID": 77,
		})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "category not found")
	})

	t.Run("no caller", func(t *testing.T) {
		svc := new(mockTransactionService)
		resp := newTestAPI(t, svc, nil).Post("/api/transactions", map[string]any{"title": "Salary", "amount": "1"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestHTTP_ListTransactions(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("FindAll", mock.Anything, int64(1)).Return([]service.Transaction{
		{ID: 2, Title: "Rent", Amount: decimal.RequireFromString("-800"), UserID: 1,
			Category: &service.Category{ID: 4, Title: "Home"}},
		{ID: 1, Title: "Coffee", Amount: decimal.RequireFromString("-3.2"), UserID: 1},
	}, nil)

	resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Get("/api/transactions")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body []Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "-800.00", body[0].Amount)
	require.NotNil(t, body[0].Category)
	assert.Equal(t, "Home", body[0].Category.Title)
	assert.Nil(t, body[1].Category)
}

func TestHTTP_PaginateTransactions(t *testing.T) {
	t.Run("explicit page", func(t *testing.T) {
		svc := new(mockTransactionService)
		svc.On("FindAllWithPagination", mock.Anything, int64(1), 2, 5).Return([]service.Transaction{
			{ID: 6, Title: "Book", Amount: decimal.RequireFromString("-15"), UserID: 1,
				User: &service.User{ID: 1, Email: "a@b.co"}},
		}, nil)

		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Get("/api/transactions/pagination?page=2&limit=5")
		assert.Equal(t, http.StatusOK, resp.Code)

		var body []Transaction
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 1)
		require.NotNil(t, body[0].User)
		assert.Equal(t, "a@b.co", body[0].User.Email)
	})

	t.Run("defaults", func(t *testing.T) {
		svc := new(mockTransactionService)
		svc.On("FindAllWithPagination", mock.Anything, int64(1), 1, 10).Return([]service.Transaction{}, nil)

		resp := newTestAPI(t, svc, huma.Middlewares{asCaller(1)}).Get("/api/transactions/pagination")
		assert.Equal(t, http.StatusOK, resp.Code)
		svc.AssertExpectations(t)
	})
}

func TestHTTP_SumTransactions(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("FindAllByType", mock.Anything, int64(1), "income").Return(decimal.RequireFromString("142"), nil)
	svc.On("FindAllByType", mock.Anything, int64(1), "gift").Return(decimal.Zero, nil)
	api := newTestAPI(t, svc, huma.Middlewares{asCaller(1)})

	resp := api.Get("/api/transactions/income/find")
	assert.Equal(t, http.StatusOK, resp.Code)
	var body SumResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "142.00", body.Total)

	resp = api.Get("/api/transactions/gift/find")
	assert.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "0.00", body.Total)
}

func TestHTTP_FindTransaction(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("FindOne", mock.Anything, int64(3)).Return(&service.Transaction{
		ID: 3, Title: "Coffee", Amount: decimal.RequireFromString("-3.2"), UserID: 1,
	}, nil)
	svc.On("FindOne", mock.Anything, int64(4)).Return(nil, apperror.NotFound("transaction not found"))
	api := newTestAPI(t, svc, nil)

	resp := api.Get("/api/transactions/transaction/3")
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/transactions/transaction/4")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/api/transactions/transaction/0")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHTTP_UpdateTransaction(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		svc := new(mockTransactionService)
		svc.On("Update", mock.Anything, int64(3), service.TransactionUpdate{
			Title:  omit.From("Espresso"),
			Amount: omit.From(decimal.RequireFromString("-2.5")),
		}).Return(&service.UpdateResult{Affected: 1}, nil)

		resp := newTestAPI(t, svc, nil).Patch("/api/transactions/transaction/3", map[string]any{
			"title": "Espresso", "amount": "-2.5",
		})
		assert.Equal(t, http.StatusOK, resp.Code)

		var body TransactionAffectedResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(1), body.Affected)
		svc.AssertExpectations(t)
	})

	t.Run("clears type and category", func(t *testing.T) {
		svc := new(mockTransactionService)
		svc.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(u service.TransactionUpdate) bool {
			return u.Type.IsNull() && u.CategoryID.IsNull() && u.Title.IsUnset()
		})).Return(&service.UpdateResult{Affected: 1}, nil)

		resp := newTestAPI(t, svc, nil).Patch("/api/transactions/transaction/3", map[string]any{
			"type": "", "categoryID": 0,
		})
		assert.Equal(t, http.StatusOK, resp.Code)
		svc.AssertExpectations(t)
	})

	t.Run("sets category", func(t *testing.T) {
		svc := new(mockTransactionService)
		svc.On("Update", mock.Anything, int64(3), service.TransactionUpdate{
			CategoryID: omitnull.From(int64(4)),
		}).Return(nil, apperror.BadRequest("category not found"))

		resp := newTestAPI(t, svc, nil).Patch("/api/transactions/transaction/3", map[string]any{"categoryID": 4})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("invalid amount", func(t *testing.T) {
		svc := new(mockTransactionService)
		resp := newTestAPI(t, svc, nil).Patch("/api/transactions/transaction/3", map[string]any{"amount": "x"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		svc.AssertNotCalled(t, "Update")
	})
}

func TestHTTP_RemoveTransaction(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("Remove", mock.Anything, int64(3)).Return(&service.DeleteResult{Affected: 1}, nil)
	api := newTestAPI(t, svc, nil)

	resp := api.Delete("/api/transactions/transaction/3")
	assert.Equal(t, http.StatusOK, resp.Code)

	var body TransactionAffectedResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(1), body.Affected)
}
