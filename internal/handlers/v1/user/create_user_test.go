package user

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type mockUserCreator struct {
	mock.Mock
}

func (m *mockUserCreator) Create(ctx context.Context, email, password string) (*service.Registration, error) {
	args := m.Called(ctx, email, password)
	reg, _ := args.Get(0).(*service.Registration)
	return reg, args.Error(1)
}

func newTestAPI(t *testing.T, svc userCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateUserHandler(svc).Register(api)
	return api
}

func TestHTTP_CreateUser_Success(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mockSvc := new(mockUserCreator)
	mockSvc.On("Create", mock.Anything, "a@b.c", "hunter22").Return(&service.Registration{
		User:  service.User{ID: 4, Email: "a@b.c", CreatedAt: created, UpdatedAt: created},
		Token: "tok",
	}, nil)

	resp := newTestAPI(t, mockSvc).Post("/api/user", CreateUserBody{Email: "a@b.c", Password: "hunter22"})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateUserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(4), body.User.ID)
	assert.Equal(t, "2025-06-01T12:00:00Z", body.User.CreatedAt)
	assert.Equal(t, "tok", body.Token)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateUser_EmailTaken(t *testing.T) {
	mockSvc := new(mockUserCreator)
	mockSvc.On("Create", mock.Anything, "a@b.c", "hunter22").Return(nil, apperror.BadRequest("this email already exists"))

	resp := newTestAPI(t, mockSvc).Post("/api/user", CreateUserBody{Email: "a@b.c", Password: "hunter22"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "this email already exists")
}

func TestHTTP_CreateUser_Validation(t *testing.T) {
	mockSvc := new(mockUserCreator)
	api := newTestAPI(t, mockSvc)

	resp := api.Post("/api/user", CreateUserBody{Email: "not-an-email", Password: "hunter22"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Post("/api/user", CreateUserBody{Email: "a@b.c", Password: "123"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	mockSvc.AssertNotCalled(t, "Create")
}
