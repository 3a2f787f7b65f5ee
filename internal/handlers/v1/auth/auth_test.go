package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	session, _ := args.Get(0).(*service.Session)
	return session, args.Error(1)
}

func (m *mockUserService) Profile(ctx context.Context, id int64) (*service.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*service.User)
	return user, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockUserService, issuer *auth.TokenIssuer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewLoginHandler(svc).Register(api)
	NewProfileHandler(svc, huma.Middlewares{auth.Middleware(api, issuer)}).Register(api)
	return api
}

func TestHTTP_Login(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)

	t.Run("success", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "a@b.c", "hunter22").Return(&service.Session{ID: 1, Email: "a@b.c", Token: "tok"}, nil)

		resp := newTestAPI(t, svc, issuer).Post("/api/auth/login", LoginBody{Email: "a@b.c", Password: "hunter22"})
		assert.Equal(t, http.StatusOK, resp.Code)

		var body LoginResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, LoginResponse{ID: 1, Email: "a@b.c", Token: "tok"}, body)
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := new(mockUserService)
		svc.On("Login", mock.Anything, "a@b.c", "nope").Return(nil, apperror.Unauthorized("invalid email or password"))

		resp := newTestAPI(t, svc, issuer).Post("/api/auth/login", LoginBody{Email: "a@b.c", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestHTTP_Profile(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Sign(3, "a@b.c")
	require.NoError(t, err)

	svc := new(mockUserService)
	svc.On("Profile", mock.Anything, int64(3)).Return(&service.User{ID: 3, Email: "a@b.c"}, nil)
	api := newTestAPI(t, svc, issuer)

	resp := api.Get("/api/auth/profile", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
	var body ProfileResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, ProfileResponse{ID: 3, Email: "a@b.c"}, body)

	resp = api.Get("/api/auth/profile")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	svc.AssertNumberOfCalls(t, "Profile", 1)
}
