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
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Sign(42, "a@b.c")
	require.NoError(t, err)

	caller, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, &Caller{ID: 42, Email: "a@b.c"}, caller)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Sign(42, "a@b.c")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewTokenIssuer("another", time.Hour).Parse(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenIssuer("secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Parse(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not.a.token")
		assert.Error(t, err)
	})

	t.Run("non-positive subject", func(t *testing.T) {
		zero, err := issuer.Sign(0, "a@b.c")
		require.NoError(t, err)
		_, err = issuer.Parse(zero)
		assert.Error(t, err)
	})
}

type whoAmIOutput struct {
	Body struct {
		ID int64 `json:"id"`
	}
}

func newAuthTestAPI(t *testing.T, issuer *TokenIssuer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/whoami",
		Middlewares: huma.Middlewares{Middleware(api, issuer)},
	}, func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		out := &whoAmIOutput{}
		out.Body.ID = CallerFromContext(ctx).ID
		return out, nil
	})
	return api
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	api := newAuthTestAPI(t, issuer)

	t.Run("missing header", func(t *testing.T) {
		resp := api.Get("/whoami")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		resp := api.Get("/whoami", "Authorization: Basic abc")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := api.Get("/whoami", "Authorization: Bearer nope")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := issuer.Sign(7, "a@b.c")
		require.NoError(t, err)

		resp := api.Get("/whoami", "Authorization: Bearer "+token)
		assert.Equal(t, http.StatusOK, resp.Code)
		var body struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(7), body.ID)
	})
}

func TestCallerFromContext_Absent(t *testing.T) {
	assert.Nil(t, CallerFromContext(context.Background()))
}
