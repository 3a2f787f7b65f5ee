package guard

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
)

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) CanActivate(ctx context.Context, callerID int64, tag, rawID string) error {
	return m.Called(ctx, callerID, tag, rawID).Error(0)
}

type fixedCaller struct {
	caller *auth.Caller
}

func (f fixedCaller) Parse(string) (*auth.Caller, error) {
	return f.caller, nil
}

func newGuardTestAPI(t *testing.T, checker Checker) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	huma.Register(api, huma.Operation{
		OperationID: "get-thing",
		Method:      http.MethodGet,
		Path:        "/things/{type}/{id}",
		Middlewares: huma.Middlewares{
			auth.Middleware(api, fixedCaller{caller: &auth.Caller{ID: 1}}),
			Middleware(api, checker, logger, ResourceTransaction),
		},
	}, func(ctx context.Context, input *struct {
		Type string `path:"type"`
		ID   string `path:"id"`
	}) (*struct{}, error) {
		return nil, nil
	})
	return api
}

func TestMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "allowed", err: nil, status: http.StatusNoContent},
		{name: "not the author", err: apperror.BadRequest("not the author"), status: http.StatusBadRequest},
		{name: "unsupported type", err: apperror.NotFound("unsupported resource type"), status: http.StatusNotFound},
		{name: "storage failure", err: assert.AnError, status: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checker := new(mockChecker)
			checker.On("CanActivate", mock.Anything, int64(1), "transaction", "5").Return(tc.err)

			resp := newGuardTestAPI(t, checker).Get("/things/transaction/5", "Authorization: Bearer x")
			assert.Equal(t, tc.status, resp.Code)
			checker.AssertExpectations(t)
		})
	}
}

func TestMiddleware_RequiresCaller(t *testing.T) {
	checker := new(mockChecker)
	resp := newGuardTestAPI(t, checker).Get("/things/transaction/5")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	checker.AssertNotCalled(t, "CanActivate")
}

func TestMiddleware_RejectsOtherResourceTag(t *testing.T) {
	for _, tag := range []string{"category", "budget"} {
		t.Run(tag, func(t *testing.T) {
			checker := new(mockChecker)

			resp := newGuardTestAPI(t, checker).Get("/things/"+tag+"/5", "Authorization: Bearer x")
			assert.Equal(t, http.StatusNotFound, resp.Code)
			assert.Contains(t, resp.Body.String(), "unsupported resource type")
			checker.AssertNotCalled(t, "CanActivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
