package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// ProfileResponse is the authenticated caller's identity.
type ProfileResponse struct {
	ID    int64  `json:"id" doc:"User id"`
	Email string `json:"email" doc:"Email address"`
}

type ProfileOutput struct {
	Body ProfileResponse
}

type profileService interface {
	Profile(ctx context.Context, id int64) (*service.User, error)
}

// ProfileHandler handles GET /api/auth/profile.
type ProfileHandler struct {
	UserService profileService
	Middlewares huma.Middlewares
}

func NewProfileHandler(svc profileService, middlewares huma.Middlewares) *ProfileHandler {
	return &ProfileHandler{UserService: svc, Middlewares: middlewares}
}

func (h *ProfileHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/auth/profile",
		Summary:     "Get profile",
		Description: "Returns the identity behind the bearer token.",
		Tags:        []string{"Auth"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *ProfileHandler) handle(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	caller, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.UserService.Profile(ctx, caller.ID)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to load profile")
	}
	return &ProfileOutput{Body: ProfileResponse{ID: user.ID, Email: user.Email}}, nil
}
