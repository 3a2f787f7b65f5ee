package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// LoginBody is the request body for logging in.
type LoginBody struct {
	Email    string `json:"email" format:"email" doc:"Email address"`
	Password string `json:"password" minLength:"1" doc:"Plain-text password"`
}

// LoginInput is the Huma input for logging in.
type LoginInput struct {
	Body LoginBody
}

// LoginResponse carries the identity and a fresh session token.
type LoginResponse struct {
	ID    int64  `json:"id" doc:"User id"`
	Email string `json:"email" doc:"Email address"`
	Token string `json:"token" doc:"Bearer session token"`
}

// LoginOutput is the Huma output for logging in.
type LoginOutput struct {
	Body LoginResponse
}

type loginService interface {
	Login(ctx context.Context, email, password string) (*service.Session, error)
}

// LoginHandler handles POST /api/auth/login.
type LoginHandler struct {
	UserService loginService
}

func NewLoginHandler(svc loginService) *LoginHandler {
	return &LoginHandler{UserService: svc}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Description: "Exchanges email and password for a session token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	session, err := h.UserService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to log in")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("userID", session.ID)
	}

	return &LoginOutput{Body: LoginResponse{
		ID:    session.ID,
		Email: session.Email,
		Token: session.Token,
	}}, nil
}
