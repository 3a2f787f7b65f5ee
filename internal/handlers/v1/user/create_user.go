package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// CreateUserBody is the request body for registering a user.
type CreateUserBody struct {
	Email    string `json:"email" format:"email" maxLength:"254" doc:"Email address, unique per user"`
	Password string `json:"password" minLength:"6" maxLength:"72" doc:"Plain-text password"`
}

// CreateUserInput is the Huma input for registering a user.
type CreateUserInput struct {
	Body CreateUserBody
}

// CreateUserResponse is the response body for a registered user.
type CreateUserResponse struct {
	User  User   `json:"user" doc:"The new user"`
	Token string `json:"token" doc:"Bearer session token"`
}

// CreateUserOutput is the Huma output for registering a user.
type CreateUserOutput struct {
	Status int
	Body   CreateUserResponse
}

type userCreator interface {
	Create(ctx context.Context, email, password string) (*service.Registration, error)
}

// CreateUserHandler handles POST /api/user.
type CreateUserHandler struct {
	UserService userCreator
}

func NewCreateUserHandler(svc userCreator) *CreateUserHandler {
	return &CreateUserHandler{UserService: svc}
}

// Register registers the create user endpoint with the Huma API.
func (h *CreateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/api/user",
		Summary:     "Register user",
		Description: "Creates a user and returns a session token.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *CreateUserHandler) handle(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createUserMs")
	}
	registration, err := h.UserService.Create(ctx, input.Body.Email, input.Body.Password)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to create user")
	}

	if logData != nil {
		logData.AddData("userID", registration.User.ID)
	}

	return &CreateUserOutput{
		Status: http.StatusCreated,
		Body: CreateUserResponse{
			User:  toUser(registration.User),
			Token: registration.Token,
		},
	}, nil
}

func toUser(u service.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}
