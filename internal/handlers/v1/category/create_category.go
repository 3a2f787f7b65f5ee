package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Title string `json:"title" minLength:"1" maxLength:"255" doc:"Category title, unique per user"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	Body CreateCategoryBody
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Status int
	Body   Category
}

type categoryCreator interface {
	Create(ctx context.Context, title string, ownerID int64) (*service.Category, error)
}

// CreateCategoryHandler handles POST /api/categories.
type CreateCategoryHandler struct {
	CategoryService categoryCreator
	Middlewares     huma.Middlewares
}

func NewCreateCategoryHandler(svc categoryCreator, middlewares huma.Middlewares) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc, Middlewares: middlewares}
}

// Register registers the create category endpoint with the Huma API.
func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-category",
		Method:      http.MethodPost,
		Path:        "/api/categories",
		Summary:     "Create category",
		Description: "Creates a category owned by the caller.",
		Tags:        []string{"Categories"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	caller, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createCategoryMs")
	}
	created, err := h.CategoryService.Create(ctx, input.Body.Title, caller.ID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to create category")
	}

	if logData != nil {
		logData.AddData("categoryID", created.ID)
	}
	return &CreateCategoryOutput{Status: http.StatusCreated, Body: toCategory(created)}, nil
}
