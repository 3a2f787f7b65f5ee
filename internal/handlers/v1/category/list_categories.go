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

type ListCategoriesOutput struct {
	Body []Category
}

type categoryLister interface {
	FindAll(ctx context.Context, ownerID int64) ([]service.Category, error)
}

// ListCategoriesHandler handles GET /api/categories.
type ListCategoriesHandler struct {
	CategoryService categoryLister
	Middlewares     huma.Middlewares
}

func NewListCategoriesHandler(svc categoryLister, middlewares huma.Middlewares) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc, Middlewares: middlewares}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/categories",
		Summary:     "List categories",
		Description: "Returns the caller's categories, each with its transactions.",
		Tags:        []string{"Categories"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	caller, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := h.CategoryService.FindAll(ctx, caller.ID)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to list categories")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("categoryCount", len(categories))
	}

	out := make([]Category, len(categories))
	for i := range categories {
		out[i] = toCategory(&categories[i])
	}
	return &ListCategoriesOutput{Body: out}, nil
}
