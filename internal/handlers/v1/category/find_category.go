package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type FindCategoryInput struct {
	GuardedPath
}

type FindCategoryOutput struct {
	Body Category
}

type categoryFinder interface {
	FindOne(ctx context.Context, id int64) (*service.Category, error)
}

// FindCategoryHandler handles GET /api/categories/{type}/{id}.
type FindCategoryHandler struct {
	CategoryService categoryFinder
	Middlewares     huma.Middlewares
}

func NewFindCategoryHandler(svc categoryFinder, middlewares huma.Middlewares) *FindCategoryHandler {
	return &FindCategoryHandler{CategoryService: svc, Middlewares: middlewares}
}

func (h *FindCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "find-category",
		Method:      http.MethodGet,
		Path:        "/api/categories/{type}/{id}",
		Summary:     "Get category",
		Tags:        []string{"Categories"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *FindCategoryHandler) handle(ctx context.Context, input *FindCategoryInput) (*FindCategoryOutput, error) {
	found, err := h.CategoryService.FindOne(ctx, input.ID)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to load category")
	}
	return &FindCategoryOutput{Body: toCategory(found)}, nil
}
