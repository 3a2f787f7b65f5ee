package category

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// UpdateCategoryBody holds the fields to change. Absent fields are kept.
type UpdateCategoryBody struct {
	Title *string `json:"title,omitempty" minLength:"1" maxLength:"255" doc:"New title"`
}

type UpdateCategoryInput struct {
	GuardedPath
	Body UpdateCategoryBody
}

// CategoryAffectedResponse reports how many rows a mutation touched.
type CategoryAffectedResponse struct {
	Affected int64 `json:"affected" doc:"Number of rows changed"`
}

type UpdateCategoryOutput struct {
	Body CategoryAffectedResponse
}

type categoryUpdater interface {
	Update(ctx context.Context, id int64, update service.CategoryUpdate) (*service.UpdateResult, error)
}

// UpdateCategoryHandler handles PATCH /api/categories/{type}/{id}.
type UpdateCategoryHandler struct {
	CategoryService categoryUpdater
	Middlewares     huma.Middlewares
}

func NewUpdateCategoryHandler(svc categoryUpdater, middlewares huma.Middlewares) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{CategoryService: svc, Middlewares: middlewares}
}

func (h *UpdateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/api/categories/{type}/{id}",
		Summary:     "Update category",
		Tags:        []string{"Categories"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *UpdateCategoryHandler) handle(ctx context.Context, input *UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	result, err := h.CategoryService.Update(ctx, input.ID, service.CategoryUpdate{
		Title: omit.FromPtr(input.Body.Title),
	})
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to update category")
	}
	return &UpdateCategoryOutput{Body: CategoryAffectedResponse{Affected: result.Affected}}, nil
}
