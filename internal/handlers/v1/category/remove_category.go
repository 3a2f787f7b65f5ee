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

type RemoveCategoryInput struct {
	GuardedPath
}

type RemoveCategoryOutput struct {
	Body CategoryAffectedResponse
}

type categoryRemover interface {
	Remove(ctx context.Context, id int64) (*service.DeleteResult, error)
}

// RemoveCategoryHandler handles DELETE /api/categories/{type}/{id}.
type RemoveCategoryHandler struct {
	CategoryService categoryRemover
	Middlewares     huma.Middlewares
}

func NewRemoveCategoryHandler(svc categoryRemover, middlewares huma.Middlewares) *RemoveCategoryHandler {
	return &RemoveCategoryHandler{CategoryService: svc, Middlewares: middlewares}
}

func (h *RemoveCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "remove-category",
		Method:      http.MethodDelete,
		Path:        "/api/categories/{type}/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category. Its transactions are kept without a category.",
		Tags:        []string{"Categories"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *RemoveCategoryHandler) handle(ctx context.Context, input *RemoveCategoryInput) (*RemoveCategoryOutput, error) {
	result, err := h.CategoryService.Remove(ctx, input.ID)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to delete category")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("categoryID", input.ID)
	}
	return &RemoveCategoryOutput{Body: CategoryAffectedResponse{Affected: result.Affected}}, nil
}
