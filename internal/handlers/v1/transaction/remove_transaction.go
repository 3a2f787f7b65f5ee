package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type RemoveTransactionInput struct {
	GuardedPath
}

type RemoveTransactionOutput struct {
	Body TransactionAffectedResponse
}

type transactionRemover interface {
	Remove(ctx context.Context, id int64) (*service.DeleteResult, error)
}

// RemoveTransactionHandler handles DELETE /api/transactions/{type}/{id}.
type RemoveTransactionHandler struct {
	TransactionService transactionRemover
	Middlewares        huma.Middlewares
}

func NewRemoveTransactionHandler(svc transactionRemover, middlewares huma.Middlewares) *RemoveTransactionHandler {
	return &RemoveTransactionHandler{TransactionService: svc, Middlewares: middlewares}
}

func (h *RemoveTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "remove-transaction",
		Method:      http.MethodDelete,
		Path:        "/api/transactions/{type}/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *RemoveTransactionHandler) handle(ctx context.Context, input *RemoveTransactionInput) (*RemoveTransactionOutput, error) {
	result, err := h.TransactionService.Remove(ctx, input.ID)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to delete transaction")
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("transactionID", input.ID)
	}
	return &RemoveTransactionOutput{Body: TransactionAffectedResponse{Affected: result.Affected}}, nil
}
