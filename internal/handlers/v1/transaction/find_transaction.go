package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type FindTransactionInput struct {
	GuardedPath
}

type FindTransactionOutput struct {
	Body Transaction
}

type transactionFinder interface {
	FindOne(ctx context.Context, id int64) (*service.Transaction, error)
}

// FindTransactionHandler handles GET /api/transactions/{type}/{id}.
type FindTransactionHandler struct {
	TransactionService transactionFinder
	Middlewares        huma.Middlewares
}

func NewFindTransactionHandler(svc transactionFinder, middlewares huma.Middlewares) *FindTransactionHandler {
	return &FindTransactionHandler{TransactionService: svc, Middlewares: middlewares}
}

func (h *FindTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "find-transaction",
		Method:      http.MethodGet,
		Path:        "/api/transactions/{type}/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *FindTransactionHandler) handle(ctx context.Context, input *FindTransactionInput) (*FindTransactionOutput, error) {
	found, err := h.TransactionService.FindOne(ctx, input.ID)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to load transaction")
	}
	return &FindTransactionOutput{Body: toTransaction(found)}, nil
}
