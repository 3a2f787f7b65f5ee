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

// PaginateTransactionsInput selects one page. Out of range values are
// normalized by the service rather than rejected.
type PaginateTransactionsInput struct {
	Page  int `query:"page" default:"1" doc:"1-based page number"`
	Limit int `query:"limit" default:"10" doc:"Page size, at most 100"`
}

type PaginateTransactionsOutput struct {
	Body []Transaction
}

type transactionPaginator interface {
	FindAllWithPagination(ctx context.Context, ownerID int64, page, pageSize int) ([]service.Transaction, error)
}

// PaginateTransactionsHandler handles GET /api/transactions/pagination.
type PaginateTransactionsHandler struct {
	TransactionService transactionPaginator
	Middlewares        huma.Middlewares
}

func NewPaginateTransactionsHandler(svc transactionPaginator, middlewares huma.Middlewares) *PaginateTransactionsHandler {
	return &PaginateTransactionsHandler{TransactionService: svc, Middlewares: middlewares}
}

func (h *PaginateTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "paginate-transactions",
		Method:      http.MethodGet,
		Path:        "/api/transactions/pagination",
		Summary:     "Page through transactions",
		Description: "Returns one page of the caller's transactions, newest first, with category and owner.",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *PaginateTransactionsHandler) handle(ctx context.Context, input *PaginateTransactionsInput) (*PaginateTransactionsOutput, error) {
	caller, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := h.TransactionService.FindAllWithPagination(ctx, caller.ID, input.Page, input.Limit)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to list transactions")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("page", input.Page)
		logData.AddData("transactionCount", len(transactions))
	}
	return &PaginateTransactionsOutput{Body: toTransactions(transactions)}, nil
}
