package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
)

type SumTransactionsInput struct {
	Type string `path:"type" minLength:"1" maxLength:"64" doc:"Type tag to total"`
}

type SumResponse struct {
	Total string `json:"total" doc:"Sum of amounts, 0 when nothing matches"`
}

type SumTransactionsOutput struct {
	Body SumResponse
}

type transactionSummer interface {
	FindAllByType(ctx context.Context, ownerID int64, transactionType string) (decimal.Decimal, error)
}

// SumTransactionsHandler handles GET /api/transactions/{type}/find.
type SumTransactionsHandler struct {
	TransactionService transactionSummer
	Middlewares        huma.Middlewares
}

func NewSumTransactionsHandler(svc transactionSummer, middlewares huma.Middlewares) *SumTransactionsHandler {
	return &SumTransactionsHandler{TransactionService: svc, Middlewares: middlewares}
}

func (h *SumTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "sum-transactions-by-type",
		Method:      http.MethodGet,
		Path:        "/api/transactions/{type}/find",
		Summary:     "Total by type",
		Description: "Sums the amounts of the caller's transactions carrying the type tag.",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func (h *SumTransactionsHandler) handle(ctx context.Context, input *SumTransactionsInput) (*SumTransactionsOutput, error) {
	caller, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}

	total, err := h.TransactionService.FindAllByType(ctx, caller.ID, input.Type)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to total transactions")
	}
	return &SumTransactionsOutput{Body: SumResponse{Total: total.StringFixed(2)}}, nil
}
