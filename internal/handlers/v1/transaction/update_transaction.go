package transaction

import (
	"context"
	"net/http"

	"github.com/aarondl/opt/omit"
	"github.com/aarondl/opt/omitnull"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// UpdateTransactionBody holds the fields to change. Absent fields are kept;
// an empty type or a categoryID of 0 clears that field.
type UpdateTransactionBody struct {
	Title      *string `json:"title,omitempty" minLength:"1" maxLength:"255" doc:"New title"`
	Amount     *string `json:"amount,omitempty" doc:"New signed decimal amount"`
	Type       *string `json:"type,omitempty" maxLength:"64" doc:"New type tag, empty to clear"`
	CategoryID *int64  `json:"categoryID,omitempty" minimum:"0" doc:"New category id, 0 to clear"`
}

type UpdateTransactionInput struct {
	GuardedPath
	Body UpdateTransactionBody
}

type UpdateTransactionOutput struct {
	Body TransactionAffectedResponse
}

type transactionUpdater interface {
	Update(ctx context.Context, id int64, update service.TransactionUpdate) (*service.UpdateResult, error)
}

// UpdateTransactionHandler handles PATCH /api/transactions/{type}/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
	Middlewares        huma.Middlewares
}

func NewUpdateTransactionHandler(svc transactionUpdater, middlewares huma.Middlewares) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc, Middlewares: middlewares}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPatch,
		Path:        "/api/transactions/{type}/{id}",
		Summary:     "Update transaction",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.TransactionUpdate, error) {
	update := service.TransactionUpdate{
		Title: omit.FromPtr(input.Body.Title),
	}
	if input.Body.Amount != nil {
		amount, err := decimal.NewFromString(*input.Body.Amount)
		if err != nil {
			return service.TransactionUpdate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
		}
		update.Amount = omit.From(amount)
	}
	if input.Body.Type != nil {
		if *input.Body.Type == "" {
			update.Type = omitnull.FromPtr[string](nil)
		} else {
			update.Type = omitnull.From(*input.Body.Type)
		}
	}
	if input.Body.CategoryID != nil {
		if *input.Body.CategoryID == 0 {
			update.CategoryID = omitnull.FromPtr[int64](nil)
		} else {
			update.CategoryID = omitnull.From(*input.Body.CategoryID)
		}
	}
	return update, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	update, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	result, err := h.TransactionService.Update(ctx, input.ID, update)
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to update transaction")
	}
	return &UpdateTransactionOutput{Body: TransactionAffectedResponse{Affected: result.Affected}}, nil
}
