package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Title      string  `json:"title" minLength:"1" maxLength:"255" doc:"Name of the transaction"`
	Amount     string  `json:"amount" doc:"Signed decimal amount"`
	Type       *string `json:"type,omitempty" maxLength:"64" doc:"Optional type tag such as income or expense"`
	CategoryID *int64  `json:"categoryID,omitempty" minimum:"1" doc:"Optional category id owned by the caller"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   Transaction
}

type transactionCreator interface {
	Create(ctx context.Context, create service.TransactionCreate, ownerID int64) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /api/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
	Middlewares        huma.Middlewares
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator, middlewares huma.Middlewares) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, Middlewares: middlewares}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/api/transactions",
		Summary:     "Create transaction",
		Description: "Creates a new transaction owned by the caller.",
		Tags:        []string{"Transactions"},
		Security:    auth.Secured(),
		Middlewares: h.Middlewares,
	}, h.handle)
}

// parseCreateTransactionInput validates the fields Huma's schema cannot.
func parseCreateTransactionInput(input *CreateTransactionInput) (service.TransactionCreate, error) {
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return service.TransactionCreate{}, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	return service.TransactionCreate{
		Title:      input.Body.Title,
		Type:       input.Body.Type,
		Amount:     amount,
		CategoryID: input.Body.CategoryID,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	caller, err := auth.RequireCaller(ctx)
	if err != nil {
		return nil, err
	}
	create, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	created, err := h.TransactionService.Create(ctx, create, caller.ID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apperror.ToHuma(err, "failed to create transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", created.ID)
	}
	return &CreateTransactionOutput{Status: http.StatusCreated, Body: toTransaction(created)}, nil
}
