package transaction

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID         int64                `json:"id" doc:"Transaction id"`
	Title      string               `json:"title" doc:"Transaction title"`
	Type       *string              `json:"type,omitempty" doc:"Type tag such as income or expense"`
	Amount     string               `json:"amount" doc:"Decimal amount"`
	UserID     int64                `json:"userID" doc:"Owning user id"`
	CategoryID *int64               `json:"categoryID,omitempty" doc:"Category id, absent when uncategorized"`
	CreatedAt  string               `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt  string               `json:"updatedAt" doc:"RFC3339 last update time"`
	Category   *TransactionCategory `json:"category,omitempty" doc:"Category, on reads that join it"`
	User       *TransactionOwner    `json:"user,omitempty" doc:"Owner, on the paginated list"`
}

type TransactionCategory struct {
	ID    int64  `json:"id" doc:"Category id"`
	Title string `json:"title" doc:"Category title"`
}

type TransactionOwner struct {
	ID    int64  `json:"id" doc:"User id"`
	Email string `json:"email" doc:"Email address"`
}

// GuardedPath is the input shared by the {type}/{id} transaction routes.
type GuardedPath struct {
	Type string `path:"type" doc:"Resource type tag, transaction for these routes"`
	ID   int64  `path:"id" minimum:"1" doc:"Transaction id"`
}

// TransactionAffectedResponse reports how many rows a mutation touched.
type TransactionAffectedResponse struct {
	Affected int64 `json:"affected" doc:"Number of rows changed"`
}

func toTransaction(t *service.Transaction) Transaction {
	out := Transaction{
		ID:         t.ID,
		Title:      t.Title,
		Type:       t.Type,
		Amount:     t.Amount.StringFixed(2),
		UserID:     t.UserID,
		CategoryID: t.CategoryID,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Category != nil {
		out.Category = &TransactionCategory{ID: t.Category.ID, Title: t.Category.Title}
	}
	if t.User != nil {
		out.User = &TransactionOwner{ID: t.User.ID, Email: t.User.Email}
	}
	return out
}

func toTransactions(transactions []service.Transaction) []Transaction {
	out := make([]Transaction, len(transactions))
	for i := range transactions {
		out[i] = toTransaction(&transactions[i])
	}
	return out
}
