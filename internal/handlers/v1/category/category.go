package category

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID           int64                 `json:"id" doc:"Category id"`
	Title        string                `json:"title" doc:"Category title"`
	UserID       int64                 `json:"userID" doc:"Owning user id"`
	CreatedAt    string                `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt    string                `json:"updatedAt" doc:"RFC3339 last update time"`
	Transactions []CategoryTransaction `json:"transactions" doc:"Transactions filed under this category"`
}

// CategoryTransaction is the trimmed transaction shape nested in a category.
type CategoryTransaction struct {
	ID        int64   `json:"id" doc:"Transaction id"`
	Title     string  `json:"title" doc:"Transaction title"`
	Type      *string `json:"type,omitempty" doc:"Type tag"`
	Amount    string  `json:"amount" doc:"Decimal amount"`
	CreatedAt string  `json:"createdAt" doc:"RFC3339 creation time"`
}

// GuardedPath is the input shared by the {type}/{id} category routes.
type GuardedPath struct {
	Type string `path:"type" doc:"Resource type tag, category for these routes"`
	ID   int64  `path:"id" minimum:"1" doc:"Category id"`
}

func toCategory(c *service.Category) Category {
	out := Category{
		ID:           c.ID,
		Title:        c.Title,
		UserID:       c.UserID,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
		Transactions: make([]CategoryTransaction, len(c.Transactions)),
	}
	for i, t := range c.Transactions {
		out.Transactions[i] = CategoryTransaction{
			ID:        t.ID,
			Title:     t.Title,
			Type:      t.Type,
			Amount:    t.Amount.StringFixed(2),
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		}
	}
	return out
}
