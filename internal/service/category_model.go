package service

import (
	"time"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Category is a user-owned grouping of transactions.
type Category struct {
	ID           int64
	Title        string
	UserID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Transactions []Transaction
}

// CategoryUpdate holds the fields to replace.
type CategoryUpdate struct {
	Title omit.Val[string]
}

func categoryFromRow(row *sqlconfig.Category) Category {
	return Category{
		ID:        row.ID,
		Title:     row.Title,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
