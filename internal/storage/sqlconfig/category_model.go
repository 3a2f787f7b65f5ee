package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
)

// Category represents a categories row.
type Category struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CategoryCreate is the input for creating a new category.
type CategoryCreate struct {
	Title  string
	UserID int64
}

// CategoryUpdate holds the fields to replace. Unset fields are left alone.
type CategoryUpdate struct {
	Title omit.Val[string]
}

// ICategoryTable defines the interface for category storage operations.
// Lookups return a nil row and no error when nothing matches.
//
//go:generate mockery --name ICategoryTable --output mock_ICategoryTable.go
type ICategoryTable interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindByTitle(ctx context.Context, userID int64, title string) (*Category, error)
	ListByUser(ctx context.Context, userID int64) ([]*Category, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	Update(ctx context.Context, id int64, update *CategoryUpdate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
