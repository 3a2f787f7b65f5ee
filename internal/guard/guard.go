// Package guard checks that the authenticated caller owns the resource named
// by a request before the request reaches the stores.
package guard

import (
	"context"
	"strconv"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Resource is a kind of user-owned entity the guard can check.
type Resource int

const (
	ResourceTransaction Resource = iota + 1
	ResourceCategory
)

func (r Resource) String() string {
	switch r {
	case ResourceTransaction:
		return "transaction"
	case ResourceCategory:
		return "category"
	}
	return "unknown"
}

// ParseResource maps a route type tag to a Resource.
func ParseResource(tag string) (Resource, error) {
	switch tag {
	case "transaction":
		return ResourceTransaction, nil
	case "category":
		return ResourceCategory, nil
	}
	return 0, apperror.NotFound("unsupported resource type")
}

// OwnershipGuard loads the named resource and compares its owner with the caller.
type OwnershipGuard struct {
	Transactions sqlconfig.ITransactionTable
	Categories   sqlconfig.ICategoryTable
}

func NewOwnershipGuard(transactions sqlconfig.ITransactionTable, categories sqlconfig.ICategoryTable) *OwnershipGuard {
	return &OwnershipGuard{
		Transactions: transactions,
		Categories:   categories,
	}
}

// CanActivate returns nil when callerID owns the resource identified by tag and rawID.
func (g *OwnershipGuard) CanActivate(ctx context.Context, callerID int64, tag, rawID string) error {
	resource, err := ParseResource(tag)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return apperror.BadRequest("invalid id")
	}

	ownerID, found, err := g.ownerOf(ctx, resource, id)
	if err != nil {
		return err
	}
	if !found {
		return apperror.BadRequest("entity not found")
	}
	if ownerID != callerID {
		return apperror.BadRequest("not the author")
	}
	return nil
}

func (g *OwnershipGuard) ownerOf(ctx context.Context, resource Resource, id int64) (int64, bool, error) {
	switch resource {
	case ResourceTransaction:
		row, err := g.Transactions.FindByID(ctx, id)
		if err != nil || row == nil {
			return 0, false, err
		}
		return row.UserID, true, nil
	case ResourceCategory:
		row, err := g.Categories.FindByID(ctx, id)
		if err != nil || row == nil {
			return 0, false, err
		}
		return row.UserID, true, nil
	}
	return 0, false, apperror.NotFound("unsupported resource type")
}
