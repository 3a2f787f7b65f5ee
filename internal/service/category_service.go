package service

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/apperror"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// CategoryService handles category business logic.
type CategoryService struct {
	reader *storage.Reader
	op     actionProcessor
}

func NewCategoryService(reader *storage.Reader, op actionProcessor) *CategoryService {
	return &CategoryService{reader: reader, op: op}
}

// Create adds a category for ownerID. Titles are unique per owner.
func (s *CategoryService) Create(ctx context.Context, title string, ownerID int64) (*Category, error) {
	action := &actions.CreateCategory{UserID: ownerID, Title: title}
	if err := s.op.Process(ctx, action); err != nil {
		return nil, err
	}
	category := categoryFromRow(action.Result)
	category.Transactions = []Transaction{}
	return &category, nil
}

// FindAll returns the owner's categories with their transactions attached.
func (s *CategoryService) FindAll(ctx context.Context, ownerID int64) ([]Category, error) {
	rows, err := s.reader.Categories.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Category{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	grouped, err := s.transactionsByCategory(ctx, ownerID, ids)
	if err != nil {
		return nil, err
	}

	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromRow(row)
		categories[i].Transactions = grouped[row.ID]
		if categories[i].Transactions == nil {
			categories[i].Transactions = []Transaction{}
		}
	}
	return categories, nil
}

// FindOne returns the category with its transactions, or NotFound.
func (s *CategoryService) FindOne(ctx context.Context, id int64) (*Category, error) {
	row, err := s.reader.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, apperror.NotFound("category not found")
	}

	grouped, err := s.transactionsByCategory(ctx, row.UserID, []int64{row.ID})
	if err != nil {
		return nil, err
	}
	category := categoryFromRow(row)
	category.Transactions = grouped[row.ID]
	if category.Transactions == nil {
		category.Transactions = []Transaction{}
	}
	return &category, nil
}

// Update replaces the set fields of an existing category.
func (s *CategoryService) Update(ctx context.Context, id int64, update CategoryUpdate) (*UpdateResult, error) {
	action := &actions.UpdateCategory{
		ID:     id,
		Update: &sqlconfig.CategoryUpdate{Title: update.Title},
	}
	if err := s.op.Process(ctx, action); err != nil {
		return nil, err
	}
	return &UpdateResult{Affected: action.Affected}, nil
}

// Remove deletes a category. Its transactions stay, uncategorized.
func (s *CategoryService) Remove(ctx context.Context, id int64) (*DeleteResult, error) {
	action := &actions.RemoveCategory{ID: id}
	if err := s.op.Process(ctx, action); err != nil {
		return nil, err
	}
	return &DeleteResult{Affected: action.Affected}, nil
}

func (s *CategoryService) transactionsByCategory(ctx context.Context, ownerID int64, categoryIDs []int64) (map[int64][]Transaction, error) {
	rows, err := s.reader.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		UserID:      ownerID,
		CategoryIDs: categoryIDs,
	})
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]Transaction, len(categoryIDs))
	for _, row := range rows {
		if row.CategoryID == nil {
			continue
		}
		grouped[*row.CategoryID] = append(grouped[*row.CategoryID], transactionFromRow(row))
	}
	return grouped, nil
}
