package repository

import (
	"errors"

	"expense-tracker/internal/models"

	"gorm.io/gorm"
)

// ExpenseRepository owns the expenses collection. Every read and write
// is scoped to a single owner; there is no cross-owner access path.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create persists a new expense for its owner.
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// ListByOwner returns all of one owner's expenses, newest occurred_at
// first. Ties on occurred_at keep a stable order via the id tie break.
func (r *ExpenseRepository) ListByOwner(ownerID string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.
		Where("owner_id = ?", ownerID).
		Order("occurred_at DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByOwner returns one expense by id, only if it belongs to ownerID.
func (r *ExpenseRepository) FindByOwner(ownerID, id string) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// Update saves a full replacement of a previously loaded expense.
// id and created_at never change; updated_at is refreshed by gorm.
func (r *ExpenseRepository) Update(expense *models.Expense) error {
	return r.db.Save(expense).Error
}

// DeleteByOwner permanently removes one expense. Deleting an id that
// does not exist (or belongs to someone else) returns ErrNotFound.
func (r *ExpenseRepository) DeleteByOwner(ownerID, id string) error {
	res := r.db.
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
