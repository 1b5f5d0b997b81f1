package models

import (
	"time"

	"expense-tracker/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense 表示一笔支出记录
// 金额用分存储，避免浮点误差，比如 12.34 元 = 1234 分
type Expense struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string     `gorm:"index:idx_expenses_owner_date;size:36;not null" json:"owner_id"`
	AmountCent  util.Cents `gorm:"column:amount_cent;not null" json:"amount"`
	Category    string     `gorm:"size:32;index;not null" json:"category"`
	Description string     `gorm:"size:200;not null" json:"description"`
	OccurredAt  time.Time  `gorm:"index:idx_expenses_owner_date;not null" json:"date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID primary key when none was set.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
