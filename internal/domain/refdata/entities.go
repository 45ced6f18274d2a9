package refdata

import (
	"time"

	"gorm.io/gorm"
)

// Business is the borrowing company behind a loan application. Read-only
// reference data as far as the workflow is concerned.
type Business struct {
	ID         uint64         `gorm:"primaryKey;column:id" json:"-"`
	BusinessID string         `gorm:"size:32;uniqueIndex:ux_businesses_business_id" json:"business_id"`
	Name       string         `gorm:"size:255" json:"name"`
	OwnerID    string         `gorm:"size:32" json:"owner_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Business) TableName() string { return "businesses" }

type LoanProduct struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	ProductID string         `gorm:"size:32;uniqueIndex:ux_loan_products_product_id" json:"product_id"`
	Name      string         `gorm:"size:255" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LoanProduct) TableName() string { return "loan_products" }
