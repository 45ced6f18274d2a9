package mysql

import (
	"context"

	refDomain "loanflow-backend/internal/domain/refdata"

	"gorm.io/gorm"
)

type RefDataRepository struct{ db *gorm.DB }

func NewRefDataRepository(db *gorm.DB) *RefDataRepository {
	return &RefDataRepository{db: db}
}

func (r *RefDataRepository) GetBusinessByBusinessID(ctx context.Context, businessID string) (*refDomain.Business, error) {
	var out refDomain.Business
	res := r.db.WithContext(ctx).Where("business_id = ?", businessID).First(&out)
	return &out, res.Error
}

func (r *RefDataRepository) GetLoanProductByProductID(ctx context.Context, productID string) (*refDomain.LoanProduct, error) {
	var out refDomain.LoanProduct
	res := r.db.WithContext(ctx).Where("product_id = ?", productID).First(&out)
	return &out, res.Error
}
