package refdatamock

import (
	"context"

	domain "loanflow-backend/internal/domain/refdata"
)

type Repo struct {
	GetBusinessByBusinessIDFn   func(ctx context.Context, businessID string) (*domain.Business, error)
	GetLoanProductByProductIDFn func(ctx context.Context, productID string) (*domain.LoanProduct, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) GetBusinessByBusinessID(ctx context.Context, businessID string) (*domain.Business, error) {
	if m.GetBusinessByBusinessIDFn != nil {
		return m.GetBusinessByBusinessIDFn(ctx, businessID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetLoanProductByProductID(ctx context.Context, productID string) (*domain.LoanProduct, error) {
	if m.GetLoanProductByProductIDFn != nil {
		return m.GetLoanProductByProductIDFn(ctx, productID)
	}
	return nil, context.Canceled
}
