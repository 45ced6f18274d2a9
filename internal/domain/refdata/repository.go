package refdata

import "context"

type Repository interface {
	GetBusinessByBusinessID(ctx context.Context, businessID string) (*Business, error)
	GetLoanProductByProductID(ctx context.Context, productID string) (*LoanProduct, error)
}
