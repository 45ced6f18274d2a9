package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	ListByApplicationID(ctx context.Context, applicationNumericID uint64) ([]Document, error)
	GetByDocumentID(ctx context.Context, documentID string) (*Document, error)
}
