package docmock

import (
	"context"

	domain "loanflow-backend/internal/domain/document"
)

type Repo struct {
	CreateFn              func(ctx context.Context, d *domain.Document) error
	ListByApplicationIDFn func(ctx context.Context, applicationNumericID uint64) ([]domain.Document, error)
	GetByDocumentIDFn     func(ctx context.Context, documentID string) (*domain.Document, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListByApplicationID(ctx context.Context, applicationNumericID uint64) ([]domain.Document, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationNumericID)
	}
	return nil, nil
}

func (m *Repo) GetByDocumentID(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDFn != nil {
		return m.GetByDocumentIDFn(ctx, documentID)
	}
	return nil, context.Canceled
}
