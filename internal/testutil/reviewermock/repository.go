package reviewermock

import (
	"context"

	domain "loanflow-backend/internal/domain/reviewer"
)

type Repo struct {
	GetByIdentityTokenFn func(ctx context.Context, token string) (*domain.Reviewer, error)
	GetByUserIDFn        func(ctx context.Context, userID string) (*domain.Reviewer, error)
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) GetByIdentityToken(ctx context.Context, token string) (*domain.Reviewer, error) {
	if m.GetByIdentityTokenFn != nil {
		return m.GetByIdentityTokenFn(ctx, token)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Reviewer, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}
