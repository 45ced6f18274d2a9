package uow

import (
	"context"

	"loanflow-backend/internal/domain/application"
	"loanflow-backend/internal/domain/document"
	"loanflow-backend/internal/domain/refdata"
	"loanflow-backend/internal/domain/reviewer"
)

type Repos struct {
	Applications application.Repository
	Documents    document.Repository
	Reviewers    reviewer.Repository
	RefData      refdata.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
}
