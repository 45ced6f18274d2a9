package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	// GetByApplicationIDForUpdate locks the row (SELECT ... FOR UPDATE) so that
	// concurrent stage completions race on the lock, not on the status read.
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	Save(ctx context.Context, a *Application) error
}
