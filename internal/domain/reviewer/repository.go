package reviewer

import "context"

type Repository interface {
	// GetByIdentityToken resolves an authenticated caller to a reviewer.
	// Soft-deleted rows must not resolve.
	GetByIdentityToken(ctx context.Context, token string) (*Reviewer, error)

	// GetByUserID looks up by public id (used for applicant addressing).
	GetByUserID(ctx context.Context, userID string) (*Reviewer, error)
}
