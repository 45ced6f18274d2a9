package mysql

import (
	"context"

	revDomain "loanflow-backend/internal/domain/reviewer"

	"gorm.io/gorm"
)

type ReviewerRepository struct{ db *gorm.DB }

func NewReviewerRepository(db *gorm.DB) *ReviewerRepository {
	return &ReviewerRepository{db: db}
}

// GetByIdentityToken resolves a caller. Soft-deleted users are excluded by
// gorm's deleted_at handling, so a deactivated reviewer simply fails to
// resolve.
func (r *ReviewerRepository) GetByIdentityToken(ctx context.Context, token string) (*revDomain.Reviewer, error) {
	var out revDomain.Reviewer
	res := r.db.WithContext(ctx).Where("identity_token = ?", token).First(&out)
	return &out, res.Error
}

func (r *ReviewerRepository) GetByUserID(ctx context.Context, userID string) (*revDomain.Reviewer, error) {
	var out revDomain.Reviewer
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return &out, res.Error
}
