package reviewer

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrUnresolved means the caller identity does not map to an active reviewer.
// This is an authorization failure, not a not-found failure.
var ErrUnresolved = errors.New("caller does not resolve to an active reviewer")

// Reviewer is an internal actor authorized to complete a review stage.
// Applicants (entrepreneurs) live in the same table and are looked up by
// their public UserID for notification addressing.
type Reviewer struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	UserID string `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	// External identity token, set by the upstream identity provider.
	IdentityToken string         `gorm:"size:128;uniqueIndex:ux_users_identity_token" json:"-"`
	FirstName     string         `gorm:"size:100" json:"first_name"`
	LastName      string         `gorm:"size:100" json:"last_name"`
	Email         string         `gorm:"size:255" json:"email"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Reviewer) TableName() string { return "users" }
