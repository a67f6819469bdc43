package auth

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken records a token id that must no longer authenticate.
type RevokedToken struct {
	TokenID   string    `gorm:"column:token_id;primaryKey" json:"token_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;index;not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (RevokedToken) TableName() string { return "revoked_token" }
