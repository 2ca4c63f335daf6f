package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken disimpan sebagai hash HMAC-SHA256, bukan token mentah.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Token     string    `gorm:"size:128;not null;uniqueIndex;column:token" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index;column:expires_at" json:"expires_at"`
	Revoked   bool      `gorm:"not null;default:false;column:revoked" json:"revoked"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
