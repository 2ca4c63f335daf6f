package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Email    string    `gorm:"size:255;not null;uniqueIndex;column:email" json:"email"`
	Password string    `gorm:"size:255;not null;column:password" json:"-"`
	Name     string    `gorm:"size:100;not null;column:name" json:"name"`

	// NIM opsional; hanya mahasiswa yang punya
	NIM *string `gorm:"size:20;column:nim" json:"nim,omitempty"`

	IsAdmin  bool `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// Public mengembalikan salinan tanpa hash password untuk respons API.
func (u UserModel) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"nim":        u.NIM,
		"is_admin":   u.IsAdmin,
		"created_at": u.CreatedAt,
	}
}
