package model

import (
	"time"

	"github.com/google/uuid"
)

type SemesterModel struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name string    `gorm:"size:100;not null;uniqueIndex;column:name" json:"name"`

	StartDate time.Time `gorm:"type:date;not null;column:start_date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null;column:end_date" json:"end_date"`

	// Hanya satu semester yang aktif pada satu waktu.
	IsActive bool `gorm:"not null;default:false;index;column:is_active" json:"is_active"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (SemesterModel) TableName() string { return "semesters" }
