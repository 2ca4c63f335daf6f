package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassSessionModel adalah satu pertemuan di dalam kelas.
// Setiap kelas punya 11 sesi: pertemuan 1-10 reguler dan
// sesi ke-11 berupa Responsi (ujian).
type ClassSessionModel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	ClassID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_session_number;column:class_id" json:"class_id"`

	SessionNumber int    `gorm:"not null;uniqueIndex:uq_class_session_number;column:session_number" json:"session_number"`
	Topic         string `gorm:"size:150;not null;column:topic" json:"topic"`
	SessionType   string `gorm:"size:20;not null;default:'REGULAR';column:session_type" json:"session_type"`

	SessionDate *time.Time `gorm:"type:date;column:session_date" json:"session_date,omitempty"`

	// Setelah difinalisasi sesi terkunci: mahasiswa tanpa catatan
	// kehadiran diisi ALPHA dan submit baru ditolak.
	IsFinalized bool `gorm:"not null;default:false;column:is_finalized" json:"is_finalized"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	Class *ClassModel `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }
