package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   Data referensi: mata kuliah, ruangan, slot waktu.
   Jarang berubah, dilayani lewat cache TTL.
========================================================= */

type CourseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Code      string    `gorm:"size:20;not null;uniqueIndex;column:code" json:"code"`
	Name      string    `gorm:"size:150;not null;column:name" json:"name"`
	SKS       int       `gorm:"not null;default:1;column:sks" json:"sks"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CourseModel) TableName() string { return "courses" }

type RoomModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex;column:name" json:"name"`
	Capacity  int       `gorm:"not null;default:0;column:capacity" json:"capacity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RoomModel) TableName() string { return "rooms" }

type TimeSlotModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StartTime string    `gorm:"size:5;not null;column:start_time" json:"start_time"` // "07:00"
	EndTime   string    `gorm:"size:5;not null;column:end_time" json:"end_time"`     // "09:30"
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TimeSlotModel) TableName() string { return "time_slots" }

// Label mengembalikan rentang slot untuk ditampilkan di jadwal.
func (t TimeSlotModel) Label() string { return t.StartTime + " - " + t.EndTime }
