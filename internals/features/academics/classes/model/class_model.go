package model

import (
	"time"

	"github.com/google/uuid"

	courseModel "praktikum_backend/internals/features/academics/reference/model"
	semesterModel "praktikum_backend/internals/features/academics/semesters/model"
)

// ClassModel adalah satu kelas praktikum pada semester tertentu.
// Kombinasi hari + slot waktu + ruangan harus unik supaya jadwal
// tidak bentrok; pelanggarannya ditangkap lewat unique constraint.
type ClassModel struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	Name string    `gorm:"size:100;not null;column:name" json:"name"`

	CourseID   uuid.UUID `gorm:"type:uuid;not null;index;column:course_id" json:"course_id"`
	SemesterID uuid.UUID `gorm:"type:uuid;not null;index;column:semester_id" json:"semester_id"`

	// 1=Senin .. 5=Jumat
	DayOfWeek  int       `gorm:"not null;uniqueIndex:uq_class_schedule;column:day_of_week" json:"day_of_week"`
	TimeSlotID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_schedule;column:time_slot_id" json:"time_slot_id"`
	RoomID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_schedule;column:room_id" json:"room_id"`

	Quota int `gorm:"not null;default:0;column:quota" json:"quota"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	Course   *courseModel.CourseModel     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Semester *semesterModel.SemesterModel `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
	TimeSlot *courseModel.TimeSlotModel   `gorm:"foreignKey:TimeSlotID" json:"time_slot,omitempty"`
	Room     *courseModel.RoomModel       `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }
