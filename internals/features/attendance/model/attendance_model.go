package model

import (
	"time"

	"github.com/google/uuid"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

// StudentAttendanceModel adalah catatan kehadiran mahasiswa per sesi.
// Kuncinya pasangan (class, user) dari pendaftaran plus sesi, jadi
// satu mahasiswa hanya punya satu catatan per sesi.
type StudentAttendanceModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	EnrollmentClassID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_attendance;column:enrollment_class_id" json:"enrollment_class_id"`
	EnrollmentUserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_attendance;column:enrollment_user_id" json:"enrollment_user_id"`
	SessionID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_attendance;index;column:session_id" json:"session_id"`

	Status string `gorm:"size:20;not null;default:'PENDING';index;column:status" json:"status"`

	// Bukti kehadiran (foto), opsional.
	ProofURL *string `gorm:"type:text;column:proof_url" json:"proof_url,omitempty"`

	// Nilai 0-100, hanya terisi untuk HADIR/INHAL.
	Grade *float64 `gorm:"column:grade" json:"grade,omitempty"`

	ApprovedBy *uuid.UUID `gorm:"type:uuid;column:approved_by" json:"approved_by,omitempty"`
	ApprovedAt *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	Note       *string    `gorm:"type:text;column:note" json:"note,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	Session *classModel.ClassSessionModel `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	Student *userModel.UserModel          `gorm:"foreignKey:EnrollmentUserID" json:"student,omitempty"`
}

func (StudentAttendanceModel) TableName() string { return "student_attendances" }

// AssistantAttendanceModel mencatat check-in asisten di sesi yang ia ampu.
type AssistantAttendanceModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assistant_attendance;column:user_id" json:"user_id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_assistant_attendance;column:session_id" json:"session_id"`

	Status      string     `gorm:"size:20;not null;default:'HADIR';column:status" json:"status"`
	CheckedInAt time.Time  `gorm:"not null;column:checked_in_at" json:"checked_in_at"`
	ValidatedBy *uuid.UUID `gorm:"type:uuid;column:validated_by" json:"validated_by,omitempty"`
	ValidatedAt *time.Time `gorm:"column:validated_at" json:"validated_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User    *userModel.UserModel          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Session *classModel.ClassSessionModel `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (AssistantAttendanceModel) TableName() string { return "assistant_attendances" }
