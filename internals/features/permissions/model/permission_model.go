package model

import (
	"time"

	"github.com/google/uuid"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

// PermissionRequestModel adalah pengajuan izin tidak hadir
// (sakit, urusan kampus, atau alasan lain) dengan surat pendukung.
type PermissionRequestModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_permission_student_session;column:student_id" json:"student_id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_permission_student_session;column:session_id" json:"session_id"`

	Reason  string `gorm:"type:text;not null;column:reason" json:"reason"`
	FileURL string `gorm:"type:text;not null;column:file_url" json:"file_url"`

	// PENDING -> APPROVED | REJECTED
	Status string `gorm:"size:20;not null;default:'PENDING';index;column:status" json:"status"`

	ReviewedBy      *uuid.UUID `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	RejectionReason *string    `gorm:"type:text;column:rejection_reason" json:"rejection_reason,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	Student *userModel.UserModel          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Session *classModel.ClassSessionModel `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (PermissionRequestModel) TableName() string { return "permission_requests" }
