package model

import (
	"time"

	"github.com/google/uuid"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

// InhalPaymentModel adalah pembayaran sesi pengganti (Rp 30.000)
// untuk mahasiswa yang tidak hadir di sesi aslinya.
type InhalPaymentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_inhal_student_session;column:student_id" json:"student_id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_inhal_student_session;column:session_id" json:"session_id"`

	Amount   int64  `gorm:"not null;column:amount" json:"amount"`
	ProofURL string `gorm:"type:text;not null;column:proof_url" json:"proof_url"`

	// PENDING -> VERIFIED | REJECTED
	Status string `gorm:"size:20;not null;default:'PENDING';index;column:status" json:"status"`

	VerifiedBy      *uuid.UUID `gorm:"type:uuid;column:verified_by" json:"verified_by,omitempty"`
	VerifiedAt      *time.Time `gorm:"column:verified_at" json:"verified_at,omitempty"`
	RejectionReason *string    `gorm:"type:text;column:rejection_reason" json:"rejection_reason,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	Student *userModel.UserModel          `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Session *classModel.ClassSessionModel `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (InhalPaymentModel) TableName() string { return "inhal_payments" }
