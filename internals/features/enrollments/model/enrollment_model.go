package model

import (
	"time"

	"github.com/google/uuid"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

// EnrollmentModel baru dibuat setelah pembayaran diverifikasi admin;
// tidak ada jalur pendaftaran langsung.
type EnrollmentModel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	ClassID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment;column:class_id" json:"class_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment;column:user_id" json:"user_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Class *classModel.ClassModel `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	User  *userModel.UserModel   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
