package model

import (
	"time"

	"github.com/google/uuid"

	userModel "praktikum_backend/internals/features/users/user/model"
)

// ClassAssistantModel menautkan asisten ke kelas yang ia ampu.
type ClassAssistantModel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	ClassID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_assistant;column:class_id" json:"class_id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_class_assistant;column:user_id" json:"user_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Class *ClassModel          `gorm:"foreignKey:ClassID" json:"class,omitempty"`
	User  *userModel.UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ClassAssistantModel) TableName() string { return "class_assistants" }
