package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

// FaceDataModel menyimpan descriptor wajah hasil enrolment
// (array float per foto) untuk absensi berbasis pengenalan wajah.
type FaceDataModel struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`

	// JSON: [][]float64, satu descriptor per foto pendaftaran.
	Descriptors datatypes.JSON `gorm:"type:jsonb;not null;column:descriptors" json:"descriptors"`
	ImageURLs   datatypes.JSON `gorm:"type:jsonb;not null;column:image_urls" json:"image_urls"`
	IsTrained   bool           `gorm:"not null;default:false;column:is_trained" json:"is_trained"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`

	User *userModel.UserModel `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (FaceDataModel) TableName() string { return "face_data" }

// FaceAttendanceLogModel mencatat setiap kecocokan wajah yang
// dipakai untuk menandai kehadiran, termasuk skor kepercayaannya.
type FaceAttendanceLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`

	Confidence  float64 `gorm:"not null;column:confidence" json:"confidence"`
	SnapshotURL *string `gorm:"type:text;column:snapshot_url" json:"snapshot_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User    *userModel.UserModel          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Session *classModel.ClassSessionModel `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (FaceAttendanceLogModel) TableName() string { return "face_attendance_logs" }
