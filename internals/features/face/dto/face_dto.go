package dto

import "github.com/google/uuid"

type UploadFaceDataRequest struct {
	// 5-10 foto wajah sebagai data URI base64, dengan descriptor
	// hasil ekstraksi di sisi klien (satu per foto).
	Images      []string    `json:"images" validate:"required,min=5,max=10,dive,required"`
	Descriptors [][]float64 `json:"descriptors" validate:"required,min=5,max=10,dive,min=1"`
}

type MarkFaceAttendanceRequest struct {
	SessionID      uuid.UUID `json:"session_id" validate:"required"`
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	Confidence     float64   `json:"confidence" validate:"min=0,max=1"`
	SnapshotBase64 *string   `json:"snapshot_base64"`
}
