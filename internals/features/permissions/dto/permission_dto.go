package dto

import "github.com/google/uuid"

type SubmitPermissionRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Reason    string    `json:"reason" validate:"required,min=5,max=500"`
	// Surat pendukung sebagai data URI base64.
	FileBase64 string `json:"file_base64" validate:"required"`
}

type ApprovePermissionRequest struct {
	// Status izin eksplisit; kosong berarti dipetakan dari alasan.
	Status string `json:"status" validate:"omitempty,oneof=IZIN_SAKIT IZIN_KAMPUS IZIN_LAIN"`
}

type RejectPermissionRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}
