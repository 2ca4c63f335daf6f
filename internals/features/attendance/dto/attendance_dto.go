package dto

import "github.com/google/uuid"

type SubmitAttendanceRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	// Foto bukti kehadiran sebagai data URI base64, opsional.
	ProofBase64 string `json:"proof_base64" validate:"omitempty"`
}

type DecisionRequest struct {
	Note *string `json:"note" validate:"omitempty,max=500"`
}

// BatchUpdateItem memasang status (plus nilai) untuk satu mahasiswa.
// Catatan yang belum ada dibuat; nilai otomatis dihapus bila status
// barunya bukan HADIR/INHAL.
type BatchUpdateItem struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required"`
	Grade     *float64  `json:"grade" validate:"omitempty,min=0,max=100"`
	Note      *string   `json:"note" validate:"omitempty,max=500"`
}

type BatchUpdateRequest struct {
	Items []BatchUpdateItem `json:"items" validate:"required,min=1,max=100,dive"`
}

type BatchUpdateResult struct {
	StudentID uuid.UUID `json:"student_id"`
	OK        bool      `json:"ok"`
	Message   string    `json:"message"`
}

// BatchOverrideRequest adalah koreksi massal admin pada satu sesi,
// tanpa pemeriksaan penugasan asisten.
type BatchOverrideRequest struct {
	SessionID uuid.UUID         `json:"session_id" validate:"required"`
	Items     []BatchUpdateItem `json:"items" validate:"required,min=1,max=100,dive"`
}
