package dto

import "github.com/google/uuid"

type SubmitInhalRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	// Bukti transfer Rp 30.000 sebagai data URI base64.
	ProofBase64 string `json:"proof_base64" validate:"required"`
}

type RejectInhalRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}
