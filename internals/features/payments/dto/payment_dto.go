package dto

import "github.com/google/uuid"

type SubmitPaymentRequest struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
	// Bukti transfer sebagai data URI base64 (gambar atau PDF).
	ProofBase64 string `json:"proof_base64" validate:"required"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason" validate:"required,min=5,max=500"`
}
