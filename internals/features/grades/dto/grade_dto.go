package dto

import "github.com/google/uuid"

type UpdateGradeRequest struct {
	Grade float64 `json:"grade" validate:"min=0,max=100"`
}

type SessionGradeItem struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Grade     float64   `json:"grade" validate:"min=0,max=100"`
}

type UpdateSessionGradesRequest struct {
	Grades []SessionGradeItem `json:"grades" validate:"required,min=1,max=200,dive"`
}

type SessionGradeResult struct {
	StudentID uuid.UUID `json:"student_id"`
	OK        bool      `json:"ok"`
	Message   string    `json:"message"`
}
