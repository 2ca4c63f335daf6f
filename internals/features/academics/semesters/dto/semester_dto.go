package dto

import (
	"time"

	"praktikum_backend/internals/features/academics/semesters/model"
)

type CreateSemesterRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=100"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateSemesterRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=3,max=100"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// ToModel mengubah request menjadi model; tanggal sudah tervalidasi formatnya.
func (r CreateSemesterRequest) ToModel() model.SemesterModel {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return model.SemesterModel{
		Name:      r.Name,
		StartDate: start,
		EndDate:   end,
	}
}

// Apply menerapkan field yang terisi ke model yang sudah ada.
func (r UpdateSemesterRequest) Apply(m *model.SemesterModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.StartDate != nil {
		if t, err := time.Parse("2006-01-02", *r.StartDate); err == nil {
			m.StartDate = t
		}
	}
	if r.EndDate != nil {
		if t, err := time.Parse("2006-01-02", *r.EndDate); err == nil {
			m.EndDate = t
		}
	}
}
