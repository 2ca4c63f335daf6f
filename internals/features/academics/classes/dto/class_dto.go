package dto

import (
	"github.com/google/uuid"

	"praktikum_backend/internals/features/academics/classes/model"
)

type CreateClassRequest struct {
	Name       string    `json:"name" validate:"required,min=3,max=100"`
	CourseID   uuid.UUID `json:"course_id" validate:"required"`
	SemesterID uuid.UUID `json:"semester_id" validate:"required"`
	DayOfWeek  int       `json:"day_of_week" validate:"required,min=1,max=5"`
	TimeSlotID uuid.UUID `json:"time_slot_id" validate:"required"`
	RoomID     uuid.UUID `json:"room_id" validate:"required"`
	Quota      int       `json:"quota" validate:"required,min=1"`
}

type UpdateClassRequest struct {
	Name       *string    `json:"name" validate:"omitempty,min=3,max=100"`
	DayOfWeek  *int       `json:"day_of_week" validate:"omitempty,min=1,max=5"`
	TimeSlotID *uuid.UUID `json:"time_slot_id"`
	RoomID     *uuid.UUID `json:"room_id"`
	Quota      *int       `json:"quota" validate:"omitempty,min=1"`
}

type AssignAssistantRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type UpdateSessionRequest struct {
	Topic       *string `json:"topic" validate:"omitempty,min=3,max=150"`
	SessionDate *string `json:"session_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r CreateClassRequest) ToModel() model.ClassModel {
	return model.ClassModel{
		Name:       r.Name,
		CourseID:   r.CourseID,
		SemesterID: r.SemesterID,
		DayOfWeek:  r.DayOfWeek,
		TimeSlotID: r.TimeSlotID,
		RoomID:     r.RoomID,
		Quota:      r.Quota,
	}
}

func (r UpdateClassRequest) Apply(m *model.ClassModel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.DayOfWeek != nil {
		m.DayOfWeek = *r.DayOfWeek
	}
	if r.TimeSlotID != nil {
		m.TimeSlotID = *r.TimeSlotID
	}
	if r.RoomID != nil {
		m.RoomID = *r.RoomID
	}
	if r.Quota != nil {
		m.Quota = *r.Quota
	}
}
