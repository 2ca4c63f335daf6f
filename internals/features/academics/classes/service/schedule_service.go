package service

import (
	"sort"

	"github.com/google/uuid"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	refModel "praktikum_backend/internals/features/academics/reference/model"
	"praktikum_backend/internals/constants"
)

/* =========================================================
   Penyusunan jadwal induk: grid slot waktu x hari (Senin-Jumat)
   dengan kelas-kelas yang menempati tiap sel.
========================================================= */

type ScheduleEntry struct {
	ClassID    uuid.UUID `json:"class_id"`
	ClassName  string    `json:"class_name"`
	CourseName string    `json:"course_name"`
	RoomName   string    `json:"room_name"`
	Quota      int       `json:"quota"`
	Enrolled   int64     `json:"enrolled"`
}

type ScheduleRow struct {
	TimeSlotID uuid.UUID                  `json:"time_slot_id"`
	TimeLabel  string                     `json:"time_label"`
	Days       map[string][]ScheduleEntry `json:"days"`
}

// BuildScheduleGrid menyusun baris per slot waktu; setiap baris punya
// kolom per hari berisi kelas yang terjadwal di sel itu. Slot diurutkan
// menurut jam mulai, kelas dalam sel menurut nama.
func BuildScheduleGrid(slots []refModel.TimeSlotModel, classes []classModel.ClassModel, enrolledCount map[uuid.UUID]int64) []ScheduleRow {
	sorted := make([]refModel.TimeSlotModel, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })

	// kelompokkan kelas per (slot, hari)
	bySlotDay := make(map[uuid.UUID]map[int][]classModel.ClassModel)
	for _, cls := range classes {
		if bySlotDay[cls.TimeSlotID] == nil {
			bySlotDay[cls.TimeSlotID] = make(map[int][]classModel.ClassModel)
		}
		bySlotDay[cls.TimeSlotID][cls.DayOfWeek] = append(bySlotDay[cls.TimeSlotID][cls.DayOfWeek], cls)
	}

	rows := make([]ScheduleRow, 0, len(sorted))
	for _, slot := range sorted {
		row := ScheduleRow{
			TimeSlotID: slot.ID,
			TimeLabel:  slot.Label(),
			Days:       make(map[string][]ScheduleEntry, len(constants.DayNames)),
		}
		for day := 1; day <= 5; day++ {
			dayName := constants.DayName(day)
			cells := bySlotDay[slot.ID][day]
			sort.Slice(cells, func(i, j int) bool { return cells[i].Name < cells[j].Name })

			entries := make([]ScheduleEntry, 0, len(cells))
			for _, cls := range cells {
				entry := ScheduleEntry{
					ClassID:   cls.ID,
					ClassName: cls.Name,
					Quota:     cls.Quota,
					Enrolled:  enrolledCount[cls.ID],
				}
				if cls.Course != nil {
					entry.CourseName = cls.Course.Name
				}
				if cls.Room != nil {
					entry.RoomName = cls.Room.Name
				}
				entries = append(entries, entry)
			}
			row.Days[dayName] = entries
		}
		rows = append(rows, row)
	}
	return rows
}
