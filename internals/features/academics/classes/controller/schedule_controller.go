package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"praktikum_backend/internals/features/academics/classes/model"
	"praktikum_backend/internals/features/academics/classes/service"
	refModel "praktikum_backend/internals/features/academics/reference/model"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	helper "praktikum_backend/internals/helpers"
)

// GET /api/classes/schedule — jadwal induk semester aktif:
// grid slot waktu x hari dengan kelas dan sisa kuotanya.
func (ctrl *ClassController) MasterSchedule(c *fiber.Ctx) error {
	semesterID, err := ctrl.resolveSemesterID(c)
	if err != nil {
		return err
	}

	var slots []refModel.TimeSlotModel
	if err := ctrl.DB.Find(&slots).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil slot waktu")
	}

	var classes []model.ClassModel
	if err := ctrl.DB.
		Preload("Course").Preload("Room").
		Where("semester_id = ?", semesterID).
		Find(&classes).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	// hitung peserta per kelas sekali jalan
	type classCount struct {
		ClassID uuid.UUID
		Total   int64
	}
	var counts []classCount
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Select("class_id, COUNT(*) AS total").
		Group("class_id").
		Scan(&counts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung peserta")
	}
	enrolled := make(map[uuid.UUID]int64, len(counts))
	for _, cc := range counts {
		enrolled[cc.ClassID] = cc.Total
	}

	grid := service.BuildScheduleGrid(slots, classes, enrolled)
	return helper.Success(c, "Jadwal induk", grid)
}
