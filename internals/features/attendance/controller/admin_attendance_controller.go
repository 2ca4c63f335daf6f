package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	"praktikum_backend/internals/features/attendance/dto"
	"praktikum_backend/internals/features/attendance/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
)

type AdminAttendanceController struct {
	DB *gorm.DB
}

func NewAdminAttendanceController(db *gorm.DB) *AdminAttendanceController {
	return &AdminAttendanceController{DB: db}
}

// POST /api/admin/attendances/override
// Koreksi massal oleh admin: status apa pun yang valid boleh
// dipasang per mahasiswa, termasuk membuat catatan baru. Tidak ada
// pemeriksaan penugasan asisten dan sesi terfinalisasi pun boleh
// dikoreksi; tiap item dilaporkan sendiri-sendiri.
func (ctrl *AdminAttendanceController) Override(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BatchOverrideRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var session classModel.ClassSessionModel
	if err := ctrl.DB.First(&session, "id = ?", req.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	results := applyBatchItems(ctrl.DB, &session, adminID, req.Items)
	return helper.Success(c, "Koreksi kehadiran diproses", results)
}

/* ===================== KEHADIRAN ASISTEN ===================== */

// GET /api/admin/assistant-attendances
func (ctrl *AdminAttendanceController) AssistantLogs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.AssistantAttendanceModel{})
	if raw := c.Query("user_id"); raw != "" {
		if userID, perr := uuid.Parse(raw); perr == nil {
			q = q.Where("user_id = ?", userID)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung catatan")
	}

	var rows []model.AssistantAttendanceModel
	if err := q.
		Preload("User").Preload("Session").Preload("Session.Class").
		Order("checked_in_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil catatan")
	}

	return helper.SuccessWithPagination(c, "Kehadiran asisten", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/admin/assistant-attendances/:id/validate
// Admin mengesahkan check-in asisten (dasar pembayaran honor).
func (ctrl *AdminAttendanceController) ValidateAssistant(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID catatan tidak valid")
	}

	var record model.AssistantAttendanceModel
	if err := ctrl.DB.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Catatan tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil catatan")
	}
	if record.ValidatedBy != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Catatan sudah divalidasi")
	}

	now := time.Now()
	record.ValidatedBy = &adminID
	record.ValidatedAt = &now
	if err := ctrl.DB.Save(&record).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memvalidasi catatan")
	}
	return helper.Success(c, "Kehadiran asisten divalidasi", record)
}

// GET /api/admin/assistant-attendances/recap
// Rekap per asisten: total check-in dan berapa yang sudah divalidasi.
func (ctrl *AdminAttendanceController) AssistantRecap(c *fiber.Ctx) error {
	type recapRow struct {
		UserID    uuid.UUID `json:"user_id"`
		Name      string    `json:"name"`
		Total     int64     `json:"total"`
		Validated int64     `json:"validated"`
	}
	var rows []recapRow
	if err := ctrl.DB.Model(&model.AssistantAttendanceModel{}).
		Select("assistant_attendances.user_id, users.name, COUNT(*) AS total, COUNT(assistant_attendances.validated_by) AS validated").
		Joins("JOIN users ON users.id = assistant_attendances.user_id").
		Group("assistant_attendances.user_id, users.name").
		Order("users.name ASC").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung rekap")
	}
	return helper.Success(c, "Rekap kehadiran asisten", rows)
}
