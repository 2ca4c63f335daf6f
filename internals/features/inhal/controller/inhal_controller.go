package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikum_backend/internals/constants"
	classModel "praktikum_backend/internals/features/academics/classes/model"
	attendanceModel "praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	"praktikum_backend/internals/features/inhal/dto"
	"praktikum_backend/internals/features/inhal/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
	"praktikum_backend/internals/helpers/storage"
)

type InhalController struct {
	DB *gorm.DB
}

func NewInhalController(db *gorm.DB) *InhalController {
	return &InhalController{DB: db}
}

var validate = validator.New()

/* ===================== MAHASISWA ===================== */

// POST /api/inhal/submit
// Inhal hanya untuk yang punya catatan tidak hadir: ALPHA, REJECTED,
// atau salah satu IZIN. Yang HADIR/INHAL/PENDING ditolak.
func (ctrl *InhalController) Submit(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitInhalRequest
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

	var attendance attendanceModel.StudentAttendanceModel
	err = ctrl.DB.First(&attendance,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		session.ClassID, userID, req.SessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusBadRequest,
			"Belum ada catatan kehadiran untuk sesi ini; inhal tidak diperlukan")
	} else if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa kehadiran")
	}
	if !workflow.CanRequestInhal(workflow.Status(attendance.Status)) {
		return helper.Error(c, fiber.StatusBadRequest,
			"Status kehadiran "+attendance.Status+" tidak memenuhi syarat inhal")
	}

	var existing int64
	if err := ctrl.DB.Model(&model.InhalPaymentModel{}).
		Where("student_id = ? AND session_id = ?", userID, req.SessionID).
		Count(&existing).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa pembayaran inhal")
	}
	if existing > 0 {
		return helper.Error(c, fiber.StatusConflict, "Pembayaran inhal untuk sesi ini sudah ada")
	}

	proofURL, uerr := storage.UploadBase64(c.Context(), req.ProofBase64, storage.BucketPayments, userID.String()+"/inhal")
	if uerr != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Bukti pembayaran tidak valid: "+uerr.Error())
	}

	inhal := model.InhalPaymentModel{
		StudentID: userID,
		SessionID: req.SessionID,
		Amount:    constants.InhalAmount,
		ProofURL:  proofURL,
		Status:    constants.PaymentPending,
	}
	if err := ctrl.DB.Create(&inhal).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Pembayaran inhal untuk sesi ini sudah ada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan pembayaran inhal")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pembayaran inhal dikirim, menunggu verifikasi", inhal)
}

// GET /api/inhal/my-requests
func (ctrl *InhalController) MyRequests(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var requests []model.InhalPaymentModel
	if err := ctrl.DB.
		Preload("Session").Preload("Session.Class").
		Where("student_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran inhal Anda")
	}
	return helper.Success(c, "Pembayaran inhal Anda", requests)
}

// GET /api/inhal/status/:sessionId
func (ctrl *InhalController) Status(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	var inhal model.InhalPaymentModel
	if err := ctrl.DB.First(&inhal, "student_id = ? AND session_id = ?", userID, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Belum ada pembayaran inhal untuk sesi ini")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran inhal")
	}
	return helper.Success(c, "Status pembayaran inhal", inhal)
}

/* ===================== ADMIN ===================== */

// GET /api/admin/inhal?status=PENDING
func (ctrl *InhalController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.InhalPaymentModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran inhal")
	}

	var requests []model.InhalPaymentModel
	if err := q.
		Preload("Student").Preload("Session").Preload("Session.Class").
		Order("created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&requests).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran inhal")
	}

	return helper.SuccessWithPagination(c, "Daftar pembayaran inhal", requests,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/admin/inhal/:id/verify
// Verifikasi membalik status kehadiran menjadi INHAL lewat mesin
// status, atomik dengan pembaruan pembayarannya.
func (ctrl *InhalController) Verify(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	inhalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID pembayaran inhal tidak valid")
	}

	tx := ctrl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var inhal model.InhalPaymentModel
	if err := tx.Preload("Session").First(&inhal, "id = ?", inhalID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pembayaran inhal tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran inhal")
	}
	if inhal.Status != constants.PaymentPending {
		tx.Rollback()
		return helper.Error(c, fiber.StatusBadRequest, "Pembayaran inhal sudah diproses")
	}
	if inhal.Session == nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Sesi pembayaran inhal tidak ditemukan")
	}

	var attendance attendanceModel.StudentAttendanceModel
	if err := tx.First(&attendance,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		inhal.Session.ClassID, inhal.StudentID, inhal.SessionID).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusBadRequest, "Catatan kehadiran untuk sesi ini tidak ditemukan")
	}

	next, werr := workflow.Next(workflow.Status(attendance.Status), workflow.ActionMarkInhal)
	if werr != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusBadRequest,
			"Status kehadiran "+attendance.Status+" tidak bisa diubah menjadi INHAL")
	}

	now := time.Now()
	attendance.Status = string(next)
	attendance.ApprovedBy = &adminID
	attendance.ApprovedAt = &now
	if err := tx.Save(&attendance).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui kehadiran")
	}

	inhal.Status = constants.PaymentVerified
	inhal.VerifiedBy = &adminID
	inhal.VerifiedAt = &now
	if err := tx.Save(&inhal).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui pembayaran inhal")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan verifikasi")
	}

	return helper.Success(c, "Pembayaran inhal diverifikasi, kehadiran menjadi INHAL", fiber.Map{
		"inhal":      inhal,
		"attendance": attendance,
	})
}

// POST /api/admin/inhal/:id/reject
func (ctrl *InhalController) Reject(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	inhalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID pembayaran inhal tidak valid")
	}

	var req dto.RejectInhalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var inhal model.InhalPaymentModel
	if err := ctrl.DB.First(&inhal, "id = ?", inhalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pembayaran inhal tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran inhal")
	}
	if inhal.Status != constants.PaymentPending {
		return helper.Error(c, fiber.StatusBadRequest, "Pembayaran inhal sudah diproses")
	}

	now := time.Now()
	inhal.Status = constants.PaymentRejected
	inhal.RejectionReason = &req.Reason
	inhal.VerifiedBy = &adminID
	inhal.VerifiedAt = &now
	if err := ctrl.DB.Save(&inhal).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menolak pembayaran inhal")
	}
	return helper.Success(c, "Pembayaran inhal ditolak", inhal)
}

// GET /api/admin/inhal/stats
func (ctrl *InhalController) Stats(c *fiber.Ctx) error {
	type statRow struct {
		Status string
		Total  int64
		Amount int64
	}
	var rows []statRow
	if err := ctrl.DB.Model(&model.InhalPaymentModel{}).
		Select("status, COUNT(*) AS total, COALESCE(SUM(amount), 0) AS amount").
		Group("status").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung statistik")
	}

	stats := fiber.Map{
		"pending": 0, "verified": 0, "rejected": 0, "verified_amount": int64(0),
	}
	for _, row := range rows {
		switch row.Status {
		case constants.PaymentPending:
			stats["pending"] = row.Total
		case constants.PaymentVerified:
			stats["verified"] = row.Total
			stats["verified_amount"] = row.Amount
		case constants.PaymentRejected:
			stats["rejected"] = row.Total
		}
	}
	return helper.Success(c, "Statistik pembayaran inhal", stats)
}
