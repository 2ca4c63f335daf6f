package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikum_backend/internals/constants"
	classModel "praktikum_backend/internals/features/academics/classes/model"
	semesterModel "praktikum_backend/internals/features/academics/semesters/model"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	"praktikum_backend/internals/features/payments/dto"
	"praktikum_backend/internals/features/payments/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
	"praktikum_backend/internals/helpers/storage"
)

type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

var validate = validator.New()

/* ===================== MAHASISWA ===================== */

// POST /api/payment/submit
// Unggah bukti transfer Rp 5.000 untuk satu kelas. Pengajuan ulang
// (masih PENDING atau setelah ditolak) menimpa bukti lama; yang
// sudah VERIFIED terkunci.
func (ctrl *PaymentController) Submit(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var class classModel.ClassModel
	if err := ctrl.DB.First(&class, "id = ?", req.ClassID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	// sudah terdaftar? tidak perlu bayar lagi
	var enrolled int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ? AND user_id = ?", req.ClassID, userID).
		Count(&enrolled).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}
	if enrolled > 0 {
		return helper.Error(c, fiber.StatusConflict, "Anda sudah terdaftar di kelas ini")
	}

	// cek kuota lebih awal biar mahasiswa tidak bayar sia-sia;
	// keputusan final tetap di verifikasi admin.
	var taken int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ?", req.ClassID).
		Count(&taken).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung kuota")
	}
	if taken >= int64(class.Quota) {
		return helper.Error(c, fiber.StatusConflict, "Kuota kelas sudah penuh")
	}

	var existing model.PaymentModel
	err = ctrl.DB.First(&existing, "student_id = ? AND class_id = ?", userID, req.ClassID).Error
	if err == nil {
		if existing.Status == constants.PaymentVerified {
			return helper.Error(c, fiber.StatusBadRequest, "Pembayaran Anda sudah diverifikasi")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa pembayaran")
	}

	proofURL, uerr := storage.UploadBase64(c.Context(), req.ProofBase64, storage.BucketPayments, userID.String())
	if uerr != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Bukti pembayaran tidak valid: "+uerr.Error())
	}

	if existing.ID != uuid.Nil {
		// pengajuan ulang (PENDING atau setelah ditolak): ganti bukti, reset status
		oldProof := existing.ProofURL
		existing.ProofURL = proofURL
		existing.Status = constants.PaymentPending
		existing.RejectionReason = nil
		existing.VerifiedBy = nil
		existing.VerifiedAt = nil
		if err := ctrl.DB.Save(&existing).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan pembayaran")
		}
		if oldProof != "" {
			storage.DeleteByURL(c.Context(), oldProof)
		}
		return helper.Success(c, "Bukti pembayaran diperbarui, menunggu verifikasi", existing)
	}

	payment := model.PaymentModel{
		StudentID: userID,
		ClassID:   req.ClassID,
		Amount:    constants.PaymentAmount,
		ProofURL:  proofURL,
		Status:    constants.PaymentPending,
	}
	if err := ctrl.DB.Create(&payment).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Pembayaran untuk kelas ini sudah ada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan pembayaran")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Bukti pembayaran dikirim, menunggu verifikasi", payment)
}

// GET /api/payment/status/:classId
func (ctrl *PaymentController) Status(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var payment model.PaymentModel
	if err := ctrl.DB.First(&payment, "student_id = ? AND class_id = ?", userID, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Belum ada pembayaran untuk kelas ini")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	return helper.Success(c, "Status pembayaran", payment)
}

// GET /api/payment/my-payments
func (ctrl *PaymentController) MyPayments(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var payments []model.PaymentModel
	if err := ctrl.DB.
		Preload("Class").Preload("Class.Course").
		Where("student_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran Anda")
	}
	return helper.Success(c, "Pembayaran Anda", payments)
}

/* ===================== ADMIN ===================== */

// GET /api/admin/payments?status=PENDING
func (ctrl *PaymentController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PaymentModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	// Default hanya semester aktif; ?semester_id menimpa.
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		var active semesterModel.SemesterModel
		if err := ctrl.DB.First(&active, "is_active = true").Error; err == nil {
			semesterID = active.ID.String()
		}
	}
	if semesterID != "" {
		q = q.Select("payments.*").
			Joins("JOIN classes ON classes.id = payments.class_id").
			Where("classes.semester_id = ?", semesterID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung pembayaran")
	}

	var payments []model.PaymentModel
	if err := q.
		Preload("Student").Preload("Class").Preload("Class.Course").
		Order("payments.created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}

	return helper.SuccessWithPagination(c, "Daftar pembayaran", payments,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/admin/payments/:id/verify
// Kuota dicek ulang DI DALAM transaksi: antara submit dan verifikasi
// bisa saja kelas keburu penuh. VERIFIED dan pembuatan enrollment
// terjadi atomik.
func (ctrl *PaymentController) Verify(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}

	tx := ctrl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var payment model.PaymentModel
	if err := tx.Preload("Class").First(&payment, "id = ?", paymentID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	if payment.Status != constants.PaymentPending {
		tx.Rollback()
		return helper.Error(c, fiber.StatusBadRequest, "Pembayaran sudah diproses")
	}

	var taken int64
	if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ?", payment.ClassID).
		Count(&taken).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung kuota")
	}
	if payment.Class != nil && taken >= int64(payment.Class.Quota) {
		tx.Rollback()
		return helper.Error(c, fiber.StatusConflict, "Kuota kelas sudah penuh, pembayaran tidak bisa diverifikasi")
	}

	now := time.Now()
	payment.Status = constants.PaymentVerified
	payment.VerifiedBy = &adminID
	payment.VerifiedAt = &now
	if err := tx.Save(&payment).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui pembayaran")
	}

	enrollment := enrollmentModel.EnrollmentModel{
		ClassID: payment.ClassID,
		UserID:  payment.StudentID,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Mahasiswa sudah terdaftar di kelas ini")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat pendaftaran")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan verifikasi")
	}

	log.Printf("[PAYMENT] %s diverifikasi oleh admin %s, enrollment %s dibuat", payment.ID, adminID, enrollment.ID)
	return helper.Success(c, "Pembayaran diverifikasi, mahasiswa terdaftar", fiber.Map{
		"payment":    payment,
		"enrollment": enrollment,
	})
}

// POST /api/admin/payments/:id/reject
func (ctrl *PaymentController) Reject(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}

	var req dto.RejectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var payment model.PaymentModel
	if err := ctrl.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	if payment.Status != constants.PaymentPending {
		return helper.Error(c, fiber.StatusBadRequest, "Pembayaran sudah diproses")
	}

	now := time.Now()
	payment.Status = constants.PaymentRejected
	payment.RejectionReason = &req.Reason
	payment.VerifiedBy = &adminID
	payment.VerifiedAt = &now
	if err := ctrl.DB.Save(&payment).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menolak pembayaran")
	}
	return helper.Success(c, "Pembayaran ditolak", payment)
}

// GET /api/admin/payments/stats
func (ctrl *PaymentController) Stats(c *fiber.Ctx) error {
	type statRow struct {
		Status string
		Total  int64
		Amount int64
	}
	var rows []statRow
	if err := ctrl.DB.Model(&model.PaymentModel{}).
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
	return helper.Success(c, "Statistik pembayaran", stats)
}
