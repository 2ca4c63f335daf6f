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
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	"praktikum_backend/internals/features/permissions/dto"
	"praktikum_backend/internals/features/permissions/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
	"praktikum_backend/internals/helpers/storage"
)

type PermissionController struct {
	DB *gorm.DB
}

func NewPermissionController(db *gorm.DB) *PermissionController {
	return &PermissionController{DB: db}
}

var validate = validator.New()

/* ===================== MAHASISWA ===================== */

// POST /api/student/permissions
// Pengajuan izin dengan surat pendukung. Pengajuan ulang selagi
// belum disetujui mengganti surat dan alasan.
func (ctrl *PermissionController) Submit(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitPermissionRequest
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

	var enrolled int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ? AND user_id = ?", session.ClassID, userID).
		Count(&enrolled).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}
	if enrolled == 0 {
		return helper.Error(c, fiber.StatusForbidden, "Anda tidak terdaftar di kelas ini")
	}

	var existing model.PermissionRequestModel
	err = ctrl.DB.First(&existing, "student_id = ? AND session_id = ?", userID, req.SessionID).Error
	if err == nil && existing.Status == constants.PermissionApproved {
		return helper.Error(c, fiber.StatusBadRequest, "Izin untuk sesi ini sudah disetujui")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa izin")
	}

	fileURL, uerr := storage.UploadBase64(c.Context(), req.FileBase64, storage.BucketPermissions, userID.String())
	if uerr != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Surat izin tidak valid: "+uerr.Error())
	}

	if existing.ID != uuid.Nil {
		oldFile := existing.FileURL
		existing.Reason = req.Reason
		existing.FileURL = fileURL
		existing.Status = constants.PermissionPending
		existing.RejectionReason = nil
		existing.ReviewedBy = nil
		existing.ReviewedAt = nil
		if err := ctrl.DB.Save(&existing).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan izin")
		}
		if oldFile != "" {
			storage.DeleteByURL(c.Context(), oldFile)
		}
		return helper.Success(c, "Pengajuan izin diperbarui", existing)
	}

	permission := model.PermissionRequestModel{
		StudentID: userID,
		SessionID: req.SessionID,
		Reason:    req.Reason,
		FileURL:   fileURL,
		Status:    constants.PermissionPending,
	}
	if err := ctrl.DB.Create(&permission).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Izin untuk sesi ini sudah ada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan izin")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pengajuan izin dikirim", permission)
}

// GET /api/student/permissions
func (ctrl *PermissionController) MyPermissions(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var permissions []model.PermissionRequestModel
	if err := ctrl.DB.
		Preload("Session").Preload("Session.Class").
		Where("student_id = ?", userID).
		Order("created_at DESC").
		Find(&permissions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil izin Anda")
	}
	return helper.Success(c, "Pengajuan izin Anda", permissions)
}

/* ===================== ADMIN ===================== */

// GET /api/admin/permissions?status=PENDING
func (ctrl *PermissionController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.PermissionRequestModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung izin")
	}

	var permissions []model.PermissionRequestModel
	if err := q.
		Preload("Student").Preload("Session").Preload("Session.Class").
		Order("created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&permissions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil izin")
	}

	return helper.SuccessWithPagination(c, "Daftar pengajuan izin", permissions,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// POST /api/admin/permissions/:id/approve
// Alasan izin dipetakan ke status kehadirannya (IZIN_SAKIT /
// IZIN_KAMPUS / IZIN_LAIN) lalu catatan kehadiran di-upsert,
// semuanya dalam satu transaksi.
func (ctrl *PermissionController) Approve(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	permissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID izin tidak valid")
	}

	// status eksplisit opsional; body kosong tidak apa-apa
	var req dto.ApprovePermissionRequest
	_ = c.BodyParser(&req)
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	tx := ctrl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var permission model.PermissionRequestModel
	if err := tx.Preload("Session").First(&permission, "id = ?", permissionID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pengajuan izin tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil izin")
	}
	if permission.Status != constants.PermissionPending {
		tx.Rollback()
		return helper.Error(c, fiber.StatusBadRequest, "Pengajuan izin sudah diproses")
	}
	if permission.Session == nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Sesi izin tidak ditemukan")
	}

	// tanpa enrollment tidak ada catatan kehadiran yang bisa diisi
	var enrolled int64
	if err := tx.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ? AND user_id = ?", permission.Session.ClassID, permission.StudentID).
		Count(&enrolled).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}
	if enrolled == 0 {
		tx.Rollback()
		return helper.Error(c, fiber.StatusConflict, "Mahasiswa tidak terdaftar di kelas sesi ini")
	}

	// status izin dari alasan, kecuali admin memasang status eksplisit
	excusedStatus := workflow.MapReasonToStatus(permission.Reason)
	if req.Status != "" {
		excusedStatus = workflow.Status(req.Status)
	}

	var attendance attendanceModel.StudentAttendanceModel
	err = tx.First(&attendance,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		permission.Session.ClassID, permission.StudentID, permission.SessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		attendance = attendanceModel.StudentAttendanceModel{
			EnrollmentClassID: permission.Session.ClassID,
			EnrollmentUserID:  permission.StudentID,
			SessionID:         permission.SessionID,
			Status:            string(excusedStatus),
			ProofURL:          &permission.FileURL,
			ApprovedBy:        &adminID,
		}
		if cerr := tx.Create(&attendance).Error; cerr != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat catatan kehadiran")
		}
	} else if err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	} else {
		if _, werr := workflow.Next(workflow.Status(attendance.Status), workflow.ActionExcuse); werr != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusBadRequest,
				"Status kehadiran "+attendance.Status+" tidak bisa diubah menjadi izin")
		}
		now := time.Now()
		attendance.Status = string(excusedStatus)
		attendance.Grade = workflow.NormalizeGrade(excusedStatus, attendance.Grade)
		attendance.ProofURL = &permission.FileURL
		attendance.ApprovedBy = &adminID
		attendance.ApprovedAt = &now
		if serr := tx.Save(&attendance).Error; serr != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui kehadiran")
		}
	}

	now := time.Now()
	permission.Status = constants.PermissionApproved
	permission.ReviewedBy = &adminID
	permission.ReviewedAt = &now
	if err := tx.Save(&permission).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui izin")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan persetujuan")
	}

	return helper.Success(c, "Izin disetujui, kehadiran dicatat sebagai "+string(excusedStatus), fiber.Map{
		"permission": permission,
		"attendance": attendance,
	})
}

// POST /api/admin/permissions/:id/reject
func (ctrl *PermissionController) Reject(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	permissionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID izin tidak valid")
	}

	var req dto.RejectPermissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var permission model.PermissionRequestModel
	if err := ctrl.DB.First(&permission, "id = ?", permissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pengajuan izin tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil izin")
	}
	if permission.Status != constants.PermissionPending {
		return helper.Error(c, fiber.StatusBadRequest, "Pengajuan izin sudah diproses")
	}

	now := time.Now()
	permission.Status = constants.PermissionRejected
	permission.RejectionReason = &req.Reason
	permission.ReviewedBy = &adminID
	permission.ReviewedAt = &now
	if err := ctrl.DB.Save(&permission).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menolak izin")
	}
	return helper.Success(c, "Pengajuan izin ditolak", permission)
}
