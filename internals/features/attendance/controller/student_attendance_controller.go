package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	"praktikum_backend/internals/features/attendance/dto"
	"praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
	"praktikum_backend/internals/helpers/storage"
)

type StudentAttendanceController struct {
	DB *gorm.DB
}

func NewStudentAttendanceController(db *gorm.DB) *StudentAttendanceController {
	return &StudentAttendanceController{DB: db}
}

var validate = validator.New()

// POST /api/student/attendance/submit
// Mahasiswa absen di satu sesi. Hanya boleh kalau belum ada catatan
// atau catatannya ALPHA; hasilnya selalu PENDING menunggu asisten.
func (ctrl *StudentAttendanceController) Submit(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.SubmitAttendanceRequest
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
	if session.IsFinalized {
		return helper.Error(c, fiber.StatusBadRequest, "Sesi sudah difinalisasi, absen tidak bisa dikirim")
	}

	// harus terdaftar di kelas pemilik sesi
	var enrolled int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ? AND user_id = ?", session.ClassID, userID).
		Count(&enrolled).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}
	if enrolled == 0 {
		return helper.Error(c, fiber.StatusForbidden, "Anda tidak terdaftar di kelas ini")
	}

	var existing model.StudentAttendanceModel
	err = ctrl.DB.First(&existing,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		session.ClassID, userID, req.SessionID).Error
	current := workflow.StatusNone
	if err == nil {
		current = workflow.Status(existing.Status)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa kehadiran")
	}

	if !workflow.CanSubmit(current) {
		return helper.Error(c, fiber.StatusConflict,
			"Absen sudah tercatat dengan status "+string(current))
	}
	next, werr := workflow.Next(current, workflow.ActionSubmit)
	if werr != nil {
		return helper.Error(c, fiber.StatusConflict, werr.Error())
	}

	// bukti foto opsional
	var proofURL *string
	if req.ProofBase64 != "" {
		url, uerr := storage.UploadBase64(c.Context(), req.ProofBase64, storage.BucketAttendance, userID.String())
		if uerr != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Bukti kehadiran tidak valid: "+uerr.Error())
		}
		proofURL = &url
	}

	if existing.ID != uuid.Nil {
		// dari ALPHA: catatan lama dipakai ulang
		existing.Status = string(next)
		existing.ProofURL = proofURL
		existing.Grade = nil
		existing.ApprovedBy = nil
		existing.ApprovedAt = nil
		existing.Note = nil
		if err := ctrl.DB.Save(&existing).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
		}
		return helper.Success(c, "Absen dikirim, menunggu persetujuan asisten", existing)
	}

	attendance := model.StudentAttendanceModel{
		EnrollmentClassID: session.ClassID,
		EnrollmentUserID:  userID,
		SessionID:         req.SessionID,
		Status:            string(next),
		ProofURL:          proofURL,
	}
	if err := ctrl.DB.Create(&attendance).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Absen untuk sesi ini sudah ada")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Absen dikirim, menunggu persetujuan asisten", attendance)
}

// GET /api/student/attendance/class/:classId
// Riwayat kehadiran pemanggil di satu kelas, urut nomor sesi.
func (ctrl *StudentAttendanceController) MyClassAttendance(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var rows []model.StudentAttendanceModel
	if err := ctrl.DB.
		Preload("Session").
		Select("student_attendances.*").
		Joins("JOIN class_sessions ON class_sessions.id = student_attendances.session_id").
		Where("student_attendances.enrollment_class_id = ? AND student_attendances.enrollment_user_id = ?", classID, userID).
		Order("class_sessions.session_number ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat kehadiran")
	}
	return helper.Success(c, "Riwayat kehadiran Anda", rows)
}
