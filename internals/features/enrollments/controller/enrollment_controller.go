package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	classService "praktikum_backend/internals/features/academics/classes/service"
	refModel "praktikum_backend/internals/features/academics/reference/model"
	semesterModel "praktikum_backend/internals/features/academics/semesters/model"
	attendanceModel "praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	"praktikum_backend/internals/features/enrollments/model"
	paymentModel "praktikum_backend/internals/features/payments/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

// POST /api/student/enroll
// Pendaftaran langsung dimatikan: satu-satunya jalur masuk kelas
// adalah verifikasi pembayaran oleh admin.
func (ctrl *EnrollmentController) DirectEnroll(c *fiber.Ctx) error {
	return helper.Error(c, fiber.StatusForbidden,
		"Pendaftaran langsung tidak tersedia. Silakan lakukan pembayaran dan tunggu verifikasi admin.")
}

// GET /api/student/my-classes
func (ctrl *EnrollmentController) MyClasses(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var enrollments []model.EnrollmentModel
	if err := ctrl.DB.
		Preload("Class").
		Preload("Class.Course").Preload("Class.Room").Preload("Class.TimeSlot").Preload("Class.Semester").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas Anda")
	}
	return helper.Success(c, "Kelas yang Anda ikuti", enrollments)
}

// GET /api/student/open-classes
// Kelas semester aktif beserta sisa kuota dan status pembayaran pemanggil.
func (ctrl *EnrollmentController) OpenClasses(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var semester semesterModel.SemesterModel
	if err := ctrl.DB.First(&semester, "is_active = true").Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada semester aktif")
	}

	var classes []classModel.ClassModel
	if err := ctrl.DB.
		Preload("Course").Preload("Room").Preload("TimeSlot").
		Where("semester_id = ?", semester.ID).
		Order("day_of_week ASC, name ASC").
		Find(&classes).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	type classCount struct {
		ClassID uuid.UUID
		Total   int64
	}
	var counts []classCount
	if err := ctrl.DB.Model(&model.EnrollmentModel{}).
		Select("class_id, COUNT(*) AS total").
		Group("class_id").
		Scan(&counts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung peserta")
	}
	enrolled := make(map[uuid.UUID]int64, len(counts))
	for _, cc := range counts {
		enrolled[cc.ClassID] = cc.Total
	}

	// status pembayaran pemanggil per kelas
	var payments []paymentModel.PaymentModel
	if err := ctrl.DB.Where("student_id = ?", userID).Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	paymentStatus := make(map[uuid.UUID]string, len(payments))
	for _, p := range payments {
		paymentStatus[p.ClassID] = p.Status
	}

	type openClass struct {
		Class          classModel.ClassModel `json:"class"`
		Enrolled       int64                 `json:"enrolled"`
		RemainingQuota int64                 `json:"remaining_quota"`
		PaymentStatus  *string               `json:"payment_status"`
	}
	result := make([]openClass, 0, len(classes))
	for _, cls := range classes {
		oc := openClass{
			Class:          cls,
			Enrolled:       enrolled[cls.ID],
			RemainingQuota: int64(cls.Quota) - enrolled[cls.ID],
		}
		if st, ok := paymentStatus[cls.ID]; ok {
			oc.PaymentStatus = &st
		}
		result = append(result, oc)
	}
	return helper.Success(c, "Kelas yang dibuka", result)
}

// GET /api/student/my-schedule
// Jadwal pribadi: grid yang sama dengan jadwal induk tapi hanya
// kelas yang diikuti pemanggil.
func (ctrl *EnrollmentController) MySchedule(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var enrollments []model.EnrollmentModel
	if err := ctrl.DB.
		Preload("Class").Preload("Class.Course").Preload("Class.Room").
		Where("user_id = ?", userID).
		Find(&enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas Anda")
	}

	classes := make([]classModel.ClassModel, 0, len(enrollments))
	for _, e := range enrollments {
		if e.Class != nil {
			classes = append(classes, *e.Class)
		}
	}

	var slots []refModel.TimeSlotModel
	if err := ctrl.DB.Find(&slots).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil slot waktu")
	}

	grid := classService.BuildScheduleGrid(slots, classes, map[uuid.UUID]int64{})
	return helper.Success(c, "Jadwal Anda", grid)
}

// GET /api/student/classes/:id/report
// Laporan satu kelas: tiap sesi + status kehadiran pemanggil + ringkasan.
func (ctrl *EnrollmentController) ClassReport(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var enrollment model.EnrollmentModel
	if err := ctrl.DB.
		Preload("Class").Preload("Class.Course").Preload("Class.Room").Preload("Class.TimeSlot").
		First(&enrollment, "class_id = ? AND user_id = ?", classID, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusForbidden, "Anda tidak terdaftar di kelas ini")
	}

	var sessions []classModel.ClassSessionModel
	if err := ctrl.DB.Where("class_id = ?", classID).
		Order("session_number ASC").Find(&sessions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	var rows []attendanceModel.StudentAttendanceModel
	if err := ctrl.DB.
		Where("enrollment_class_id = ? AND enrollment_user_id = ?", classID, userID).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}
	bySession := make(map[uuid.UUID]attendanceModel.StudentAttendanceModel, len(rows))
	for _, row := range rows {
		bySession[row.SessionID] = row
	}

	type sessionReport struct {
		SessionID     uuid.UUID `json:"session_id"`
		SessionNumber int       `json:"session_number"`
		Topic         string    `json:"topic"`
		SessionType   string    `json:"session_type"`
		IsFinalized   bool      `json:"is_finalized"`
		Status        string    `json:"status"`
		Grade         *float64  `json:"grade"`
	}

	byStatus := make(map[string]int)
	attended := 0
	reports := make([]sessionReport, 0, len(sessions))
	for _, s := range sessions {
		sr := sessionReport{
			SessionID:     s.ID,
			SessionNumber: s.SessionNumber,
			Topic:         s.Topic,
			SessionType:   s.SessionType,
			IsFinalized:   s.IsFinalized,
		}
		if row, ok := bySession[s.ID]; ok {
			sr.Status = row.Status
			sr.Grade = row.Grade
			byStatus[row.Status]++
			if workflow.Gradable(workflow.Status(row.Status)) {
				attended++
			}
		}
		reports = append(reports, sr)
	}

	var attendanceRate float64
	if len(sessions) > 0 {
		attendanceRate = float64(attended) / float64(len(sessions)) * 100
	}

	return helper.Success(c, "Laporan kelas", fiber.Map{
		"class":    enrollment.Class,
		"sessions": reports,
		"summary": fiber.Map{
			"total_sessions":  len(sessions),
			"attended":        attended,
			"attendance_rate": attendanceRate,
			"by_status":       byStatus,
		},
	})
}

// GET /api/student/my-recap
// Rekap kehadiran pemanggil per kelas: hitungan per status + nilai.
func (ctrl *EnrollmentController) MyRecap(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var enrollments []model.EnrollmentModel
	if err := ctrl.DB.
		Preload("Class").Preload("Class.Course").
		Where("user_id = ?", userID).
		Find(&enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas Anda")
	}

	type recap struct {
		Class       *classModel.ClassModel                   `json:"class"`
		ByStatus    map[string]int                           `json:"by_status"`
		Attendances []attendanceModel.StudentAttendanceModel `json:"attendances"`
	}

	result := make([]recap, 0, len(enrollments))
	for _, e := range enrollments {
		var rows []attendanceModel.StudentAttendanceModel
		if err := ctrl.DB.
			Preload("Session").
			Where("enrollment_class_id = ? AND enrollment_user_id = ?", e.ClassID, userID).
			Find(&rows).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil rekap kehadiran")
		}
		byStatus := make(map[string]int)
		for _, row := range rows {
			if workflow.Valid(workflow.Status(row.Status)) {
				byStatus[row.Status]++
			}
		}
		result = append(result, recap{Class: e.Class, ByStatus: byStatus, Attendances: rows})
	}
	return helper.Success(c, "Rekap kehadiran Anda", result)
}
