package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	"praktikum_backend/internals/features/grades/dto"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
)

/* =========================================================
   Penilaian: nilai 0-100 hanya untuk catatan HADIR atau INHAL.
========================================================= */

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

var validate = validator.New()

// PUT /api/grades/attendances/:id
// Nilai satu catatan kehadiran.
func (ctrl *GradeController) UpdateGrade(c *fiber.Ctx) error {
	attendanceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kehadiran tidak valid")
	}

	var req dto.UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var attendance attendanceModel.StudentAttendanceModel
	if err := ctrl.DB.First(&attendance, "id = ?", attendanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Catatan kehadiran tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}
	if _, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, attendance.SessionID); err != nil {
		return err
	}
	if !workflow.Gradable(workflow.Status(attendance.Status)) {
		return helper.Error(c, fiber.StatusBadRequest,
			"Nilai hanya untuk status HADIR atau INHAL (status sekarang: "+attendance.Status+")")
	}

	attendance.Grade = &req.Grade
	if err := ctrl.DB.Save(&attendance).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}
	return helper.Success(c, "Nilai tersimpan", attendance)
}

// PUT /api/grades/sessions/:id
// Nilai massal satu sesi. Tiap mahasiswa diperbarui dengan syarat
// status HADIR/INHAL di query-nya; yang tidak memenuhi dilaporkan
// per item tanpa membatalkan sisanya.
func (ctrl *GradeController) UpdateSessionGrades(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	session, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID)
	if err != nil {
		return err
	}

	var req dto.UpdateSessionGradesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	tx := ctrl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	results := make([]dto.SessionGradeResult, 0, len(req.Grades))
	for _, item := range req.Grades {
		res := tx.Model(&attendanceModel.StudentAttendanceModel{}).
			Where("session_id = ? AND enrollment_class_id = ? AND enrollment_user_id = ? AND status IN ?",
				sessionID, session.ClassID, item.StudentID,
				[]string{string(workflow.StatusHadir), string(workflow.StatusInhal)}).
			Update("grade", item.Grade)
		if res.Error != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
		}
		if res.RowsAffected == 0 {
			results = append(results, dto.SessionGradeResult{
				StudentID: item.StudentID, OK: false,
				Message: "Tidak ada catatan HADIR/INHAL untuk mahasiswa ini",
			})
			continue
		}
		results = append(results, dto.SessionGradeResult{
			StudentID: item.StudentID, OK: true, Message: "Nilai tersimpan",
		})
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan nilai")
	}
	return helper.Success(c, "Nilai sesi diproses", results)
}

// GET /api/grades/sessions/:id
func (ctrl *GradeController) GetSessionGrades(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	if _, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID); err != nil {
		return err
	}

	var rows []attendanceModel.StudentAttendanceModel
	if err := ctrl.DB.
		Preload("Student").
		Where("session_id = ?", sessionID).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil nilai sesi")
	}
	return helper.Success(c, "Nilai sesi", rows)
}

// GET /api/grades/classes/:id
// Nilai per mahasiswa untuk seluruh sesi kelas.
func (ctrl *GradeController) GetClassGrades(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	if err := helperAuth.EnsureAssistantOfClass(c, ctrl.DB, classID); err != nil {
		return err
	}

	var rows []attendanceModel.StudentAttendanceModel
	if err := ctrl.DB.
		Preload("Student").Preload("Session").
		Where("enrollment_class_id = ?", classID).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil nilai kelas")
	}

	type studentGrades struct {
		Student   map[string]interface{} `json:"student"`
		BySession map[int]*float64       `json:"by_session"`
		Average   float64                `json:"average"`
	}
	perStudent := make(map[uuid.UUID]*studentGrades)
	order := make([]uuid.UUID, 0)
	for _, row := range rows {
		rec, ok := perStudent[row.EnrollmentUserID]
		if !ok {
			rec = &studentGrades{BySession: make(map[int]*float64)}
			if row.Student != nil {
				rec.Student = row.Student.Public()
			}
			perStudent[row.EnrollmentUserID] = rec
			order = append(order, row.EnrollmentUserID)
		}
		if row.Session != nil {
			rec.BySession[row.Session.SessionNumber] = row.Grade
		}
	}
	result := make([]studentGrades, 0, len(order))
	for _, id := range order {
		rec := perStudent[id]
		var sum float64
		var n int
		for _, g := range rec.BySession {
			if g != nil {
				sum += *g
				n++
			}
		}
		if n > 0 {
			rec.Average = sum / float64(n)
		}
		result = append(result, *rec)
	}
	return helper.Success(c, "Nilai kelas", result)
}

// GET /api/grades/classes/:id/stats
func (ctrl *GradeController) ClassGradeStats(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	if err := helperAuth.EnsureAssistantOfClass(c, ctrl.DB, classID); err != nil {
		return err
	}

	type statRow struct {
		Graded  int64    `json:"graded"`
		Average *float64 `json:"average"`
		Min     *float64 `json:"min"`
		Max     *float64 `json:"max"`
	}
	var stats statRow
	if err := ctrl.DB.Model(&attendanceModel.StudentAttendanceModel{}).
		Select("COUNT(grade) AS graded, AVG(grade) AS average, MIN(grade) AS min, MAX(grade) AS max").
		Where("enrollment_class_id = ? AND grade IS NOT NULL", classID).
		Scan(&stats).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung statistik nilai")
	}
	return helper.Success(c, "Statistik nilai kelas", stats)
}
