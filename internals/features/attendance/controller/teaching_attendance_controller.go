package controller

import (
	"errors"
	"log"
	"time"

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
)

type TeachingAttendanceController struct {
	DB *gorm.DB
}

func NewTeachingAttendanceController(db *gorm.DB) *TeachingAttendanceController {
	return &TeachingAttendanceController{DB: db}
}

// POST /api/teaching/sessions/:id/check-in
// Asisten mencatat kehadirannya sendiri di sesi yang ia ampu.
func (ctrl *TeachingAttendanceController) CheckIn(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	session, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID)
	if err != nil {
		return err
	}
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	record := model.AssistantAttendanceModel{
		UserID:      userID,
		SessionID:   session.ID,
		Status:      "HADIR",
		CheckedInAt: time.Now(),
	}
	if err := ctrl.DB.Create(&record).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Anda sudah check-in di sesi ini")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mencatat check-in")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Check-in tercatat", record)
}

// GET /api/teaching/sessions/:id/pending
// Antrean absen PENDING yang menunggu keputusan, urut waktu kirim.
func (ctrl *TeachingAttendanceController) PendingQueue(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	if _, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID); err != nil {
		return err
	}

	var rows []model.StudentAttendanceModel
	if err := ctrl.DB.
		Preload("Student").
		Where("session_id = ? AND status = ?", sessionID, workflow.StatusPending).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil antrean")
	}
	return helper.Success(c, "Antrean absen menunggu persetujuan", rows)
}

// POST /api/teaching/attendances/:id/approve
func (ctrl *TeachingAttendanceController) Approve(c *fiber.Ctx) error {
	return ctrl.decide(c, workflow.ActionApprove, "Absen disetujui")
}

// POST /api/teaching/attendances/:id/reject
func (ctrl *TeachingAttendanceController) Reject(c *fiber.Ctx) error {
	return ctrl.decide(c, workflow.ActionReject, "Absen ditolak")
}

// decide: keputusan hanya sah dari status PENDING oleh asisten
// kelas yang bersangkutan; transisinya divalidasi mesin status.
func (ctrl *TeachingAttendanceController) decide(c *fiber.Ctx, action workflow.Action, okMsg string) error {
	attendanceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kehadiran tidak valid")
	}

	// catatan opsional; body kosong tidak apa-apa
	var req dto.DecisionRequest
	_ = c.BodyParser(&req)

	var attendance model.StudentAttendanceModel
	if err := ctrl.DB.First(&attendance, "id = ?", attendanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Catatan kehadiran tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}
	if _, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, attendance.SessionID); err != nil {
		return err
	}

	next, werr := workflow.Next(workflow.Status(attendance.Status), action)
	if werr != nil {
		return helper.Error(c, fiber.StatusBadRequest,
			"Keputusan hanya bisa untuk absen PENDING (status sekarang: "+attendance.Status+")")
	}

	assistantID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	now := time.Now()
	attendance.Status = string(next)
	attendance.Grade = workflow.NormalizeGrade(next, attendance.Grade)
	attendance.ApprovedBy = &assistantID
	attendance.ApprovedAt = &now
	attendance.Note = req.Note
	if err := ctrl.DB.Save(&attendance).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan keputusan")
	}
	return helper.Success(c, okMsg, attendance)
}

// POST /api/teaching/sessions/:id/attendances/batch
// Pemasangan status (plus nilai) massal per mahasiswa; tiap item
// dinilai sendiri-sendiri supaya satu kegagalan tidak membatalkan
// sisanya.
func (ctrl *TeachingAttendanceController) BatchUpdate(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	session, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID)
	if err != nil {
		return err
	}
	if session.IsFinalized {
		return helper.Error(c, fiber.StatusBadRequest, "Sesi sudah difinalisasi")
	}
	assistantID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.BatchUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	results := applyBatchItems(ctrl.DB, session, assistantID, req.Items)
	return helper.Success(c, "Pembaruan massal diproses", results)
}

// applyBatchItems meng-upsert status kehadiran per mahasiswa pada satu
// sesi. Nilai ikut ditulis hanya bila status barunya bisa dinilai;
// selain itu nilai lama dihapus.
func applyBatchItems(db *gorm.DB, session *classModel.ClassSessionModel, actorID uuid.UUID, items []dto.BatchUpdateItem) []dto.BatchUpdateResult {
	results := make([]dto.BatchUpdateResult, 0, len(items))
	now := time.Now()
	for _, item := range items {
		status := workflow.Status(item.Status)
		if !workflow.Valid(status) {
			results = append(results, dto.BatchUpdateResult{
				StudentID: item.StudentID, OK: false,
				Message: "Status kehadiran tidak dikenal: " + item.Status,
			})
			continue
		}

		var enrolled int64
		if err := db.Model(&enrollmentModel.EnrollmentModel{}).
			Where("class_id = ? AND user_id = ?", session.ClassID, item.StudentID).
			Count(&enrolled).Error; err != nil {
			results = append(results, dto.BatchUpdateResult{
				StudentID: item.StudentID, OK: false, Message: "Gagal memeriksa pendaftaran",
			})
			continue
		}
		if enrolled == 0 {
			results = append(results, dto.BatchUpdateResult{
				StudentID: item.StudentID, OK: false, Message: "Mahasiswa tidak terdaftar di kelas ini",
			})
			continue
		}

		var attendance model.StudentAttendanceModel
		err := db.First(&attendance,
			"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
			session.ClassID, item.StudentID, session.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			attendance = model.StudentAttendanceModel{
				EnrollmentClassID: session.ClassID,
				EnrollmentUserID:  item.StudentID,
				SessionID:         session.ID,
				Status:            string(status),
				Grade:             workflow.NormalizeGrade(status, item.Grade),
				ApprovedBy:        &actorID,
				ApprovedAt:        &now,
				Note:              item.Note,
			}
			if cerr := db.Create(&attendance).Error; cerr != nil {
				results = append(results, dto.BatchUpdateResult{
					StudentID: item.StudentID, OK: false, Message: "Gagal membuat catatan",
				})
				continue
			}
		} else if err != nil {
			results = append(results, dto.BatchUpdateResult{
				StudentID: item.StudentID, OK: false, Message: "Gagal mengambil kehadiran",
			})
			continue
		} else {
			attendance.Status = string(status)
			attendance.Grade = workflow.NormalizeGrade(status, item.Grade)
			attendance.ApprovedBy = &actorID
			attendance.ApprovedAt = &now
			attendance.Note = item.Note
			if serr := db.Save(&attendance).Error; serr != nil {
				results = append(results, dto.BatchUpdateResult{
					StudentID: item.StudentID, OK: false, Message: "Gagal menyimpan",
				})
				continue
			}
		}
		results = append(results, dto.BatchUpdateResult{
			StudentID: item.StudentID, OK: true, Message: string(status),
		})
	}
	return results
}

// GET /api/teaching/sessions/:id/roster
// Semua mahasiswa kelas dengan status kehadirannya di sesi ini;
// yang belum punya catatan tampil sebagai belum absen.
func (ctrl *TeachingAttendanceController) Roster(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	session, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID)
	if err != nil {
		return err
	}

	var enrollments []enrollmentModel.EnrollmentModel
	if err := ctrl.DB.
		Preload("User").
		Where("class_id = ?", session.ClassID).
		Find(&enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil peserta")
	}

	var rows []model.StudentAttendanceModel
	if err := ctrl.DB.Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}
	byStudent := make(map[uuid.UUID]model.StudentAttendanceModel, len(rows))
	for _, row := range rows {
		byStudent[row.EnrollmentUserID] = row
	}

	type rosterEntry struct {
		Student    map[string]interface{}        `json:"student"`
		Attendance *model.StudentAttendanceModel `json:"attendance"`
	}
	byStatus := make(map[string]int)
	roster := make([]rosterEntry, 0, len(enrollments))
	for _, e := range enrollments {
		entry := rosterEntry{}
		if e.User != nil {
			entry.Student = e.User.Public()
		}
		if att, ok := byStudent[e.UserID]; ok {
			a := att
			entry.Attendance = &a
			byStatus[att.Status]++
		} else {
			byStatus["BELUM_ABSEN"]++
		}
		roster = append(roster, entry)
	}
	return helper.Success(c, "Daftar hadir sesi", fiber.Map{
		"session":   session,
		"roster":    roster,
		"by_status": byStatus,
	})
}

// GET /api/teaching/classes/:id/sessions
func (ctrl *TeachingAttendanceController) ClassSessions(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	if err := helperAuth.EnsureAssistantOfClass(c, ctrl.DB, classID); err != nil {
		return err
	}

	var sessions []classModel.ClassSessionModel
	if err := ctrl.DB.Where("class_id = ?", classID).
		Order("session_number ASC").Find(&sessions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	// Antrian PENDING per sesi, satu query agregat.
	type pendingCount struct {
		SessionID uuid.UUID
		Total     int64
	}
	var counts []pendingCount
	if err := ctrl.DB.Model(&model.StudentAttendanceModel{}).
		Select("session_id, COUNT(*) AS total").
		Where("enrollment_class_id = ? AND status = ?", classID, workflow.StatusPending).
		Group("session_id").Scan(&counts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung antrian")
	}
	pendingBySession := make(map[uuid.UUID]int64, len(counts))
	for _, pc := range counts {
		pendingBySession[pc.SessionID] = pc.Total
	}

	result := make([]fiber.Map, 0, len(sessions))
	for _, s := range sessions {
		result = append(result, fiber.Map{
			"session":       s,
			"pending_count": pendingBySession[s.ID],
		})
	}
	return helper.Success(c, "Sesi kelas", result)
}

// GET /api/teaching/my-classes
// Kelas yang diampu pemanggil sebagai asisten.
func (ctrl *TeachingAttendanceController) MyClasses(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var assignments []classModel.ClassAssistantModel
	if err := ctrl.DB.
		Preload("Class").
		Preload("Class.Course").Preload("Class.Room").Preload("Class.TimeSlot").Preload("Class.Semester").
		Where("user_id = ?", userID).
		Find(&assignments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas yang diampu")
	}

	classes := make([]classModel.ClassModel, 0, len(assignments))
	for _, a := range assignments {
		if a.Class != nil {
			classes = append(classes, *a.Class)
		}
	}
	return helper.Success(c, "Kelas yang Anda ampu", classes)
}

// GET /api/teaching/classes/:id/recap
// Matriks kehadiran: per mahasiswa, status di tiap sesi + hitungan.
func (ctrl *TeachingAttendanceController) ClassRecap(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	if err := helperAuth.EnsureAssistantOfClass(c, ctrl.DB, classID); err != nil {
		return err
	}

	var enrollments []enrollmentModel.EnrollmentModel
	if err := ctrl.DB.Preload("User").
		Where("class_id = ?", classID).Find(&enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil peserta")
	}

	var rows []model.StudentAttendanceModel
	if err := ctrl.DB.Preload("Session").
		Where("enrollment_class_id = ?", classID).Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}

	type studentRecap struct {
		Student    map[string]interface{} `json:"student"`
		BySession  map[int]string         `json:"by_session"`
		ByStatus   map[string]int         `json:"by_status"`
		GradeTotal float64                `json:"grade_total"`
	}
	perStudent := make(map[uuid.UUID]*studentRecap, len(enrollments))
	order := make([]uuid.UUID, 0, len(enrollments))
	for _, e := range enrollments {
		rec := &studentRecap{
			BySession: make(map[int]string),
			ByStatus:  make(map[string]int),
		}
		if e.User != nil {
			rec.Student = e.User.Public()
		}
		perStudent[e.UserID] = rec
		order = append(order, e.UserID)
	}
	for _, row := range rows {
		rec, ok := perStudent[row.EnrollmentUserID]
		if !ok {
			continue
		}
		if row.Session != nil {
			rec.BySession[row.Session.SessionNumber] = row.Status
		}
		rec.ByStatus[row.Status]++
		if row.Grade != nil {
			rec.GradeTotal += *row.Grade
		}
	}

	recap := make([]studentRecap, 0, len(order))
	for _, id := range order {
		recap = append(recap, *perStudent[id])
	}
	return helper.Success(c, "Rekap kehadiran kelas", recap)
}

// POST /api/teaching/sessions/:id/finalize
// Mengunci sesi: mahasiswa tanpa catatan diisi ALPHA dalam satu
// transaksi. Absen PENDING tidak disentuh; asisten masih bisa
// memutuskannya lewat antrean.
func (ctrl *TeachingAttendanceController) Finalize(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	session, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID)
	if err != nil {
		return err
	}
	if session.IsFinalized {
		return helper.Error(c, fiber.StatusBadRequest, "Sesi sudah difinalisasi")
	}

	tx := ctrl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var enrollments []enrollmentModel.EnrollmentModel
	if err := tx.Where("class_id = ?", session.ClassID).Find(&enrollments).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil peserta")
	}

	var rows []model.StudentAttendanceModel
	if err := tx.Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kehadiran")
	}
	hasRecord := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		hasRecord[row.EnrollmentUserID] = true
	}

	// isi ALPHA untuk yang tidak pernah absen
	backfilled := 0
	for _, e := range enrollments {
		if hasRecord[e.UserID] {
			continue
		}
		status, werr := workflow.Next(workflow.StatusNone, workflow.ActionBackfill)
		if werr != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusInternalServerError, werr.Error())
		}
		record := model.StudentAttendanceModel{
			EnrollmentClassID: session.ClassID,
			EnrollmentUserID:  e.UserID,
			SessionID:         sessionID,
			Status:            string(status),
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengisi ALPHA")
		}
		backfilled++
	}

	if err := tx.Model(&classModel.ClassSessionModel{}).
		Where("id = ?", sessionID).
		Update("is_finalized", true).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengunci sesi")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan finalisasi")
	}

	log.Printf("[ATTENDANCE] Sesi %s difinalisasi: %d ALPHA diisi", sessionID, backfilled)
	return helper.Success(c, "Sesi difinalisasi", fiber.Map{
		"session_id":       sessionID,
		"alpha_backfilled": backfilled,
	})
}
