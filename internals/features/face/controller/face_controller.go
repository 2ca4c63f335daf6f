package controller

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attendanceModel "praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	"praktikum_backend/internals/features/face/dto"
	"praktikum_backend/internals/features/face/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
	"praktikum_backend/internals/helpers/storage"
)

// Kecocokan di bawah ambang ini ditolak.
const minFaceConfidence = 0.6

type FaceController struct {
	DB *gorm.DB
}

func NewFaceController(db *gorm.DB) *FaceController {
	return &FaceController{DB: db}
}

var validate = validator.New()

/* ===================== ENROLMENT WAJAH ===================== */

// POST /api/face/upload
// Daftar ulang menimpa data lama beserta fotonya.
func (ctrl *FaceController) Upload(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UploadFaceDataRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if len(req.Images) != len(req.Descriptors) {
		return helper.Error(c, fiber.StatusBadRequest, "Jumlah foto dan descriptor harus sama")
	}

	urls := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		url, uerr := storage.UploadBase64(c.Context(), img, storage.BucketFaces, userID.String())
		if uerr != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Foto wajah tidak valid: "+uerr.Error())
		}
		urls = append(urls, url)
	}

	descriptorsJSON, err := json.Marshal(req.Descriptors)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Descriptor tidak valid")
	}
	urlsJSON, err := json.Marshal(urls)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan data wajah")
	}

	var existing model.FaceDataModel
	err = ctrl.DB.First(&existing, "user_id = ?", userID).Error
	if err == nil {
		var oldURLs []string
		if jerr := json.Unmarshal(existing.ImageURLs, &oldURLs); jerr == nil {
			for _, u := range oldURLs {
				storage.DeleteByURL(c.Context(), u)
			}
		}
		existing.Descriptors = descriptorsJSON
		existing.ImageURLs = urlsJSON
		existing.IsTrained = true
		if serr := ctrl.DB.Save(&existing).Error; serr != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan data wajah")
		}
		return helper.Success(c, "Data wajah diperbarui", existing)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa data wajah")
	}

	face := model.FaceDataModel{
		UserID:      userID,
		Descriptors: descriptorsJSON,
		ImageURLs:   urlsJSON,
		IsTrained:   true,
	}
	if err := ctrl.DB.Create(&face).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan data wajah")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Data wajah terdaftar", face)
}

// GET /api/face/status
func (ctrl *FaceController) Status(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var face model.FaceDataModel
	err = ctrl.DB.First(&face, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Success(c, "Status data wajah", fiber.Map{
			"registered": false,
			"is_trained": false,
		})
	} else if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa data wajah")
	}
	return helper.Success(c, "Status data wajah", fiber.Map{
		"registered": true,
		"is_trained": face.IsTrained,
	})
}

// DELETE /api/face
func (ctrl *FaceController) Delete(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var face model.FaceDataModel
	if err := ctrl.DB.First(&face, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Data wajah tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data wajah")
	}

	var urls []string
	if jerr := json.Unmarshal(face.ImageURLs, &urls); jerr == nil {
		for _, u := range urls {
			storage.DeleteByURL(c.Context(), u)
		}
	}
	if err := ctrl.DB.Delete(&face).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus data wajah")
	}
	return helper.Success(c, "Data wajah dihapus", nil)
}

/* ===================== ABSENSI WAJAH (ASISTEN) ===================== */

// GET /api/face/sessions/:id/descriptors
// Descriptor seluruh peserta sesi, untuk pencocokan di sisi klien.
func (ctrl *FaceController) SessionDescriptors(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}
	session, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, sessionID)
	if err != nil {
		return err
	}

	var faces []model.FaceDataModel
	if err := ctrl.DB.
		Preload("User").
		Select("face_data.*").
		Joins("JOIN enrollments ON enrollments.user_id = face_data.user_id").
		Where("enrollments.class_id = ? AND face_data.is_trained = true", session.ClassID).
		Find(&faces).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil descriptor")
	}

	type entry struct {
		UserID      uuid.UUID       `json:"user_id"`
		Name        string          `json:"name"`
		Descriptors json.RawMessage `json:"descriptors"`
	}
	result := make([]entry, 0, len(faces))
	for _, f := range faces {
		e := entry{UserID: f.UserID, Descriptors: json.RawMessage(f.Descriptors)}
		if f.User != nil {
			e.Name = f.User.Name
		}
		result = append(result, e)
	}
	return helper.Success(c, "Descriptor peserta sesi", result)
}

// POST /api/face/mark-attendance
// Kecocokan wajah langsung menjadi HADIR (tanpa antrean PENDING):
// kehadirannya disaksikan asisten yang memegang kamera. Catatan
// kehadiran dan log kecocokan ditulis dalam satu transaksi.
func (ctrl *FaceController) MarkAttendance(c *fiber.Ctx) error {
	var req dto.MarkFaceAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Confidence < minFaceConfidence {
		return helper.Error(c, fiber.StatusBadRequest, "Tingkat kepercayaan di bawah ambang minimum")
	}

	session, err := helperAuth.EnsureAssistantOfSession(c, ctrl.DB, req.SessionID)
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

	var enrolled int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ? AND user_id = ?", session.ClassID, req.StudentID).
		Count(&enrolled).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa pendaftaran")
	}
	if enrolled == 0 {
		return helper.Error(c, fiber.StatusConflict, "Mahasiswa tidak terdaftar di kelas ini")
	}

	var snapshotURL *string
	if req.SnapshotBase64 != nil && *req.SnapshotBase64 != "" {
		if url, uerr := storage.UploadBase64(c.Context(), *req.SnapshotBase64, storage.BucketAttendance, req.StudentID.String()+"/face"); uerr == nil {
			snapshotURL = &url
		} else {
			log.Printf("[FACE] gagal unggah snapshot: %v", uerr)
		}
	}

	tx := ctrl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	now := time.Now()
	var attendance attendanceModel.StudentAttendanceModel
	err = tx.First(&attendance,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		session.ClassID, req.StudentID, req.SessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		attendance = attendanceModel.StudentAttendanceModel{
			EnrollmentClassID: session.ClassID,
			EnrollmentUserID:  req.StudentID,
			SessionID:         req.SessionID,
			Status:            string(workflow.StatusHadir),
			ProofURL:          snapshotURL,
			ApprovedBy:        &assistantID,
			ApprovedAt:        &now,
		}
		if cerr := tx.Create(&attendance).Error; cerr != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mencatat kehadiran")
		}
	} else if err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa kehadiran")
	} else {
		current := workflow.Status(attendance.Status)
		if current == workflow.StatusHadir || current == workflow.StatusInhal {
			tx.Rollback()
			return helper.Error(c, fiber.StatusConflict, "Mahasiswa sudah tercatat hadir")
		}
		attendance.Status = string(workflow.StatusHadir)
		if snapshotURL != nil {
			attendance.ProofURL = snapshotURL
		}
		attendance.ApprovedBy = &assistantID
		attendance.ApprovedAt = &now
		if serr := tx.Save(&attendance).Error; serr != nil {
			tx.Rollback()
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mencatat kehadiran")
		}
	}

	faceLog := model.FaceAttendanceLogModel{
		UserID:      req.StudentID,
		SessionID:   req.SessionID,
		Confidence:  req.Confidence,
		SnapshotURL: snapshotURL,
	}
	if err := tx.Create(&faceLog).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menulis log wajah")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan kehadiran")
	}

	return helper.Success(c, "Kehadiran tercatat lewat pengenalan wajah", fiber.Map{
		"attendance": attendance,
		"log":        faceLog,
	})
}

/* ===================== ADMIN ===================== */

// GET /api/admin/face/stats
func (ctrl *FaceController) Stats(c *fiber.Ctx) error {
	var registered int64
	if err := ctrl.DB.Model(&model.FaceDataModel{}).Count(&registered).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung data wajah")
	}
	var marks int64
	if err := ctrl.DB.Model(&model.FaceAttendanceLogModel{}).Count(&marks).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung log wajah")
	}
	return helper.Success(c, "Statistik absensi wajah", fiber.Map{
		"registered_faces": registered,
		"face_attendances": marks,
	})
}

// GET /api/admin/face/students
// Daftar mahasiswa yang sudah mendaftarkan wajah.
func (ctrl *FaceController) Students(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.FaceDataModel{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung data wajah")
	}

	var faces []model.FaceDataModel
	if err := q.
		Preload("User").
		Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&faces).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data wajah")
	}

	type entry struct {
		Student    map[string]interface{} `json:"student"`
		IsTrained  bool                   `json:"is_trained"`
		SampleSize int                    `json:"sample_size"`
		CreatedAt  time.Time              `json:"created_at"`
	}
	result := make([]entry, 0, len(faces))
	for _, f := range faces {
		var urls []string
		_ = json.Unmarshal(f.ImageURLs, &urls)
		e := entry{IsTrained: f.IsTrained, SampleSize: len(urls), CreatedAt: f.CreatedAt}
		if f.User != nil {
			e.Student = f.User.Public()
		}
		result = append(result, e)
	}
	return helper.SuccessWithPagination(c, "Mahasiswa terdaftar wajah", result,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/admin/face/logs
func (ctrl *FaceController) Logs(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.FaceAttendanceLogModel{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung log")
	}

	var logs []model.FaceAttendanceLogModel
	if err := q.
		Preload("User").Preload("Session").
		Order("created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&logs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil log")
	}

	return helper.SuccessWithPagination(c, "Log absensi wajah", logs,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
