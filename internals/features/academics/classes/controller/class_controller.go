package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikum_backend/internals/constants"
	"praktikum_backend/internals/features/academics/classes/dto"
	"praktikum_backend/internals/features/academics/classes/model"
	semesterModel "praktikum_backend/internals/features/academics/semesters/model"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	helper "praktikum_backend/internals/helpers"
	helperAuth "praktikum_backend/internals/helpers/auth"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validate = validator.New()

// POST /api/admin/classes
// Membuat kelas sekaligus 11 sesinya dalam satu transaksi:
// pertemuan 1-10 reguler dan sesi ke-11 Responsi.
func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
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

	class := req.ToModel()
	if err := tx.Create(&class).Error; err != nil {
		tx.Rollback()
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict,
				fmt.Sprintf("Jadwal bentrok: sudah ada kelas di %s pada slot dan ruangan yang sama", constants.DayName(req.DayOfWeek)))
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat kelas")
	}

	sessions := make([]model.ClassSessionModel, 0, constants.SessionsPerClass)
	for i := 1; i <= constants.SessionsPerClass; i++ {
		session := model.ClassSessionModel{
			ClassID:       class.ID,
			SessionNumber: i,
			Topic:         fmt.Sprintf("Pertemuan %d", i),
			SessionType:   constants.SessionTypeRegular,
		}
		if i == constants.ResponsiSessionNumber {
			session.Topic = constants.ResponsiTopic
			session.SessionType = constants.SessionTypeExam
		}
		sessions = append(sessions, session)
	}
	if err := tx.Create(&sessions).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat sesi kelas")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan kelas")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Kelas berhasil dibuat", fiber.Map{
		"class":    class,
		"sessions": sessions,
	})
}

// PUT /api/admin/classes/:id
func (ctrl *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var class model.ClassModel
	if err := ctrl.DB.First(&class, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	req.Apply(&class)
	if err := ctrl.DB.Save(&class).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Jadwal bentrok dengan kelas lain")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}
	return helper.Success(c, "Kelas berhasil diperbarui", class)
}

// GET /api/classes — daftar kelas pada semester aktif (atau ?semester_id=).
func (ctrl *ClassController) GetAll(c *fiber.Ctx) error {
	semesterID, err := ctrl.resolveSemesterID(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ClassModel{}).Where("semester_id = ?", semesterID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung kelas")
	}

	var classes []model.ClassModel
	if err := q.
		Preload("Course").Preload("Room").Preload("TimeSlot").
		Order("day_of_week ASC, name ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&classes).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar kelas")
	}

	return helper.SuccessWithPagination(c, "Daftar kelas", classes,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /api/classes/:id
func (ctrl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var class model.ClassModel
	if err := ctrl.DB.
		Preload("Course").Preload("Room").Preload("TimeSlot").Preload("Semester").
		First(&class, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	var sessions []model.ClassSessionModel
	if err := ctrl.DB.Where("class_id = ?", id).
		Order("session_number ASC").Find(&sessions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}

	var enrolled int64
	if err := ctrl.DB.Model(&enrollmentModel.EnrollmentModel{}).
		Where("class_id = ?", id).Count(&enrolled).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung peserta")
	}

	return helper.Success(c, "Detail kelas", fiber.Map{
		"class":    class,
		"sessions": sessions,
		"enrolled": enrolled,
	})
}

// PUT /api/teaching/sessions/:id — asisten/admin memperbarui topik & tanggal sesi.
func (ctrl *ClassController) UpdateSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID sesi tidak valid")
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var session model.ClassSessionModel
	if err := ctrl.DB.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	if err := helperAuth.EnsureAssistantOfClass(c, ctrl.DB, session.ClassID); err != nil {
		return err
	}
	if session.IsFinalized {
		return helper.Error(c, fiber.StatusBadRequest, "Sesi sudah difinalisasi")
	}

	if req.Topic != nil {
		session.Topic = *req.Topic
	}
	if req.SessionDate != nil {
		if t, perr := time.Parse("2006-01-02", *req.SessionDate); perr == nil {
			session.SessionDate = &t
		}
	}
	if err := ctrl.DB.Save(&session).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui sesi")
	}
	return helper.Success(c, "Sesi berhasil diperbarui", session)
}

func (ctrl *ClassController) resolveSemesterID(c *fiber.Ctx) (uuid.UUID, error) {
	if raw := c.Query("semester_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, helper.Error(c, fiber.StatusBadRequest, "semester_id tidak valid")
		}
		return id, nil
	}
	var semester semesterModel.SemesterModel
	if err := ctrl.DB.First(&semester, "is_active = true").Error; err != nil {
		return uuid.Nil, helper.Error(c, fiber.StatusNotFound, "Belum ada semester aktif")
	}
	return semester.ID, nil
}
