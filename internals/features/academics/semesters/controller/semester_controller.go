package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	"praktikum_backend/internals/features/academics/semesters/dto"
	"praktikum_backend/internals/features/academics/semesters/model"
	helper "praktikum_backend/internals/helpers"
)

type SemesterController struct {
	DB *gorm.DB
}

func NewSemesterController(db *gorm.DB) *SemesterController {
	return &SemesterController{DB: db}
}

var validate = validator.New()

// GET /api/admin/semesters
func (ctrl *SemesterController) GetAll(c *fiber.Ctx) error {
	var semesters []model.SemesterModel
	if err := ctrl.DB.Order("start_date DESC").Find(&semesters).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar semester")
	}

	// Hitung jumlah kelas per semester sekali jalan, bukan N query.
	type classCount struct {
		SemesterID uuid.UUID
		Total      int64
	}
	var counts []classCount
	if err := ctrl.DB.Model(&classModel.ClassModel{}).
		Select("semester_id, COUNT(*) AS total").
		Group("semester_id").Scan(&counts).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung kelas per semester")
	}
	countBySemester := make(map[uuid.UUID]int64, len(counts))
	for _, cc := range counts {
		countBySemester[cc.SemesterID] = cc.Total
	}

	result := make([]fiber.Map, 0, len(semesters))
	for _, s := range semesters {
		result = append(result, fiber.Map{
			"semester":    s,
			"class_count": countBySemester[s.ID],
		})
	}
	return helper.Success(c, "Daftar semester", result)
}

// GET /api/semesters/active — dipakai semua role untuk konteks akademik.
func (ctrl *SemesterController) GetActive(c *fiber.Ctx) error {
	var semester model.SemesterModel
	if err := ctrl.DB.First(&semester, "is_active = true").Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Belum ada semester aktif")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil semester aktif")
	}
	return helper.Success(c, "Semester aktif", semester)
}

// POST /api/admin/semesters
func (ctrl *SemesterController) Create(c *fiber.Ctx) error {
	var req dto.CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	semester := req.ToModel()
	if !semester.EndDate.After(semester.StartDate) {
		return helper.Error(c, fiber.StatusBadRequest, "Tanggal selesai harus setelah tanggal mulai")
	}

	if err := ctrl.DB.Create(&semester).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Nama semester sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat semester")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Semester berhasil dibuat", semester)
}

// PUT /api/admin/semesters/:id
func (ctrl *SemesterController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID semester tidak valid")
	}

	var req dto.UpdateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var semester model.SemesterModel
	if err := ctrl.DB.First(&semester, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Semester tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil semester")
	}

	req.Apply(&semester)
	if !semester.EndDate.After(semester.StartDate) {
		return helper.Error(c, fiber.StatusBadRequest, "Tanggal selesai harus setelah tanggal mulai")
	}
	if err := ctrl.DB.Save(&semester).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Nama semester sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui semester")
	}
	return helper.Success(c, "Semester berhasil diperbarui", semester)
}

// POST /api/admin/semesters/:id/activate
// Mengaktifkan satu semester sekaligus menonaktifkan yang lain,
// dalam satu transaksi supaya tidak pernah ada dua semester aktif.
func (ctrl *SemesterController) Activate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID semester tidak valid")
	}

	tx := ctrl.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var semester model.SemesterModel
	if err := tx.First(&semester, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Semester tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil semester")
	}

	if err := tx.Model(&model.SemesterModel{}).
		Where("is_active = true AND id <> ?", id).
		Update("is_active", false).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menonaktifkan semester lama")
	}
	if err := tx.Model(&semester).Update("is_active", true).Error; err != nil {
		tx.Rollback()
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengaktifkan semester")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}

	semester.IsActive = true
	return helper.Success(c, "Semester diaktifkan", semester)
}
