package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikum_backend/internals/features/academics/classes/dto"
	"praktikum_backend/internals/features/academics/classes/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
)

/* =========================================================
   Penugasan asisten ke kelas (khusus admin).
========================================================= */

// GET /api/admin/classes/:id/assistants
func (ctrl *ClassController) GetAssistants(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var assistants []model.ClassAssistantModel
	if err := ctrl.DB.Preload("User").
		Where("class_id = ?", classID).
		Order("created_at ASC").
		Find(&assistants).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar asisten")
	}
	return helper.Success(c, "Daftar asisten kelas", assistants)
}

// POST /api/admin/classes/:id/assistants
func (ctrl *ClassController) AssignAssistant(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}

	var req dto.AssignAssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var class model.ClassModel
	if err := ctrl.DB.First(&class, "id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}
	var user userModel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	assignment := model.ClassAssistantModel{ClassID: classID, UserID: req.UserID}
	if err := ctrl.DB.Create(&assignment).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "User sudah menjadi asisten kelas ini")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menugaskan asisten")
	}
	assignment.User = &user
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Asisten berhasil ditugaskan", assignment)
}

// DELETE /api/admin/classes/:id/assistants/:userId
func (ctrl *ClassController) RemoveAssistant(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID kelas tidak valid")
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID user tidak valid")
	}

	res := ctrl.DB.Where("class_id = ? AND user_id = ?", classID, userID).
		Delete(&model.ClassAssistantModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mencabut penugasan")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Penugasan asisten tidak ditemukan")
	}
	return helper.Success(c, "Penugasan asisten dicabut", nil)
}
