package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "praktikum_backend/internals/features/academics/classes/model"
)

/* =========================================================
   Pemeriksaan kapabilitas per operasi.

   Setiap endpoint memanggil tepat satu pemeriksaan:
   admin, asisten kelas, asisten sesi, atau pemilik data.
========================================================= */

// EnsureAdmin menolak pemanggil yang bukan admin.
func EnsureAdmin(c *fiber.Ctx) error {
	if !IsAdminFromToken(c) {
		return fiber.NewError(fiber.StatusForbidden, "Akses khusus admin")
	}
	return nil
}

// EnsureSelf memastikan pemanggil hanya menyentuh datanya sendiri,
// kecuali ia admin.
func EnsureSelf(c *fiber.Ctx, ownerID uuid.UUID) error {
	callerID, err := GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if callerID == ownerID || IsAdminFromToken(c) {
		return nil
	}
	return fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengakses data pengguna lain")
}

// EnsureAssistantOfClass memastikan pemanggil terdaftar sebagai
// asisten di kelas tersebut. Admin selalu lolos.
func EnsureAssistantOfClass(c *fiber.Ctx, db *gorm.DB, classID uuid.UUID) error {
	if IsAdminFromToken(c) {
		return nil
	}
	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var count int64
	if err := db.Model(&classModel.ClassAssistantModel{}).
		Where("class_id = ? AND user_id = ?", classID, userID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa penugasan asisten")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusForbidden, "Anda bukan asisten kelas ini")
	}
	return nil
}

// EnsureAssistantOfSession memuat sesi lalu memastikan pemanggil
// asisten di kelas pemilik sesi. Sesi dikembalikan supaya controller
// tidak perlu query dua kali.
func EnsureAssistantOfSession(c *fiber.Ctx, db *gorm.DB, sessionID uuid.UUID) (*classModel.ClassSessionModel, error) {
	var session classModel.ClassSessionModel
	if err := db.First(&session, "id = ?", sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi")
	}
	if err := EnsureAssistantOfClass(c, db, session.ClassID); err != nil {
		return nil, err
	}
	return &session, nil
}
