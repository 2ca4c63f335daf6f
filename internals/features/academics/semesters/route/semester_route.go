package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	semesterController "praktikum_backend/internals/features/academics/semesters/controller"
)

// SemesterAdminRoutes: CRUD + aktivasi, khusus admin.
func SemesterAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := semesterController.NewSemesterController(db)

	r.Get("/semesters", ctrl.GetAll)
	r.Post("/semesters", ctrl.Create)
	r.Put("/semesters/:id", ctrl.Update)
	r.Post("/semesters/:id/activate", ctrl.Activate)
}

// SemesterPublicRoutes: baca semester aktif untuk semua user login.
func SemesterPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := semesterController.NewSemesterController(db)

	r.Get("/semesters/active", ctrl.GetActive)
}
