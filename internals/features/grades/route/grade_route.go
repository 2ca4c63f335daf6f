package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gradeController "praktikum_backend/internals/features/grades/controller"
)

// GradeRoutes: penilaian oleh asisten (atau admin) kelas terkait.
func GradeRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := gradeController.NewGradeController(db)

	r.Put("/attendances/:id", ctrl.UpdateGrade)
	r.Put("/sessions/:id", ctrl.UpdateSessionGrades)
	r.Get("/sessions/:id", ctrl.GetSessionGrades)
	r.Get("/classes/:id", ctrl.GetClassGrades)
	r.Get("/classes/:id/stats", ctrl.ClassGradeStats)
}
