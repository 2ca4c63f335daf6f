package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollmentController "praktikum_backend/internals/features/enrollments/controller"
)

// EnrollmentStudentRoutes: semua endpoint mahasiswa seputar kelasnya.
func EnrollmentStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := enrollmentController.NewEnrollmentController(db)

	r.Post("/enroll", ctrl.DirectEnroll)
	r.Get("/my-classes", ctrl.MyClasses)
	r.Get("/open-classes", ctrl.OpenClasses)
	r.Get("/my-schedule", ctrl.MySchedule)
	r.Get("/my-recap", ctrl.MyRecap)
	r.Get("/classes/:id/report", ctrl.ClassReport)
}
