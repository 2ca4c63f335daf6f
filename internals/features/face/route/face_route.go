package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	faceController "praktikum_backend/internals/features/face/controller"
)

// FaceRoutes: enrolment wajah milik user sendiri + absensi wajah
// oleh asisten sesi.
func FaceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := faceController.NewFaceController(db)

	r.Post("/upload", ctrl.Upload)
	r.Get("/status", ctrl.Status)
	r.Delete("/", ctrl.Delete)
	r.Get("/sessions/:id/descriptors", ctrl.SessionDescriptors)
	r.Post("/mark-attendance", ctrl.MarkAttendance)
}

// FaceAdminRoutes: statistik & log, khusus admin.
func FaceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := faceController.NewFaceController(db)

	r.Get("/face/stats", ctrl.Stats)
	r.Get("/face/students", ctrl.Students)
	r.Get("/face/logs", ctrl.Logs)
}
