package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	inhalController "praktikum_backend/internals/features/inhal/controller"
)

// InhalStudentRoutes: pengajuan & status inhal mahasiswa.
func InhalStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := inhalController.NewInhalController(db)

	r.Post("/submit", ctrl.Submit)
	r.Get("/my-requests", ctrl.MyRequests)
	r.Get("/status/:sessionId", ctrl.Status)
}

// InhalAdminRoutes: verifikasi inhal, khusus admin.
func InhalAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := inhalController.NewInhalController(db)

	r.Get("/inhal", ctrl.GetAll)
	r.Get("/inhal/stats", ctrl.Stats)
	r.Post("/inhal/:id/verify", ctrl.Verify)
	r.Post("/inhal/:id/reject", ctrl.Reject)
}
