package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "praktikum_backend/internals/features/payments/controller"
)

// PaymentStudentRoutes: pengajuan & status pembayaran mahasiswa.
func PaymentStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	r.Post("/submit", ctrl.Submit)
	r.Get("/status/:classId", ctrl.Status)
	r.Get("/my-payments", ctrl.MyPayments)
}

// PaymentAdminRoutes: verifikasi pembayaran, khusus admin.
func PaymentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	r.Get("/payments", ctrl.GetAll)
	r.Get("/payments/stats", ctrl.Stats)
	r.Post("/payments/:id/verify", ctrl.Verify)
	r.Post("/payments/:id/reject", ctrl.Reject)
}
