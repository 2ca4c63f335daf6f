package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "praktikum_backend/internals/features/academics/classes/controller"
)

// ClassRoutes: daftar & detail kelas untuk semua user login.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	r.Get("/classes", ctrl.GetAll)
	r.Get("/classes/schedule", ctrl.MasterSchedule)
	r.Get("/classes/:id", ctrl.GetByID)
}

// ClassAdminRoutes: mutasi kelas & penugasan asisten, khusus admin.
func ClassAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	r.Post("/classes", ctrl.Create)
	r.Put("/classes/:id", ctrl.Update)
	r.Get("/classes/:id/assistants", ctrl.GetAssistants)
	r.Post("/classes/:id/assistants", ctrl.AssignAssistant)
	r.Delete("/classes/:id/assistants/:userId", ctrl.RemoveAssistant)
}

// SessionTeachingRoutes: pembaruan sesi oleh asisten/admin.
func SessionTeachingRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := classController.NewClassController(db)

	r.Put("/sessions/:id", ctrl.UpdateSession)
}
