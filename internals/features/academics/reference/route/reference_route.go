package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	refCache "praktikum_backend/internals/cache"
	refController "praktikum_backend/internals/features/academics/reference/controller"
)

// ReferenceRoutes: daftar referensi untuk semua user login.
func ReferenceRoutes(r fiber.Router, db *gorm.DB, c refCache.Cache) {
	ctrl := refController.NewReferenceController(db, c)

	r.Get("/courses", ctrl.GetCourses)
	r.Get("/rooms", ctrl.GetRooms)
	r.Get("/time-slots", ctrl.GetTimeSlots)
}

// ReferenceAdminRoutes: mutasi referensi, khusus admin.
func ReferenceAdminRoutes(r fiber.Router, db *gorm.DB, c refCache.Cache) {
	ctrl := refController.NewReferenceController(db, c)

	r.Post("/courses", ctrl.CreateCourse)
	r.Post("/rooms", ctrl.CreateRoom)
	r.Post("/time-slots", ctrl.CreateTimeSlot)
}
