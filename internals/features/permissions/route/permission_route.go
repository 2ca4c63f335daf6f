package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	permissionController "praktikum_backend/internals/features/permissions/controller"
)

// PermissionStudentRoutes: pengajuan izin milik mahasiswa.
func PermissionStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := permissionController.NewPermissionController(db)

	r.Post("/permissions", ctrl.Submit)
	r.Get("/permissions", ctrl.MyPermissions)
}

// PermissionAdminRoutes: peninjauan izin, khusus admin.
func PermissionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := permissionController.NewPermissionController(db)

	r.Get("/permissions", ctrl.GetAll)
	r.Post("/permissions/:id/approve", ctrl.Approve)
	r.Post("/permissions/:id/reject", ctrl.Reject)
}
