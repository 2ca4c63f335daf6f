package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceController "praktikum_backend/internals/features/attendance/controller"
)

// AttendanceStudentRoutes: absen & riwayat milik mahasiswa sendiri.
func AttendanceStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewStudentAttendanceController(db)

	r.Post("/attendance/submit", ctrl.Submit)
	r.Get("/attendance/class/:classId", ctrl.MyClassAttendance)
}

// AttendanceTeachingRoutes: operasi asisten pada sesi yang ia ampu.
func AttendanceTeachingRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewTeachingAttendanceController(db)

	r.Get("/my-classes", ctrl.MyClasses)
	r.Post("/sessions/:id/check-in", ctrl.CheckIn)
	r.Get("/sessions/:id/pending", ctrl.PendingQueue)
	r.Get("/sessions/:id/roster", ctrl.Roster)
	r.Post("/sessions/:id/attendances/batch", ctrl.BatchUpdate)
	r.Post("/sessions/:id/finalize", ctrl.Finalize)
	r.Post("/attendances/:id/approve", ctrl.Approve)
	r.Post("/attendances/:id/reject", ctrl.Reject)
	r.Get("/classes/:id/sessions", ctrl.ClassSessions)
	r.Get("/classes/:id/recap", ctrl.ClassRecap)
}

// AttendanceAdminRoutes: koreksi manual & kehadiran asisten.
func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewAdminAttendanceController(db)

	r.Post("/attendances/override", ctrl.Override)
	r.Get("/assistant-attendances", ctrl.AssistantLogs)
	r.Get("/assistant-attendances/recap", ctrl.AssistantRecap)
	r.Post("/assistant-attendances/:id/validate", ctrl.ValidateAssistant)
}
