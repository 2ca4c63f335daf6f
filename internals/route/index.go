package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	refCache "praktikum_backend/internals/cache"
	classRoute "praktikum_backend/internals/features/academics/classes/route"
	referenceRoute "praktikum_backend/internals/features/academics/reference/route"
	semesterRoute "praktikum_backend/internals/features/academics/semesters/route"
	attendanceRoute "praktikum_backend/internals/features/attendance/route"
	enrollmentRoute "praktikum_backend/internals/features/enrollments/route"
	faceRoute "praktikum_backend/internals/features/face/route"
	gradeRoute "praktikum_backend/internals/features/grades/route"
	inhalRoute "praktikum_backend/internals/features/inhal/route"
	paymentRoute "praktikum_backend/internals/features/payments/route"
	permissionRoute "praktikum_backend/internals/features/permissions/route"
	authRoute "praktikum_backend/internals/features/users/auth/route"
	authMw "praktikum_backend/internals/middlewares/auth"
)

// SetupRoutes merangkai seluruh endpoint dalam grup per peran:
// /api/auth publik, sisanya di belakang JWT, dan /api/admin/*
// ditambah pemeriksaan flag admin.
func SetupRoutes(app *fiber.App, db *gorm.DB, c refCache.Cache) {
	BaseRoutes(app, db)

	api := app.Group("/api")

	// 🔓 Auth (register/login tanpa token)
	authRoute.AuthRoutes(api.Group("/auth"), db)

	// 🔒 Semua di bawah ini wajib token valid
	protected := api.Group("", authMw.AuthMiddleware(db))

	// Referensi & kelas: semua role boleh baca
	semesterRoute.SemesterPublicRoutes(protected, db)
	referenceRoute.ReferenceRoutes(protected, db, c)
	classRoute.ClassRoutes(protected, db)

	// 👨‍🎓 Mahasiswa
	student := protected.Group("/student")
	enrollmentRoute.EnrollmentStudentRoutes(student, db)
	attendanceRoute.AttendanceStudentRoutes(student, db)
	permissionRoute.PermissionStudentRoutes(student, db)

	payment := protected.Group("/payment")
	paymentRoute.PaymentStudentRoutes(payment, db)

	inhal := protected.Group("/inhal")
	inhalRoute.InhalStudentRoutes(inhal, db)

	face := protected.Group("/face")
	faceRoute.FaceRoutes(face, db)

	// 👨‍🏫 Asisten (kepemilikan kelas dicek per endpoint)
	teaching := protected.Group("/teaching")
	attendanceRoute.AttendanceTeachingRoutes(teaching, db)
	classRoute.SessionTeachingRoutes(teaching, db)

	grades := protected.Group("/grades")
	gradeRoute.GradeRoutes(grades, db)

	// 🛡 Admin
	admin := protected.Group("/admin", authMw.IsAdmin())
	semesterRoute.SemesterAdminRoutes(admin, db)
	referenceRoute.ReferenceAdminRoutes(admin, db, c)
	classRoute.ClassAdminRoutes(admin, db)
	paymentRoute.PaymentAdminRoutes(admin, db)
	permissionRoute.PermissionAdminRoutes(admin, db)
	inhalRoute.InhalAdminRoutes(admin, db)
	attendanceRoute.AttendanceAdminRoutes(admin, db)
	faceRoute.FaceAdminRoutes(admin, db)
}
