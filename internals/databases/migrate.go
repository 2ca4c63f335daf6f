package database

import (
	"log"
	"os"

	"gorm.io/gorm"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	referenceModel "praktikum_backend/internals/features/academics/reference/model"
	semesterModel "praktikum_backend/internals/features/academics/semesters/model"
	attendanceModel "praktikum_backend/internals/features/attendance/model"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	faceModel "praktikum_backend/internals/features/face/model"
	inhalModel "praktikum_backend/internals/features/inhal/model"
	paymentModel "praktikum_backend/internals/features/payments/model"
	permissionModel "praktikum_backend/internals/features/permissions/model"
	authModel "praktikum_backend/internals/features/users/auth/model"
	userModel "praktikum_backend/internals/features/users/user/model"
)

// Migrate menjalankan AutoMigrate untuk seluruh tabel aplikasi.
// Urutan mengikuti arah foreign key: referensi dulu, baru transaksi.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshToken{},
		&authModel.TokenBlacklist{},
		&semesterModel.SemesterModel{},
		&referenceModel.CourseModel{},
		&referenceModel.RoomModel{},
		&referenceModel.TimeSlotModel{},
		&classModel.ClassModel{},
		&classModel.ClassAssistantModel{},
		&classModel.ClassSessionModel{},
		&paymentModel.PaymentModel{},
		&enrollmentModel.EnrollmentModel{},
		&attendanceModel.StudentAttendanceModel{},
		&attendanceModel.AssistantAttendanceModel{},
		&permissionModel.PermissionRequestModel{},
		&inhalModel.InhalPaymentModel{},
		&faceModel.FaceDataModel{},
		&faceModel.FaceAttendanceLogModel{},
	)
}

// AutoMigrateIfEnabled dipanggil di startup; matikan lewat AUTO_MIGRATE=false
// kalau skema dikelola migrasi eksternal.
func AutoMigrateIfEnabled() {
	if v := os.Getenv("AUTO_MIGRATE"); v == "false" || v == "0" {
		log.Println("⏭️  AutoMigrate dilewati (AUTO_MIGRATE=false)")
		return
	}
	if err := Migrate(DB); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}
