package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/* =========================================================
   DB in-memory untuk test controller. Skema dibuat lewat DDL
   mentah karena default gen_random_uuid() di tag model hanya
   jalan di PostgreSQL; di sini id memakai ekspresi randomblob.
========================================================= */

const uuidDefault = `(lower(hex(randomblob(4))||'-'||hex(randomblob(2))||'-'||hex(randomblob(2))||'-'||hex(randomblob(2))||'-'||hex(randomblob(6))))`

var schema = []string{
	`CREATE TABLE users (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL DEFAULT '',
		nim TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME
	)`,
	`CREATE TABLE semesters (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		name TEXT NOT NULL UNIQUE,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME
	)`,
	`CREATE TABLE courses (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		sks INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE rooms (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		name TEXT NOT NULL UNIQUE,
		capacity INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE time_slots (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE classes (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		name TEXT NOT NULL,
		course_id TEXT NOT NULL,
		semester_id TEXT NOT NULL,
		day_of_week INTEGER NOT NULL,
		time_slot_id TEXT NOT NULL,
		room_id TEXT NOT NULL,
		quota INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME,
		UNIQUE (day_of_week, time_slot_id, room_id)
	)`,
	`CREATE TABLE class_assistants (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		class_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (class_id, user_id)
	)`,
	`CREATE TABLE class_sessions (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		class_id TEXT NOT NULL,
		session_number INTEGER NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		session_type TEXT NOT NULL DEFAULT 'REGULAR',
		session_date DATETIME,
		is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME,
		UNIQUE (class_id, session_number)
	)`,
	`CREATE TABLE enrollments (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		class_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (class_id, user_id)
	)`,
	`CREATE TABLE student_attendances (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		enrollment_class_id TEXT NOT NULL,
		enrollment_user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		proof_url TEXT,
		grade REAL,
		approved_by TEXT,
		approved_at DATETIME,
		note TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME,
		UNIQUE (enrollment_class_id, enrollment_user_id, session_id)
	)`,
	`CREATE TABLE assistant_attendances (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'HADIR',
		checked_in_at DATETIME NOT NULL,
		validated_by TEXT,
		validated_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, session_id)
	)`,
	`CREATE TABLE permission_requests (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		student_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		file_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'PENDING',
		reviewed_by TEXT,
		reviewed_at DATETIME,
		rejection_reason TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME,
		UNIQUE (student_id, session_id)
	)`,
	`CREATE TABLE payments (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		student_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		amount INTEGER NOT NULL DEFAULT 0,
		proof_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'PENDING',
		verified_by TEXT,
		verified_at DATETIME,
		rejection_reason TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME,
		UNIQUE (student_id, class_id)
	)`,
	`CREATE TABLE inhal_payments (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		student_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		amount INTEGER NOT NULL DEFAULT 0,
		proof_url TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'PENDING',
		verified_by TEXT,
		verified_at DATETIME,
		rejection_reason TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME,
		UNIQUE (student_id, session_id)
	)`,
	`CREATE TABLE face_data (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		user_id TEXT NOT NULL UNIQUE,
		descriptors TEXT NOT NULL DEFAULT '[]',
		image_urls TEXT NOT NULL DEFAULT '[]',
		is_trained BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME
	)`,
	`CREATE TABLE face_attendance_logs (
		id TEXT PRIMARY KEY DEFAULT ` + uuidDefault + `,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		confidence REAL NOT NULL DEFAULT 0,
		snapshot_url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Open membuka DB sqlite in-memory dengan skema lengkap.
// MaxOpenConns=1 wajib supaya :memory: tidak terpecah per koneksi.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("ambil sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, ddl := range schema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("buat tabel: %v", err)
		}
	}
	return db
}
