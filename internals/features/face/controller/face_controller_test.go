package controller

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	attendanceModel "praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	"praktikum_backend/internals/features/face/dto"
	"praktikum_backend/internals/features/face/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/testdb"
)

func TestMarkAttendance_TanpaSnapshotTidakMenghapusBukti(t *testing.T) {
	db := testdb.Open(t)

	assistant := userModel.UserModel{ID: uuid.New(), Email: "asisten@praktikum.test", Name: "Asisten"}
	student := userModel.UserModel{ID: uuid.New(), Email: "m@praktikum.test", Name: "Mahasiswa"}
	require.NoError(t, db.Create(&assistant).Error)
	require.NoError(t, db.Create(&student).Error)

	class := classModel.ClassModel{
		ID: uuid.New(), Name: "Kelas A",
		CourseID: uuid.New(), SemesterID: uuid.New(),
		DayOfWeek: 1, TimeSlotID: uuid.New(), RoomID: uuid.New(),
		Quota: 25,
	}
	require.NoError(t, db.Create(&class).Error)
	session := classModel.ClassSessionModel{
		ID: uuid.New(), ClassID: class.ID,
		SessionNumber: 5, Topic: "Rekursi", SessionType: "REGULAR",
	}
	require.NoError(t, db.Create(&session).Error)
	require.NoError(t, db.Create(&classModel.ClassAssistantModel{
		ID: uuid.New(), ClassID: class.ID, UserID: assistant.ID,
	}).Error)
	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		ID: uuid.New(), ClassID: class.ID, UserID: student.ID,
	}).Error)

	// catatan lama membawa surat izin sebagai bukti
	surat := "https://storage.praktikum.test/permissions/surat.webp"
	require.NoError(t, db.Create(&attendanceModel.StudentAttendanceModel{
		ID:                uuid.New(),
		EnrollmentClassID: class.ID,
		EnrollmentUserID:  student.ID,
		SessionID:         session.ID,
		Status:            string(workflow.StatusIzinSakit),
		ProofURL:          &surat,
	}).Error)

	ctrl := NewFaceController(db)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", assistant.ID.String())
		return c.Next()
	})
	app.Post("/api/face/mark-attendance", ctrl.MarkAttendance)

	raw, err := sonic.Marshal(dto.MarkFaceAttendanceRequest{
		SessionID:  session.ID,
		StudentID:  student.ID,
		Confidence: 0.92,
	})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/face/mark-attendance", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var row attendanceModel.StudentAttendanceModel
	require.NoError(t, db.First(&row,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		class.ID, student.ID, session.ID).Error)
	assert.Equal(t, string(workflow.StatusHadir), row.Status)
	require.NotNil(t, row.ProofURL)
	assert.Equal(t, surat, *row.ProofURL, "tanpa snapshot, bukti lama dipertahankan")

	var logs int64
	require.NoError(t, db.Model(&model.FaceAttendanceLogModel{}).
		Where("user_id = ? AND session_id = ?", student.ID, session.ID).
		Count(&logs).Error)
	assert.EqualValues(t, 1, logs)
}
