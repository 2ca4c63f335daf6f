package controller

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	refModel "praktikum_backend/internals/features/academics/reference/model"
	attendanceModel "praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	"praktikum_backend/internals/features/enrollments/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/testdb"
)

func TestClassReport_SesiDanRingkasan(t *testing.T) {
	db := testdb.Open(t)

	student := userModel.UserModel{ID: uuid.New(), Email: "m@praktikum.test", Name: "Mahasiswa"}
	require.NoError(t, db.Create(&student).Error)

	course := refModel.CourseModel{ID: uuid.New(), Code: "IF2110", Name: "Algoritma dan Struktur Data"}
	room := refModel.RoomModel{ID: uuid.New(), Name: "Lab 1", Capacity: 30}
	slot := refModel.TimeSlotModel{ID: uuid.New(), StartTime: "07:00", EndTime: "09:30"}
	require.NoError(t, db.Create(&course).Error)
	require.NoError(t, db.Create(&room).Error)
	require.NoError(t, db.Create(&slot).Error)

	class := classModel.ClassModel{
		ID: uuid.New(), Name: "Kelas A",
		CourseID: course.ID, SemesterID: uuid.New(),
		DayOfWeek: 2, TimeSlotID: slot.ID, RoomID: room.ID,
		Quota: 25,
	}
	require.NoError(t, db.Create(&class).Error)

	sesi1 := classModel.ClassSessionModel{
		ID: uuid.New(), ClassID: class.ID,
		SessionNumber: 1, Topic: "Pengenalan", SessionType: "REGULAR", IsFinalized: true,
	}
	sesi2 := classModel.ClassSessionModel{
		ID: uuid.New(), ClassID: class.ID,
		SessionNumber: 2, Topic: "Linked List", SessionType: "REGULAR",
	}
	require.NoError(t, db.Create(&sesi1).Error)
	require.NoError(t, db.Create(&sesi2).Error)

	require.NoError(t, db.Create(&model.EnrollmentModel{
		ID: uuid.New(), ClassID: class.ID, UserID: student.ID,
	}).Error)

	grade := 80.0
	require.NoError(t, db.Create(&attendanceModel.StudentAttendanceModel{
		ID:                uuid.New(),
		EnrollmentClassID: class.ID,
		EnrollmentUserID:  student.ID,
		SessionID:         sesi1.ID,
		Status:            string(workflow.StatusHadir),
		Grade:             &grade,
	}).Error)

	ctrl := NewEnrollmentController(db)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", student.ID.String())
		c.Locals("is_admin", false)
		return c.Next()
	})
	app.Get("/api/student/classes/:id/report", ctrl.ClassReport)

	req := httptest.NewRequest("GET", "/api/student/classes/"+class.ID.String()+"/report", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Data struct {
			Sessions []struct {
				SessionNumber int      `json:"session_number"`
				Topic         string   `json:"topic"`
				SessionType   string   `json:"session_type"`
				Status        string   `json:"status"`
				Grade         *float64 `json:"grade"`
			} `json:"sessions"`
			Summary struct {
				TotalSessions  int            `json:"total_sessions"`
				Attended       int            `json:"attended"`
				AttendanceRate float64        `json:"attendance_rate"`
				ByStatus       map[string]int `json:"by_status"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &body))

	require.Len(t, body.Data.Sessions, 2)
	assert.Equal(t, "Pengenalan", body.Data.Sessions[0].Topic)
	assert.Equal(t, "REGULAR", body.Data.Sessions[0].SessionType)
	assert.Equal(t, string(workflow.StatusHadir), body.Data.Sessions[0].Status)
	require.NotNil(t, body.Data.Sessions[0].Grade)
	assert.Equal(t, grade, *body.Data.Sessions[0].Grade)
	assert.Equal(t, "Linked List", body.Data.Sessions[1].Topic)
	assert.Empty(t, body.Data.Sessions[1].Status, "sesi tanpa catatan tampil kosong")

	assert.Equal(t, 2, body.Data.Summary.TotalSessions)
	assert.Equal(t, 1, body.Data.Summary.Attended)
	assert.InDelta(t, 50.0, body.Data.Summary.AttendanceRate, 0.001)
	assert.Equal(t, 1, body.Data.Summary.ByStatus[string(workflow.StatusHadir)])
}

func TestClassReport_BukanPesertaDitolak(t *testing.T) {
	db := testdb.Open(t)

	student := userModel.UserModel{ID: uuid.New(), Email: "m@praktikum.test", Name: "Mahasiswa"}
	require.NoError(t, db.Create(&student).Error)

	ctrl := NewEnrollmentController(db)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", student.ID.String())
		return c.Next()
	})
	app.Get("/api/student/classes/:id/report", ctrl.ClassReport)

	req := httptest.NewRequest("GET", "/api/student/classes/"+uuid.NewString()+"/report", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
