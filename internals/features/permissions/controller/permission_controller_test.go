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
	"gorm.io/gorm"

	"praktikum_backend/internals/constants"
	classModel "praktikum_backend/internals/features/academics/classes/model"
	attendanceModel "praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	"praktikum_backend/internals/features/permissions/dto"
	"praktikum_backend/internals/features/permissions/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/testdb"
)

type permissionFixture struct {
	db         *gorm.DB
	admin      userModel.UserModel
	student    userModel.UserModel
	class      classModel.ClassModel
	session    classModel.ClassSessionModel
	permission model.PermissionRequestModel
}

func seedPermissionFixture(t *testing.T, reason string) *permissionFixture {
	t.Helper()
	db := testdb.Open(t)

	f := &permissionFixture{db: db}
	f.admin = userModel.UserModel{ID: uuid.New(), Email: "admin@praktikum.test", Name: "Admin", IsAdmin: true}
	f.student = userModel.UserModel{ID: uuid.New(), Email: "m@praktikum.test", Name: "Mahasiswa"}
	require.NoError(t, db.Create(&f.admin).Error)
	require.NoError(t, db.Create(&f.student).Error)

	f.class = classModel.ClassModel{
		ID: uuid.New(), Name: "Kelas A",
		CourseID: uuid.New(), SemesterID: uuid.New(),
		DayOfWeek: 3, TimeSlotID: uuid.New(), RoomID: uuid.New(),
		Quota: 25,
	}
	require.NoError(t, db.Create(&f.class).Error)

	f.session = classModel.ClassSessionModel{
		ID: uuid.New(), ClassID: f.class.ID,
		SessionNumber: 4, Topic: "Stack dan Queue", SessionType: "REGULAR",
	}
	require.NoError(t, db.Create(&f.session).Error)

	require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
		ID: uuid.New(), ClassID: f.class.ID, UserID: f.student.ID,
	}).Error)

	f.permission = model.PermissionRequestModel{
		ID:        uuid.New(),
		StudentID: f.student.ID,
		SessionID: f.session.ID,
		Reason:    reason,
		FileURL:   "https://storage.praktikum.test/permissions/surat.webp",
		Status:    constants.PermissionPending,
	}
	require.NoError(t, db.Create(&f.permission).Error)
	return f
}

func (f *permissionFixture) approveApp() *fiber.App {
	ctrl := NewPermissionController(f.db)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", f.admin.ID.String())
		c.Locals("is_admin", true)
		return c.Next()
	})
	app.Post("/api/admin/permissions/:id/approve", ctrl.Approve)
	return app
}

func (f *permissionFixture) approve(t *testing.T, app *fiber.App, body interface{}) int {
	t.Helper()
	path := "/api/admin/permissions/" + f.permission.ID.String() + "/approve"
	var payload []byte
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}
	httpReq := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(httpReq, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func (f *permissionFixture) attendance(t *testing.T) attendanceModel.StudentAttendanceModel {
	t.Helper()
	var row attendanceModel.StudentAttendanceModel
	require.NoError(t, f.db.First(&row,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		f.class.ID, f.student.ID, f.session.ID).Error)
	return row
}

func TestApprove_StatusEksplisitMenimpaPemetaanAlasan(t *testing.T) {
	f := seedPermissionFixture(t, "Sakit demam")

	// sudah ada catatan HADIR bernilai; izin harus menimpanya
	grade := 90.0
	require.NoError(t, f.db.Create(&attendanceModel.StudentAttendanceModel{
		ID:                uuid.New(),
		EnrollmentClassID: f.class.ID,
		EnrollmentUserID:  f.student.ID,
		SessionID:         f.session.ID,
		Status:            string(workflow.StatusHadir),
		Grade:             &grade,
	}).Error)

	app := f.approveApp()
	code := f.approve(t, app, dto.ApprovePermissionRequest{Status: string(workflow.StatusIzinKampus)})
	require.Equal(t, fiber.StatusOK, code)

	row := f.attendance(t)
	assert.Equal(t, string(workflow.StatusIzinKampus), row.Status,
		"status eksplisit dari admin mengalahkan pemetaan alasan")
	assert.Nil(t, row.Grade, "status izin tidak boleh menyimpan nilai")
	require.NotNil(t, row.ProofURL)
	assert.Equal(t, f.permission.FileURL, *row.ProofURL, "surat izin jadi bukti kehadiran")

	var perm model.PermissionRequestModel
	require.NoError(t, f.db.First(&perm, "id = ?", f.permission.ID).Error)
	assert.Equal(t, constants.PermissionApproved, perm.Status)
}

func TestApprove_TanpaBodyMemetakanDariAlasan(t *testing.T) {
	f := seedPermissionFixture(t, "Sakit demam berdarah")
	app := f.approveApp()

	code := f.approve(t, app, nil)
	require.Equal(t, fiber.StatusOK, code)

	row := f.attendance(t)
	assert.Equal(t, string(workflow.StatusIzinSakit), row.Status)
	require.NotNil(t, row.ProofURL)
	assert.Equal(t, f.permission.FileURL, *row.ProofURL)

	// izin yang sudah diproses tidak bisa disetujui dua kali
	code = f.approve(t, app, nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}
