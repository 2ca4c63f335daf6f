package controller

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	"praktikum_backend/internals/features/attendance/dto"
	"praktikum_backend/internals/features/attendance/model"
	"praktikum_backend/internals/features/attendance/workflow"
	enrollmentModel "praktikum_backend/internals/features/enrollments/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/testdb"
)

/* =========================================================
   Test controller dengan DB sqlite in-memory. Auth middleware
   diganti stub yang memasang Locals persis seperti produksi.
========================================================= */

type envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func newTestApp(userID uuid.UUID, isAdmin bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("is_admin", isAdmin)
		return c.Next()
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, sonic.Unmarshal(raw, &env))
	return resp, env
}

type attendanceFixture struct {
	db        *gorm.DB
	assistant userModel.UserModel
	admin     userModel.UserModel
	studentA  userModel.UserModel
	studentB  userModel.UserModel
	class     classModel.ClassModel
	session   classModel.ClassSessionModel
}

func seedAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	db := testdb.Open(t)

	f := &attendanceFixture{db: db}
	f.assistant = userModel.UserModel{ID: uuid.New(), Email: "asisten@praktikum.test", Name: "Asisten"}
	f.admin = userModel.UserModel{ID: uuid.New(), Email: "admin@praktikum.test", Name: "Admin", IsAdmin: true}
	nimA, nimB := "10119001", "10119002"
	f.studentA = userModel.UserModel{ID: uuid.New(), Email: "a@praktikum.test", Name: "Mahasiswa A", NIM: &nimA}
	f.studentB = userModel.UserModel{ID: uuid.New(), Email: "b@praktikum.test", Name: "Mahasiswa B", NIM: &nimB}
	for _, u := range []userModel.UserModel{f.assistant, f.admin, f.studentA, f.studentB} {
		require.NoError(t, db.Create(&u).Error)
	}

	f.class = classModel.ClassModel{
		ID: uuid.New(), Name: "Kelas A",
		CourseID: uuid.New(), SemesterID: uuid.New(),
		DayOfWeek: 1, TimeSlotID: uuid.New(), RoomID: uuid.New(),
		Quota: 25,
	}
	require.NoError(t, db.Create(&f.class).Error)

	f.session = classModel.ClassSessionModel{
		ID: uuid.New(), ClassID: f.class.ID,
		SessionNumber: 1, Topic: "Pengenalan", SessionType: "REGULAR",
	}
	require.NoError(t, db.Create(&f.session).Error)

	require.NoError(t, db.Create(&classModel.ClassAssistantModel{
		ID: uuid.New(), ClassID: f.class.ID, UserID: f.assistant.ID,
	}).Error)
	for _, s := range []userModel.UserModel{f.studentA, f.studentB} {
		require.NoError(t, db.Create(&enrollmentModel.EnrollmentModel{
			ID: uuid.New(), ClassID: f.class.ID, UserID: s.ID,
		}).Error)
	}
	return f
}

func (f *attendanceFixture) attendanceOf(t *testing.T, studentID uuid.UUID) model.StudentAttendanceModel {
	t.Helper()
	var row model.StudentAttendanceModel
	require.NoError(t, f.db.First(&row,
		"enrollment_class_id = ? AND enrollment_user_id = ? AND session_id = ?",
		f.class.ID, studentID, f.session.ID).Error)
	return row
}

/* ===================== ABSEN MAHASISWA ===================== */

func TestSubmit_TanpaBuktiTetapTercatat(t *testing.T) {
	f := seedAttendanceFixture(t)
	ctrl := NewStudentAttendanceController(f.db)
	app := newTestApp(f.studentA.ID, false)
	app.Post("/api/student/attendance/submit", ctrl.Submit)

	resp, env := doJSON(t, app, "POST", "/api/student/attendance/submit",
		dto.SubmitAttendanceRequest{SessionID: f.session.ID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Message)

	row := f.attendanceOf(t, f.studentA.ID)
	assert.Equal(t, string(workflow.StatusPending), row.Status)
	assert.Nil(t, row.ProofURL)
}

func TestSubmit_SesiFinalDitolak(t *testing.T) {
	f := seedAttendanceFixture(t)
	require.NoError(t, f.db.Model(&classModel.ClassSessionModel{}).
		Where("id = ?", f.session.ID).Update("is_finalized", true).Error)

	ctrl := NewStudentAttendanceController(f.db)
	app := newTestApp(f.studentA.ID, false)
	app.Post("/api/student/attendance/submit", ctrl.Submit)

	resp, env := doJSON(t, app, "POST", "/api/student/attendance/submit",
		dto.SubmitAttendanceRequest{SessionID: f.session.ID})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "difinalisasi")
}

/* ===================== KEPUTUSAN ASISTEN ===================== */

func TestApprove_StatusBukanPendingDitolak(t *testing.T) {
	f := seedAttendanceFixture(t)
	row := model.StudentAttendanceModel{
		ID:                uuid.New(),
		EnrollmentClassID: f.class.ID,
		EnrollmentUserID:  f.studentA.ID,
		SessionID:         f.session.ID,
		Status:            string(workflow.StatusHadir),
	}
	require.NoError(t, f.db.Create(&row).Error)

	ctrl := NewTeachingAttendanceController(f.db)
	app := newTestApp(f.assistant.ID, false)
	app.Post("/api/teaching/attendances/:id/approve", ctrl.Approve)

	resp, env := doJSON(t, app, "POST", "/api/teaching/attendances/"+row.ID.String()+"/approve", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "PENDING")
}

/* ===================== PEMBARUAN MASSAL ===================== */

func TestBatchUpdate_UpsertPerMahasiswa(t *testing.T) {
	f := seedAttendanceFixture(t)
	ctrl := NewTeachingAttendanceController(f.db)
	app := newTestApp(f.assistant.ID, false)
	app.Post("/api/teaching/sessions/:id/attendances/batch", ctrl.BatchUpdate)

	grade90, grade70 := 90.0, 70.0
	outsider := uuid.New()
	resp, env := doJSON(t, app, "POST", "/api/teaching/sessions/"+f.session.ID.String()+"/attendances/batch",
		dto.BatchUpdateRequest{Items: []dto.BatchUpdateItem{
			{StudentID: f.studentA.ID, Status: string(workflow.StatusHadir), Grade: &grade90},
			{StudentID: f.studentB.ID, Status: string(workflow.StatusAlpha), Grade: &grade70},
			{StudentID: outsider, Status: string(workflow.StatusHadir)},
		}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)

	rowA := f.attendanceOf(t, f.studentA.ID)
	assert.Equal(t, string(workflow.StatusHadir), rowA.Status)
	require.NotNil(t, rowA.Grade)
	assert.Equal(t, grade90, *rowA.Grade)

	// ALPHA tidak bisa dinilai: nilai yang ikut dikirim dibuang
	rowB := f.attendanceOf(t, f.studentB.ID)
	assert.Equal(t, string(workflow.StatusAlpha), rowB.Status)
	assert.Nil(t, rowB.Grade)

	var total int64
	require.NoError(t, f.db.Model(&model.StudentAttendanceModel{}).
		Where("session_id = ?", f.session.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total, "mahasiswa di luar kelas tidak boleh dapat catatan")

	// panggilan kedua meng-update catatan yang sama, bukan menduplikasi;
	// turun ke ALPHA menghapus nilai lama
	resp, env = doJSON(t, app, "POST", "/api/teaching/sessions/"+f.session.ID.String()+"/attendances/batch",
		dto.BatchUpdateRequest{Items: []dto.BatchUpdateItem{
			{StudentID: f.studentA.ID, Status: string(workflow.StatusAlpha)},
		}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)

	rowA = f.attendanceOf(t, f.studentA.ID)
	assert.Equal(t, string(workflow.StatusAlpha), rowA.Status)
	assert.Nil(t, rowA.Grade)
	require.NoError(t, f.db.Model(&model.StudentAttendanceModel{}).
		Where("session_id = ?", f.session.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestBatchUpdate_SesiFinalDitolak(t *testing.T) {
	f := seedAttendanceFixture(t)
	require.NoError(t, f.db.Model(&classModel.ClassSessionModel{}).
		Where("id = ?", f.session.ID).Update("is_finalized", true).Error)

	ctrl := NewTeachingAttendanceController(f.db)
	app := newTestApp(f.assistant.ID, false)
	app.Post("/api/teaching/sessions/:id/attendances/batch", ctrl.BatchUpdate)

	resp, env := doJSON(t, app, "POST", "/api/teaching/sessions/"+f.session.ID.String()+"/attendances/batch",
		dto.BatchUpdateRequest{Items: []dto.BatchUpdateItem{
			{StudentID: f.studentA.ID, Status: string(workflow.StatusHadir)},
		}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "difinalisasi")
}

/* ===================== KOREKSI ADMIN ===================== */

func TestOverride_AdminMenihilkanNilaiUntukIzin(t *testing.T) {
	f := seedAttendanceFixture(t)
	// sesi sudah dikunci; admin tetap boleh mengoreksi
	require.NoError(t, f.db.Model(&classModel.ClassSessionModel{}).
		Where("id = ?", f.session.ID).Update("is_finalized", true).Error)

	grade := 95.0
	row := model.StudentAttendanceModel{
		ID:                uuid.New(),
		EnrollmentClassID: f.class.ID,
		EnrollmentUserID:  f.studentA.ID,
		SessionID:         f.session.ID,
		Status:            string(workflow.StatusHadir),
		Grade:             &grade,
	}
	require.NoError(t, f.db.Create(&row).Error)

	ctrl := NewAdminAttendanceController(f.db)
	app := newTestApp(f.admin.ID, true)
	app.Post("/api/admin/attendances/override", ctrl.Override)

	grade88 := 88.0
	resp, env := doJSON(t, app, "POST", "/api/admin/attendances/override",
		dto.BatchOverrideRequest{
			SessionID: f.session.ID,
			Items: []dto.BatchUpdateItem{
				{StudentID: f.studentA.ID, Status: string(workflow.StatusIzinSakit), Grade: &grade88},
				{StudentID: f.studentB.ID, Status: string(workflow.StatusHadir), Grade: &grade88},
			},
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)

	rowA := f.attendanceOf(t, f.studentA.ID)
	assert.Equal(t, string(workflow.StatusIzinSakit), rowA.Status)
	assert.Nil(t, rowA.Grade, "status izin tidak boleh menyimpan nilai")

	// item kedua membuat catatan baru di sesi terfinalisasi
	rowB := f.attendanceOf(t, f.studentB.ID)
	assert.Equal(t, string(workflow.StatusHadir), rowB.Status)
	require.NotNil(t, rowB.Grade)
	assert.Equal(t, grade88, *rowB.Grade)
}

func TestOverride_StatusTidakDikenalPerItem(t *testing.T) {
	f := seedAttendanceFixture(t)
	ctrl := NewAdminAttendanceController(f.db)
	app := newTestApp(f.admin.ID, true)
	app.Post("/api/admin/attendances/override", ctrl.Override)

	resp, env := doJSON(t, app, "POST", "/api/admin/attendances/override",
		dto.BatchOverrideRequest{
			SessionID: f.session.ID,
			Items: []dto.BatchUpdateItem{
				{StudentID: f.studentA.ID, Status: "NGACO"},
				{StudentID: f.studentB.ID, Status: string(workflow.StatusHadir)},
			},
		})
	// satu item gagal tidak membatalkan item lain
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)

	var total int64
	require.NoError(t, f.db.Model(&model.StudentAttendanceModel{}).
		Where("session_id = ?", f.session.ID).Count(&total).Error)
	assert.EqualValues(t, 1, total)
	rowB := f.attendanceOf(t, f.studentB.ID)
	assert.Equal(t, string(workflow.StatusHadir), rowB.Status)
}

/* ===================== FINALISASI ===================== */

func TestFinalize_IsiAlphaTanpaMenyentuhPending(t *testing.T) {
	f := seedAttendanceFixture(t)
	// A sudah absen dan masih menunggu keputusan; B tidak pernah absen
	pending := model.StudentAttendanceModel{
		ID:                uuid.New(),
		EnrollmentClassID: f.class.ID,
		EnrollmentUserID:  f.studentA.ID,
		SessionID:         f.session.ID,
		Status:            string(workflow.StatusPending),
	}
	require.NoError(t, f.db.Create(&pending).Error)

	ctrl := NewTeachingAttendanceController(f.db)
	app := newTestApp(f.assistant.ID, false)
	app.Post("/api/teaching/sessions/:id/finalize", ctrl.Finalize)

	resp, env := doJSON(t, app, "POST", "/api/teaching/sessions/"+f.session.ID.String()+"/finalize", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Message)

	var session classModel.ClassSessionModel
	require.NoError(t, f.db.First(&session, "id = ?", f.session.ID).Error)
	assert.True(t, session.IsFinalized)

	rowA := f.attendanceOf(t, f.studentA.ID)
	assert.Equal(t, string(workflow.StatusPending), rowA.Status,
		"absen PENDING harus tetap menunggu keputusan asisten")

	rowB := f.attendanceOf(t, f.studentB.ID)
	assert.Equal(t, string(workflow.StatusAlpha), rowB.Status)

	// finalisasi ulang ditolak tanpa efek samping
	resp, env = doJSON(t, app, "POST", "/api/teaching/sessions/"+f.session.ID.String()+"/finalize", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "difinalisasi")

	var total int64
	require.NoError(t, f.db.Model(&model.StudentAttendanceModel{}).
		Where("session_id = ?", f.session.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}
