package controller

import (
	"bytes"
	"io"
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
	"praktikum_backend/internals/features/payments/dto"
	"praktikum_backend/internals/features/payments/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/testdb"
)

func seedPaymentFixture(t *testing.T, status string) (*gorm.DB, userModel.UserModel, classModel.ClassModel) {
	t.Helper()
	db := testdb.Open(t)

	student := userModel.UserModel{ID: uuid.New(), Email: "m@praktikum.test", Name: "Mahasiswa"}
	require.NoError(t, db.Create(&student).Error)

	class := classModel.ClassModel{
		ID: uuid.New(), Name: "Kelas A",
		CourseID: uuid.New(), SemesterID: uuid.New(),
		DayOfWeek: 1, TimeSlotID: uuid.New(), RoomID: uuid.New(),
		Quota: 25,
	}
	require.NoError(t, db.Create(&class).Error)

	require.NoError(t, db.Create(&model.PaymentModel{
		ID:        uuid.New(),
		StudentID: student.ID,
		ClassID:   class.ID,
		Amount:    constants.PaymentAmount,
		ProofURL:  "https://storage.praktikum.test/payments/bukti-lama.webp",
		Status:    status,
	}).Error)
	return db, student, class
}

func submitPayment(t *testing.T, db *gorm.DB, student userModel.UserModel, body dto.SubmitPaymentRequest) (int, string) {
	t.Helper()
	ctrl := NewPaymentController(db)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", student.ID.String())
		return c.Next()
	})
	app.Post("/api/payment/submit", ctrl.Submit)

	raw, err := sonic.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/payment/submit", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env struct {
		Message string `json:"message"`
	}
	require.NoError(t, sonic.Unmarshal(payload, &env))
	return resp.StatusCode, env.Message
}

func TestSubmitPayment_PendingBolehDiajukanUlang(t *testing.T) {
	db, student, class := seedPaymentFixture(t, constants.PaymentPending)

	// bukti yang rusak gagal di validasi unggahan, BUKAN di pagar status:
	// artinya pembayaran PENDING lolos untuk ditimpa
	code, msg := submitPayment(t, db, student, dto.SubmitPaymentRequest{
		ClassID:     class.ID,
		ProofBase64: "bukan-data-uri",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, msg, "Bukti pembayaran tidak valid")

	var payment model.PaymentModel
	require.NoError(t, db.First(&payment, "student_id = ? AND class_id = ?", student.ID, class.ID).Error)
	assert.Equal(t, constants.PaymentPending, payment.Status)
	assert.Equal(t, "https://storage.praktikum.test/payments/bukti-lama.webp", payment.ProofURL,
		"bukti lama utuh karena unggahan baru gagal")
}

func TestSubmitPayment_VerifiedTerkunci(t *testing.T) {
	db, student, class := seedPaymentFixture(t, constants.PaymentVerified)

	code, msg := submitPayment(t, db, student, dto.SubmitPaymentRequest{
		ClassID:     class.ID,
		ProofBase64: "bukan-data-uri",
	})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, msg, "sudah diverifikasi")
}
