package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	refCache "praktikum_backend/internals/cache"
	"praktikum_backend/internals/features/academics/reference/model"
	helper "praktikum_backend/internals/helpers"
)

/* =========================================================
   Data referensi (mata kuliah, ruangan, slot waktu).

   Daftar dilayani dari cache TTL; setiap tulisan meng-
   invalidate key terkait supaya pembacaan berikutnya segar.
========================================================= */

const (
	cacheKeyCourses   = "ref:courses"
	cacheKeyRooms     = "ref:rooms"
	cacheKeyTimeSlots = "ref:time_slots"

	refCacheTTL = 10 * time.Minute
)

type ReferenceController struct {
	DB    *gorm.DB
	Cache refCache.Cache
}

func NewReferenceController(db *gorm.DB, c refCache.Cache) *ReferenceController {
	return &ReferenceController{DB: db, Cache: c}
}

var validate = validator.New()

/* ===================== COURSES ===================== */

type courseRequest struct {
	Code string `json:"code" validate:"required,min=2,max=20"`
	Name string `json:"name" validate:"required,min=3,max=150"`
	SKS  int    `json:"sks" validate:"required,min=1,max=6"`
}

// GET /api/courses
func (ctrl *ReferenceController) GetCourses(c *fiber.Ctx) error {
	if cached, ok := ctrl.Cache.Get(cacheKeyCourses); ok {
		return helper.Success(c, "Daftar mata kuliah", cached)
	}
	var courses []model.CourseModel
	if err := ctrl.DB.Order("code ASC").Find(&courses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil mata kuliah")
	}
	ctrl.Cache.Set(cacheKeyCourses, courses, refCacheTTL)
	return helper.Success(c, "Daftar mata kuliah", courses)
}

// POST /api/admin/courses
func (ctrl *ReferenceController) CreateCourse(c *fiber.Ctx) error {
	var req courseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course := model.CourseModel{Code: req.Code, Name: req.Name, SKS: req.SKS}
	if err := ctrl.DB.Create(&course).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Kode mata kuliah sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat mata kuliah")
	}
	ctrl.Cache.Invalidate(cacheKeyCourses)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Mata kuliah dibuat", course)
}

/* ===================== ROOMS ===================== */

type roomRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

// GET /api/rooms
func (ctrl *ReferenceController) GetRooms(c *fiber.Ctx) error {
	if cached, ok := ctrl.Cache.Get(cacheKeyRooms); ok {
		return helper.Success(c, "Daftar ruangan", cached)
	}
	var rooms []model.RoomModel
	if err := ctrl.DB.Order("name ASC").Find(&rooms).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil ruangan")
	}
	ctrl.Cache.Set(cacheKeyRooms, rooms, refCacheTTL)
	return helper.Success(c, "Daftar ruangan", rooms)
}

// POST /api/admin/rooms
func (ctrl *ReferenceController) CreateRoom(c *fiber.Ctx) error {
	var req roomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	room := model.RoomModel{Name: req.Name, Capacity: req.Capacity}
	if err := ctrl.DB.Create(&room).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Nama ruangan sudah dipakai")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat ruangan")
	}
	ctrl.Cache.Invalidate(cacheKeyRooms)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Ruangan dibuat", room)
}

/* ===================== TIME SLOTS ===================== */

type timeSlotRequest struct {
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// GET /api/time-slots
func (ctrl *ReferenceController) GetTimeSlots(c *fiber.Ctx) error {
	if cached, ok := ctrl.Cache.Get(cacheKeyTimeSlots); ok {
		return helper.Success(c, "Daftar slot waktu", cached)
	}
	var slots []model.TimeSlotModel
	if err := ctrl.DB.Order("start_time ASC").Find(&slots).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil slot waktu")
	}
	ctrl.Cache.Set(cacheKeyTimeSlots, slots, refCacheTTL)
	return helper.Success(c, "Daftar slot waktu", slots)
}

// POST /api/admin/time-slots
func (ctrl *ReferenceController) CreateTimeSlot(c *fiber.Ctx) error {
	var req timeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.EndTime <= req.StartTime {
		return helper.Error(c, fiber.StatusBadRequest, "Jam selesai harus setelah jam mulai")
	}

	slot := model.TimeSlotModel{StartTime: req.StartTime, EndTime: req.EndTime}
	if err := ctrl.DB.Create(&slot).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat slot waktu")
	}
	ctrl.Cache.Invalidate(cacheKeyTimeSlots)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Slot waktu dibuat", slot)
}
