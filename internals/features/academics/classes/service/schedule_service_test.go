package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "praktikum_backend/internals/features/academics/classes/model"
	refModel "praktikum_backend/internals/features/academics/reference/model"
)

func slot(start, end string) refModel.TimeSlotModel {
	return refModel.TimeSlotModel{ID: uuid.New(), StartTime: start, EndTime: end}
}

func TestBuildScheduleGrid(t *testing.T) {
	pagi := slot("07:00", "09:30")
	siang := slot("10:00", "12:30")

	course := &refModel.CourseModel{Name: "Algoritma dan Pemrograman"}
	room := &refModel.RoomModel{Name: "Lab 1"}

	kelasA := classModel.ClassModel{
		ID: uuid.New(), Name: "Kelas A", DayOfWeek: 1,
		TimeSlotID: pagi.ID, Quota: 30, Course: course, Room: room,
	}
	kelasB := classModel.ClassModel{
		ID: uuid.New(), Name: "Kelas B", DayOfWeek: 3,
		TimeSlotID: siang.ID, Quota: 25, Course: course, Room: room,
	}

	enrolled := map[uuid.UUID]int64{kelasA.ID: 12}

	// slot sengaja dibalik untuk menguji pengurutan jam mulai
	grid := BuildScheduleGrid([]refModel.TimeSlotModel{siang, pagi},
		[]classModel.ClassModel{kelasA, kelasB}, enrolled)

	require.Len(t, grid, 2)
	assert.Equal(t, "07:00 - 09:30", grid[0].TimeLabel)
	assert.Equal(t, "10:00 - 12:30", grid[1].TimeLabel)

	// setiap baris memuat kolom Senin..Jumat
	for _, row := range grid {
		require.Len(t, row.Days, 5)
		for _, day := range []string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat"} {
			_, ok := row.Days[day]
			assert.True(t, ok, "kolom %s harus ada", day)
		}
	}

	senin := grid[0].Days["Senin"]
	require.Len(t, senin, 1)
	assert.Equal(t, "Kelas A", senin[0].ClassName)
	assert.Equal(t, "Algoritma dan Pemrograman", senin[0].CourseName)
	assert.Equal(t, "Lab 1", senin[0].RoomName)
	assert.Equal(t, int64(12), senin[0].Enrolled)

	rabu := grid[1].Days["Rabu"]
	require.Len(t, rabu, 1)
	assert.Equal(t, "Kelas B", rabu[0].ClassName)
	assert.Equal(t, int64(0), rabu[0].Enrolled)

	// sel lain kosong
	assert.Empty(t, grid[0].Days["Jumat"])
	assert.Empty(t, grid[1].Days["Senin"])
}

func TestBuildScheduleGrid_KelasDiSelSamaUrutNama(t *testing.T) {
	pagi := slot("07:00", "09:30")
	kelasB := classModel.ClassModel{ID: uuid.New(), Name: "B", DayOfWeek: 2, TimeSlotID: pagi.ID}
	kelasA := classModel.ClassModel{ID: uuid.New(), Name: "A", DayOfWeek: 2, TimeSlotID: pagi.ID}

	grid := BuildScheduleGrid([]refModel.TimeSlotModel{pagi},
		[]classModel.ClassModel{kelasB, kelasA}, nil)

	require.Len(t, grid, 1)
	selasa := grid[0].Days["Selasa"]
	require.Len(t, selasa, 2)
	assert.Equal(t, "A", selasa[0].ClassName)
	assert.Equal(t, "B", selasa[1].ClassName)
}

func TestBuildScheduleGrid_Kosong(t *testing.T) {
	grid := BuildScheduleGrid(nil, nil, nil)
	assert.Empty(t, grid)
}
