package workflow

import (
	"errors"
	"strings"
)

/* =========================================================
   Mesin status kehadiran mahasiswa.

   Semua perubahan status lewat Next() supaya transisi yang
   tidak sah ketahuan sebelum menyentuh database.
========================================================= */

// Status kehadiran mahasiswa pada satu sesi.
type Status string

const (
	// StatusNone artinya belum ada catatan kehadiran sama sekali.
	StatusNone Status = ""

	StatusPending  Status = "PENDING"
	StatusHadir    Status = "HADIR"
	StatusRejected Status = "REJECTED"
	StatusAlpha    Status = "ALPHA"
	StatusInhal    Status = "INHAL"

	StatusIzinSakit  Status = "IZIN_SAKIT"
	StatusIzinKampus Status = "IZIN_KAMPUS"
	StatusIzinLain   Status = "IZIN_LAIN"
)

// Action adalah operasi yang menggerakkan status.
type Action string

const (
	// ActionSubmit: mahasiswa absen (scan QR / check-in).
	ActionSubmit Action = "SUBMIT"
	// ActionApprove / ActionReject: keputusan asisten atas absen PENDING.
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
	// ActionExcuse: admin menyetujui surat izin.
	ActionExcuse Action = "EXCUSE"
	// ActionMarkInhal: admin memverifikasi pembayaran inhal.
	ActionMarkInhal Action = "MARK_INHAL"
	// ActionBackfill: finalisasi sesi mengisi yang kosong jadi ALPHA.
	ActionBackfill Action = "BACKFILL"
)

// ErrIllegalTransition dikembalikan saat aksi tidak sah dari status sekarang.
var ErrIllegalTransition = errors.New("transisi status kehadiran tidak diizinkan")

// transitions memetakan (status sekarang, aksi) -> status berikutnya.
// Pasangan yang tidak terdaftar berarti dilarang.
var transitions = map[Status]map[Action]Status{
	StatusNone: {
		ActionSubmit:   StatusPending,
		ActionBackfill: StatusAlpha,
		ActionExcuse:   StatusNone, // status izin sebenarnya dari MapReasonToStatus
	},
	StatusAlpha: {
		ActionSubmit:    StatusPending,
		ActionExcuse:    StatusNone,
		ActionMarkInhal: StatusInhal,
	},
	StatusPending: {
		ActionApprove: StatusHadir,
		ActionReject:  StatusRejected,
		ActionExcuse:  StatusNone,
	},
	StatusRejected: {
		ActionExcuse:    StatusNone,
		ActionMarkInhal: StatusInhal,
	},
	StatusIzinSakit: {
		ActionExcuse:    StatusNone,
		ActionMarkInhal: StatusInhal,
	},
	StatusIzinKampus: {
		ActionExcuse:    StatusNone,
		ActionMarkInhal: StatusInhal,
	},
	StatusIzinLain: {
		ActionExcuse:    StatusNone,
		ActionMarkInhal: StatusInhal,
	},
	StatusHadir: {
		ActionExcuse: StatusNone,
	},
	StatusInhal: {
		ActionExcuse: StatusNone,
	},
}

// Next memvalidasi aksi dari status sekarang dan mengembalikan status baru.
// Untuk ActionExcuse status tujuannya tergantung alasan izin, jadi panggil
// MapReasonToStatus untuk mendapat status finalnya.
func Next(current Status, action Action) (Status, error) {
	acts, ok := transitions[current]
	if !ok {
		return current, ErrIllegalTransition
	}
	next, ok := acts[action]
	if !ok {
		return current, ErrIllegalTransition
	}
	return next, nil
}

// CanSubmit: absen hanya boleh kalau belum ada catatan atau catatannya ALPHA.
func CanSubmit(current Status) bool {
	return current == StatusNone || current == StatusAlpha
}

// CanRequestInhal: inhal hanya untuk mahasiswa yang punya catatan kehadiran
// tapi tidak hadir. Yang sudah HADIR/INHAL atau masih PENDING tidak boleh.
func CanRequestInhal(current Status) bool {
	switch current {
	case StatusNone, StatusHadir, StatusInhal, StatusPending:
		return false
	}
	return true
}

// Gradable: nilai hanya untuk yang benar-benar mengikuti sesi.
func Gradable(s Status) bool {
	return s == StatusHadir || s == StatusInhal
}

// NormalizeGrade memaksa nilai jadi nil bila status barunya tidak bisa
// dinilai. Dipanggil di setiap jalur yang mengubah status supaya nilai
// lama tidak ikut terbawa ke status non-HADIR/INHAL.
func NormalizeGrade(s Status, grade *float64) *float64 {
	if !Gradable(s) {
		return nil
	}
	return grade
}

// IsExcused melaporkan apakah status termasuk jenis izin.
func IsExcused(s Status) bool {
	return s == StatusIzinSakit || s == StatusIzinKampus || s == StatusIzinLain
}

// MapReasonToStatus menerjemahkan alasan izin ke status kehadirannya.
func MapReasonToStatus(reason string) Status {
	r := strings.ToLower(reason)
	switch {
	case strings.Contains(r, "sakit"), strings.Contains(r, "sick"):
		return StatusIzinSakit
	case strings.Contains(r, "kampus"), strings.Contains(r, "university"), strings.Contains(r, "official"):
		return StatusIzinKampus
	default:
		return StatusIzinLain
	}
}

// Valid melaporkan apakah s adalah status tersimpan yang dikenal.
func Valid(s Status) bool {
	switch s {
	case StatusPending, StatusHadir, StatusRejected, StatusAlpha,
		StatusInhal, StatusIzinSakit, StatusIzinKampus, StatusIzinLain:
		return true
	}
	return false
}
