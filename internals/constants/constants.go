package constants

// Nominal pembayaran (IDR)
const (
	PaymentAmount = 5000
	InhalAmount   = 30000
)

// Topologi sesi: 10 pertemuan reguler + 1 responsi
const (
	SessionsPerClass      = 11
	ResponsiSessionNumber = 11
	ResponsiTopic         = "Responsi"
)

// Tipe sesi
const (
	SessionTypeRegular = "REGULAR"
	SessionTypeExam    = "EXAM"
)

// Status pembayaran (Payment & InhalPayment)
const (
	PaymentPending  = "PENDING"
	PaymentVerified = "VERIFIED"
	PaymentRejected = "REJECTED"
)

// Status permission request
const (
	PermissionPending  = "PENDING"
	PermissionApproved = "APPROVED"
	PermissionRejected = "REJECTED"
)

// Hari perkuliahan: 1=Senin .. 5=Jumat
var DayNames = map[int]string{
	1: "Senin",
	2: "Selasa",
	3: "Rabu",
	4: "Kamis",
	5: "Jumat",
}

func DayName(day int) string {
	return DayNames[day]
}
