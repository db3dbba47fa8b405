package domain

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord is one marking action. Several records for the same
// student and day are legal and all of them count.
type AttendanceRecord struct {
	ID        string
	StudentID string
	Date      string // YYYY-MM-DD
	Status    AttendanceStatus
	MarkedAt  time.Time
}

// AttendanceTally is always recomputed from the full attendance log.
type AttendanceTally struct {
	TotalMarked  int
	PresentCount int
}
