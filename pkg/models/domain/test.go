package domain

import "time"

type TestRecord struct {
	ID            string
	StudentID     string
	Subject       string
	MarksObtained float64
	MaxMarks      float64
	TestDate      string // YYYY-MM-DD
	CreatedAt     time.Time
}

// SubjectScore is the most recent percentage seen for a subject label.
type SubjectScore struct {
	Subject    string
	Percentage float64
}
