package records

import (
	"context"
	"time"

	"github.com/de-tools/rankboard/pkg/models/store"
)

// Store reads the record collections of one institute.
// ListTests returns tests in insertion order: created_at ascending, id as tie-break.
type Store interface {
	GetInstitute(ctx context.Context, instituteID string) (store.Institute, error)
	ListStudents(ctx context.Context, instituteID string) ([]store.Student, error)
	ListAttendance(ctx context.Context, instituteID string) ([]store.Attendance, error)
	ListTests(ctx context.Context, instituteID string) ([]store.Test, error)
}

// Writer appends and mutates institute records. Nothing is ever hard deleted
// except through ClearInstitute, which only mirrors use.
type Writer interface {
	PutInstitute(ctx context.Context, institute store.Institute) error
	AddStudents(ctx context.Context, instituteID string, students []store.Student) error
	AddAttendance(ctx context.Context, instituteID string, records []store.Attendance) error
	AddTests(ctx context.Context, instituteID string, tests []store.Test) error

	MarkAttendance(ctx context.Context, instituteID string, date string, statuses map[string]string, markedAt time.Time) error
	AddTest(ctx context.Context, instituteID string, test store.Test) (string, error)
	SetFees(ctx context.Context, instituteID, studentID string, fees store.Fees) error
	SetGuidance(ctx context.Context, instituteID, studentID string, guidance store.Guidance) error
	SetBranding(ctx context.Context, instituteID string, branding store.Branding) error
	SetInstituteStatus(ctx context.Context, instituteID, status string) error
	SoftDeleteStudent(ctx context.Context, instituteID, studentID string) error

	// ClearInstitute removes the students, attendance and tests of an institute
	ClearInstitute(ctx context.Context, instituteID string) error
}

type ReadWriter interface {
	Store
	Writer
}
