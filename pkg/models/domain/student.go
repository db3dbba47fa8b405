package domain

import "time"

type FeeState string

const (
	FeeStateDue  FeeState = "due"
	FeeStatePaid FeeState = "paid"
)

type FeeStatus struct {
	Amount      string
	NextDueDate string
	Status      FeeState
	UpdatedAt   time.Time
}

type Guidance struct {
	Text      string
	UpdatedAt time.Time
}

type Student struct {
	ID              string
	Name            string
	ClassOrCourse   string
	Fees            *FeeStatus
	FacultyGuidance *Guidance
	Deleted         bool
	CreatedAt       time.Time
}

// StudentAnalytics bundles everything derived for one student in a single pass.
type StudentAnalytics struct {
	Student    Student
	Attendance AttendanceTally
	Tests      []TestRecord
	Subjects   []SubjectScore
	Insights   *Insights
}

// StudentSummary is one row of an institute roster.
type StudentSummary struct {
	Student              Student
	Attendance           AttendanceTally
	AttendancePercentage int
	Insights             *Insights
}
