package api

import "time"

type Attendance struct {
	Present    int `json:"present"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type Fees struct {
	Amount      string    `json:"amount"`
	NextDueDate string    `json:"next_due_date"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ScoreRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type Insights struct {
	AveragePercentage float64    `json:"average_percentage"`
	Category          string     `json:"category"`
	StrongSubjects    []string   `json:"strong_subjects"`
	WeakSubjects      []string   `json:"weak_subjects"`
	PredictedRange    ScoreRange `json:"predicted_range"`
}

type StudentSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ClassOrCourse string     `json:"class_or_course"`
	Attendance    Attendance `json:"attendance"`
	Fees          *Fees      `json:"fees"`
	Insights      *Insights  `json:"insights"`
}

type TestResult struct {
	ID            string   `json:"id"`
	Subject       string   `json:"subject"`
	MarksObtained float64  `json:"marks_obtained"`
	MaxMarks      float64  `json:"max_marks"`
	Percentage    *float64 `json:"percentage"`
	TestDate      string   `json:"test_date"`
}

type SubjectScore struct {
	Subject    string  `json:"subject"`
	Percentage float64 `json:"percentage"`
}

type Guidance struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudentAnalytics struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ClassOrCourse string         `json:"class_or_course"`
	Attendance    Attendance     `json:"attendance"`
	Tests         []TestResult   `json:"tests"`
	Subjects      []SubjectScore `json:"subjects"`
	Guidance      *Guidance      `json:"guidance"`
	Insights      *Insights      `json:"insights"`
}
