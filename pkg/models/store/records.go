package store

import "time"

// Document shapes follow the field names of the hosted institute collections.

type Branding struct {
	HeaderText string `firestore:"headerText"`
	FooterText string `firestore:"footerText"`
}

type Institute struct {
	ID        string    `firestore:"-"`
	Name      string    `firestore:"name"`
	Status    string    `firestore:"status"`
	Branding  *Branding `firestore:"branding,omitempty"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type Fees struct {
	Amount      string    `firestore:"amount"`
	NextDueDate string    `firestore:"nextDueDate"`
	Status      string    `firestore:"status"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

type Guidance struct {
	Text      string    `firestore:"text"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type Student struct {
	ID              string    `firestore:"-"`
	Name            string    `firestore:"name"`
	ClassOrCourse   string    `firestore:"classOrCourse"`
	Fees            *Fees     `firestore:"fees,omitempty"`
	FacultyGuidance *Guidance `firestore:"facultyGuidance,omitempty"`
	Deleted         bool      `firestore:"deleted"`
	CreatedAt       time.Time `firestore:"createdAt"`
}

type Attendance struct {
	ID        string    `firestore:"-"`
	StudentID string    `firestore:"studentId"`
	Date      string    `firestore:"date"`
	Status    string    `firestore:"status"`
	MarkedAt  time.Time `firestore:"markedAt"`
}

type Test struct {
	ID            string    `firestore:"-"`
	StudentID     string    `firestore:"studentId"`
	Subject       string    `firestore:"subject"`
	MarksObtained float64   `firestore:"marksObtained"`
	MaxMarks      float64   `firestore:"maxMarks"`
	TestDate      string    `firestore:"testDate"`
	CreatedAt     time.Time `firestore:"createdAt"`
}
