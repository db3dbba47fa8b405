package analytics

import (
	"math"

	"github.com/de-tools/rankboard/pkg/models/domain"
)

// StudentScores is the test log of one student plus its per-subject breakdown
type StudentScores struct {
	Tests    []domain.TestRecord
	Subjects []domain.SubjectScore
}

// CollectScores keeps the tests of one student in input order, unmodified,
// and derives the most recent percentage per subject.
func CollectScores(records []domain.TestRecord, studentID string) StudentScores {
	tests := make([]domain.TestRecord, 0)
	for _, record := range records {
		if record.StudentID == studentID {
			tests = append(tests, record)
		}
	}
	return StudentScores{
		Tests:    tests,
		Subjects: SubjectBreakdown(tests),
	}
}

// GroupTestsByStudent partitions the test log of an institute, keeping input order per student
func GroupTestsByStudent(records []domain.TestRecord) map[string][]domain.TestRecord {
	grouped := make(map[string][]domain.TestRecord)
	for _, record := range records {
		grouped[record.StudentID] = append(grouped[record.StudentID], record)
	}
	return grouped
}

// Percentage returns marks obtained over max marks as a percentage.
// The second value is false when the record cannot yield a finite percentage.
func Percentage(record domain.TestRecord) (float64, bool) {
	if record.MaxMarks <= 0 {
		return 0, false
	}
	pct := record.MarksObtained / record.MaxMarks * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// SubjectBreakdown maps each subject label to the last valid percentage seen for it.
// Subjects keep the order of their first appearance; labels are compared as supplied.
func SubjectBreakdown(tests []domain.TestRecord) []domain.SubjectScore {
	subjects := make([]domain.SubjectScore, 0)
	index := make(map[string]int)
	for _, test := range tests {
		pct, ok := Percentage(test)
		if !ok {
			continue
		}
		if i, exists := index[test.Subject]; exists {
			subjects[i].Percentage = pct
			continue
		}
		index[test.Subject] = len(subjects)
		subjects = append(subjects, domain.SubjectScore{Subject: test.Subject, Percentage: pct})
	}
	return subjects
}
