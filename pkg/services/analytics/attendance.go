package analytics

import (
	"math"

	"github.com/de-tools/rankboard/pkg/models/domain"
)

// TallyAttendance counts the attendance log entries of one student.
// Any status other than present counts toward the total only.
func TallyAttendance(records []domain.AttendanceRecord, studentID string) domain.AttendanceTally {
	var tally domain.AttendanceTally
	for _, record := range records {
		if record.StudentID != studentID {
			continue
		}
		countRecord(&tally, record)
	}
	return tally
}

// TallyByStudent partitions the attendance log of an institute by student
func TallyByStudent(records []domain.AttendanceRecord) map[string]domain.AttendanceTally {
	tallies := make(map[string]domain.AttendanceTally)
	for _, record := range records {
		tally := tallies[record.StudentID]
		countRecord(&tally, record)
		tallies[record.StudentID] = tally
	}
	return tallies
}

func countRecord(tally *domain.AttendanceTally, record domain.AttendanceRecord) {
	tally.TotalMarked++
	if record.Status == domain.AttendancePresent {
		tally.PresentCount++
	}
}

// AttendancePercentage is the rounded share of present marks, 0 when nothing was marked
func AttendancePercentage(tally domain.AttendanceTally) int {
	if tally.TotalMarked == 0 {
		return 0
	}
	return int(math.Round(float64(tally.PresentCount) / float64(tally.TotalMarked) * 100))
}
