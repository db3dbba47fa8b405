package analytics

import "github.com/de-tools/rankboard/pkg/models/domain"

// Analyze runs every reduction for one student over already fetched institute logs
func Analyze(
	student domain.Student,
	attendance []domain.AttendanceRecord,
	tests []domain.TestRecord,
	settings Settings,
) domain.StudentAnalytics {
	scores := CollectScores(tests, student.ID)

	return domain.StudentAnalytics{
		Student:    student,
		Attendance: TallyAttendance(attendance, student.ID),
		Tests:      scores.Tests,
		Subjects:   scores.Subjects,
		Insights:   ComputeInsights(scores.Tests, settings),
	}
}
