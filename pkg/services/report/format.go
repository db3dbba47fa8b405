package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/analytics"
)

const (
	DefaultHeader   = "RankBoard"
	NoneToken       = "None"
	NoGuidanceToken = "No guidance added"
)

// FormatAverage renders an average percentage with two decimals, e.g. "65.00%"
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.2f%%", avg)
}

// FormatRange renders a predicted band as whole percentages, e.g. "60% to 70%"
func FormatRange(r domain.ScoreRange) string {
	return fmt.Sprintf("%s%% to %s%%", roundHalfUp(r.Low), roundHalfUp(r.High))
}

// FormatAttendance renders a tally, e.g. "Attendance 7/10 (70%)"
func FormatAttendance(tally domain.AttendanceTally) string {
	return fmt.Sprintf("Attendance %d/%d (%d%%)",
		tally.PresentCount, tally.TotalMarked, analytics.AttendancePercentage(tally))
}

// FormatTestLine renders one test record as "subject  obtained/max  percentage%".
// A record without a valid percentage shows n/a.
func FormatTestLine(test domain.TestRecord) string {
	pct := "n/a"
	if p, ok := analytics.Percentage(test); ok {
		pct = roundHalfUp(p) + "%"
	}
	return fmt.Sprintf("%s  %s/%s  %s", test.Subject, formatMarks(test.MarksObtained), formatMarks(test.MaxMarks), pct)
}

// FormatSubjects comma-joins subject labels, or returns "None"
func FormatSubjects(subjects []string) string {
	if len(subjects) == 0 {
		return NoneToken
	}
	return strings.Join(subjects, ", ")
}

func formatMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// roundHalfUp rounds .5 away from zero instead of to even
func roundHalfUp(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}
