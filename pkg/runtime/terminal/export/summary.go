package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/report"
	"github.com/mattn/go-runewidth"
)

const studentsTemplate = `{{range .}}{{pad .Student.Name 24}} {{pad .Student.ClassOrCourse 12}} {{.AttendancePercentage}}%{{if .Insights}}  {{average .Insights.AveragePercentage}}  {{.Insights.Category}}{{end}}{{if .Student.Fees}}  fees {{.Student.Fees.Status}}{{end}}
{{else}}No students found
{{end}}`

const analyticsTemplate = `
{{.Student.Name}} ({{.Student.ClassOrCourse}})
{{attendance .Attendance}}
{{if .Insights}}
=== Overall Performance ===
Category: {{.Insights.Category}}
Average Score: {{average .Insights.AveragePercentage}}
Predicted Next Score: {{prediction .Insights.PredictedRange}}
Strong: {{subjects .Insights.StrongSubjects}}
Weak: {{subjects .Insights.WeakSubjects}}
{{else}}
No valid tests recorded
{{end}}{{if .Tests}}
=== Tests ===
{{range .Tests}}- {{testLine .}}
{{end}}{{end}}{{if .Subjects}}
=== Latest by Subject ===
{{range .Subjects}}- {{.Subject}}: {{printf "%.2f" .Percentage}}%
{{end}}{{end}}`

var funcMap = template.FuncMap{
	"pad": func(s string, width int) string {
		return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
	},
	"average":    report.FormatAverage,
	"prediction": report.FormatRange,
	"attendance": report.FormatAttendance,
	"subjects":   report.FormatSubjects,
	"testLine":   report.FormatTestLine,
}

var (
	studentsTmpl  = template.Must(template.New("students").Funcs(funcMap).Parse(studentsTemplate))
	analyticsTmpl = template.Must(template.New("analytics").Funcs(funcMap).Parse(analyticsTemplate))
)

// SummaryReporter outputs student data to the console in a formatted text form
type SummaryReporter struct {
	writer io.Writer
}

// NewSummaryReporter creates a new console reporter
func NewSummaryReporter(writer io.Writer) *SummaryReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &SummaryReporter{writer: writer}
}

func (c *SummaryReporter) HandleStudents(students []domain.StudentSummary) error {
	if err := studentsTmpl.Execute(c.writer, students); err != nil {
		return fmt.Errorf("failed to render students: %w", err)
	}
	return nil
}

func (c *SummaryReporter) HandleAnalytics(result domain.StudentAnalytics) error {
	if err := analyticsTmpl.Execute(c.writer, result); err != nil {
		return fmt.Errorf("failed to render insights: %w", err)
	}
	return nil
}
