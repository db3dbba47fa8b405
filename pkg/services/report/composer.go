package report

import (
	"time"

	"github.com/de-tools/rankboard/pkg/models/domain"
)

// Input is everything a report is composed from
type Input struct {
	Student domain.Student
	// Attendance is rendered in the identity section when set
	Attendance  *domain.AttendanceTally
	Insights    *domain.Insights
	Tests       []domain.TestRecord
	Branding    domain.BrandingConfig
	GeneratedAt time.Time
}

// Compose lays out a student report top to bottom.
// Performance and subject sections are left out when there are no insights.
func Compose(in Input, layout LayoutSettings) domain.ReportDocument {
	c := &composer{
		layout: layout,
		y:      layout.FirstRow,
		doc: domain.ReportDocument{
			Title:        in.Student.Name + "_Report",
			PageWidth:    layout.PageWidth,
			PageHeight:   layout.PageHeight,
			FooterOffset: layout.FooterOffset,
		},
	}

	c.masthead(in.Branding, in.GeneratedAt)
	c.identity(in.Student, in.Attendance)
	if in.Insights != nil {
		c.performance(in.Insights)
	}
	if len(in.Tests) > 0 {
		c.tests(in.Tests)
	}
	if in.Insights != nil {
		c.subjects(in.Insights)
	}
	c.guidance(in.Student.FacultyGuidance)
	c.footer(in.Branding)

	return c.doc
}

type composer struct {
	layout LayoutSettings
	y      float64
	doc    domain.ReportDocument
}

func (c *composer) emit(section domain.Section, content string, x, size float64) {
	if c.y >= c.layout.FooterOffset {
		c.doc.Overflowed = true
	}
	c.doc.Blocks = append(c.doc.Blocks, domain.TextBlock{
		Section:  section,
		Content:  content,
		X:        x,
		Y:        c.y,
		FontSize: size,
		Rule:     domain.PageRuleFlow,
	})
}

func (c *composer) line(section domain.Section, content string, step float64) {
	c.emit(section, content, c.layout.MarginLeft, c.layout.BodySize)
	c.y += step
}

func (c *composer) heading(section domain.Section, title string) {
	c.emit(section, title, c.layout.MarginLeft, c.layout.HeadingSize)
	c.y += c.layout.HeadingStep
}

func (c *composer) masthead(branding domain.BrandingConfig, generatedAt time.Time) {
	header := branding.HeaderText
	if header == "" {
		header = DefaultHeader
	}
	c.emit(domain.SectionMasthead, header, c.layout.MarginLeft, c.layout.MastheadSize)
	c.emit(domain.SectionMasthead, "Generated on: "+generatedAt.Format(c.layout.DateLayout),
		c.layout.TimestampColumn, c.layout.StampSize)
	c.y += c.layout.MastheadStep
}

func (c *composer) identity(student domain.Student, attendance *domain.AttendanceTally) {
	c.heading(domain.SectionIdentity, "Student Profile")
	c.line(domain.SectionIdentity, "Name: "+student.Name, c.layout.LineStep)
	if attendance == nil {
		c.line(domain.SectionIdentity, "Class: "+student.ClassOrCourse, c.layout.SectionStep)
		return
	}
	c.line(domain.SectionIdentity, "Class: "+student.ClassOrCourse, c.layout.LineStep)
	c.line(domain.SectionIdentity, FormatAttendance(*attendance), c.layout.SectionStep)
}

func (c *composer) performance(insights *domain.Insights) {
	c.heading(domain.SectionPerformance, "Overall Performance Summary")
	c.line(domain.SectionPerformance, "Category: "+string(insights.Category), c.layout.LineStep)
	c.line(domain.SectionPerformance, "Average Score: "+FormatAverage(insights.AveragePercentage), c.layout.LineStep)
	c.line(domain.SectionPerformance, "Predicted Next Score: "+FormatRange(insights.PredictedRange), c.layout.SectionStep)
}

func (c *composer) tests(tests []domain.TestRecord) {
	c.heading(domain.SectionTests, "Test Performance")
	for _, test := range tests {
		c.line(domain.SectionTests, FormatTestLine(test), c.layout.LineStep)
	}
	c.y += c.layout.LineStep
}

func (c *composer) subjects(insights *domain.Insights) {
	c.heading(domain.SectionSubjects, "Subject Insights")
	c.line(domain.SectionSubjects, "Strong: "+FormatSubjects(insights.StrongSubjects), c.layout.LineStep)
	c.line(domain.SectionSubjects, "Weak: "+FormatSubjects(insights.WeakSubjects), c.layout.SectionStep)
}

func (c *composer) guidance(guidance *domain.Guidance) {
	c.heading(domain.SectionGuidance, "Faculty Guidance")
	text := NoGuidanceToken
	if guidance != nil && guidance.Text != "" {
		text = guidance.Text
	}
	for _, l := range wrapText(text, c.layout.WrapColumns()) {
		c.line(domain.SectionGuidance, l, c.layout.LineStep)
	}
}

// footer is pinned and never moves the cursor
func (c *composer) footer(branding domain.BrandingConfig) {
	c.doc.Blocks = append(c.doc.Blocks, domain.TextBlock{
		Section:  domain.SectionFooter,
		Content:  branding.FooterText,
		X:        c.layout.MarginLeft,
		Y:        c.layout.FooterOffset,
		FontSize: c.layout.FooterSize,
		Rule:     domain.PageRulePinned,
	})
}
