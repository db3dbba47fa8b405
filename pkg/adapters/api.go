package adapters

import (
	"github.com/de-tools/rankboard/pkg/models/api"
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/analytics"
)

func MapAttendanceDomainToApi(tally domain.AttendanceTally) api.Attendance {
	return api.Attendance{
		Present:    tally.PresentCount,
		Total:      tally.TotalMarked,
		Percentage: analytics.AttendancePercentage(tally),
	}
}

func MapInsightsDomainToApi(insights *domain.Insights) *api.Insights {
	if insights == nil {
		return nil
	}
	return &api.Insights{
		AveragePercentage: insights.AveragePercentage,
		Category:          string(insights.Category),
		StrongSubjects:    nonNil(insights.StrongSubjects),
		WeakSubjects:      nonNil(insights.WeakSubjects),
		PredictedRange: api.ScoreRange{
			Low:  insights.PredictedRange.Low,
			High: insights.PredictedRange.High,
		},
	}
}

func MapFeesDomainToApi(fees *domain.FeeStatus) *api.Fees {
	if fees == nil {
		return nil
	}
	return &api.Fees{
		Amount:      fees.Amount,
		NextDueDate: fees.NextDueDate,
		Status:      string(fees.Status),
		UpdatedAt:   fees.UpdatedAt,
	}
}

func MapStudentSummaryDomainToApi(summary domain.StudentSummary) api.StudentSummary {
	return api.StudentSummary{
		ID:            summary.Student.ID,
		Name:          summary.Student.Name,
		ClassOrCourse: summary.Student.ClassOrCourse,
		Attendance:    MapAttendanceDomainToApi(summary.Attendance),
		Fees:          MapFeesDomainToApi(summary.Student.Fees),
		Insights:      MapInsightsDomainToApi(summary.Insights),
	}
}

func MapTestDomainToApi(test domain.TestRecord) api.TestResult {
	result := api.TestResult{
		ID:            test.ID,
		Subject:       test.Subject,
		MarksObtained: test.MarksObtained,
		MaxMarks:      test.MaxMarks,
		TestDate:      test.TestDate,
	}
	if pct, ok := analytics.Percentage(test); ok {
		result.Percentage = &pct
	}
	return result
}

func MapStudentAnalyticsDomainToApi(sa domain.StudentAnalytics) api.StudentAnalytics {
	out := api.StudentAnalytics{
		ID:            sa.Student.ID,
		Name:          sa.Student.Name,
		ClassOrCourse: sa.Student.ClassOrCourse,
		Attendance:    MapAttendanceDomainToApi(sa.Attendance),
		Tests:         []api.TestResult{},
		Subjects:      []api.SubjectScore{},
		Insights:      MapInsightsDomainToApi(sa.Insights),
	}
	for _, test := range sa.Tests {
		out.Tests = append(out.Tests, MapTestDomainToApi(test))
	}
	for _, subject := range sa.Subjects {
		out.Subjects = append(out.Subjects, api.SubjectScore{Subject: subject.Subject, Percentage: subject.Percentage})
	}
	if g := sa.Student.FacultyGuidance; g != nil {
		out.Guidance = &api.Guidance{Text: g.Text, UpdatedAt: g.UpdatedAt}
	}
	return out
}

func MapReportDocumentDomainToApi(doc domain.ReportDocument) api.ReportDocument {
	out := api.ReportDocument{
		Title:        doc.Title,
		PageWidth:    doc.PageWidth,
		PageHeight:   doc.PageHeight,
		FooterOffset: doc.FooterOffset,
		Overflowed:   doc.Overflowed,
		Blocks:       make([]api.TextBlock, 0, len(doc.Blocks)),
	}
	for _, b := range doc.Blocks {
		out.Blocks = append(out.Blocks, api.TextBlock{
			Section:  string(b.Section),
			Content:  b.Content,
			X:        b.X,
			Y:        b.Y,
			FontSize: b.FontSize,
			Rule:     string(b.Rule),
		})
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
