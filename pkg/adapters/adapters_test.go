package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStoreStudentToDomain(t *testing.T) {
	updated := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	s := store.Student{
		ID:              "s1",
		Name:            "Asha",
		ClassOrCourse:   "10-B",
		Fees:            &store.Fees{Amount: "1500", NextDueDate: "2025-07-01", Status: "due", UpdatedAt: updated},
		FacultyGuidance: &store.Guidance{Text: "Keep going", UpdatedAt: updated},
		Deleted:         true,
	}

	got := MapStoreStudentToDomain(s)

	require.NotNil(t, got.Fees)
	assert.Equal(t, domain.FeeStateDue, got.Fees.Status)
	assert.Equal(t, "1500", got.Fees.Amount)
	require.NotNil(t, got.FacultyGuidance)
	assert.Equal(t, "Keep going", got.FacultyGuidance.Text)
	assert.True(t, got.Deleted)
	assert.Equal(t, s, MapDomainStudentToStore(got))
}

func TestMapStoreInstituteToDomain(t *testing.T) {
	t.Run("missing status defaults to active", func(t *testing.T) {
		got := MapStoreInstituteToDomain(store.Institute{ID: "i1", Name: "Sunrise"})

		assert.Equal(t, domain.InstituteActive, got.Status)
		assert.Equal(t, domain.BrandingConfig{}, got.Branding)
	})

	t.Run("branding is copied", func(t *testing.T) {
		got := MapStoreInstituteToDomain(store.Institute{
			ID:       "i1",
			Status:   "disabled",
			Branding: &store.Branding{HeaderText: "H", FooterText: "F"},
		})

		assert.Equal(t, domain.InstituteDisabled, got.Status)
		assert.Equal(t, domain.BrandingConfig{HeaderText: "H", FooterText: "F"}, got.Branding)
	})

	t.Run("empty branding is omitted", func(t *testing.T) {
		assert.Nil(t, MapDomainInstituteToStore(domain.Institute{ID: "i1"}).Branding)
	})
}

func TestMapTestDomainToApi(t *testing.T) {
	valid := MapTestDomainToApi(domain.TestRecord{Subject: "Math", MarksObtained: 45, MaxMarks: 50})
	invalid := MapTestDomainToApi(domain.TestRecord{Subject: "Math", MarksObtained: 45, MaxMarks: 0})

	require.NotNil(t, valid.Percentage)
	assert.Equal(t, 90.0, *valid.Percentage)
	assert.Nil(t, invalid.Percentage)
}

func TestMapStudentAnalyticsDomainToApi_NoInsights(t *testing.T) {
	got := MapStudentAnalyticsDomainToApi(domain.StudentAnalytics{
		Student:    domain.Student{ID: "s1", Name: "Asha"},
		Attendance: domain.AttendanceTally{TotalMarked: 10, PresentCount: 7},
	})

	assert.Nil(t, got.Insights)
	assert.Equal(t, 70, got.Attendance.Percentage)
	assert.NotNil(t, got.Tests)
	assert.NotNil(t, got.Subjects)
	assert.Nil(t, got.Guidance)
}

func TestMapInsightsDomainToApi(t *testing.T) {
	got := MapInsightsDomainToApi(&domain.Insights{
		AveragePercentage: 65,
		Category:          domain.CategoryAverage,
		StrongSubjects:    []string{"Math"},
		PredictedRange:    domain.ScoreRange{Low: 60, High: 70},
	})

	require.NotNil(t, got)
	assert.Equal(t, "Average", got.Category)
	assert.Equal(t, []string{"Math"}, got.StrongSubjects)
	assert.Equal(t, []string{}, got.WeakSubjects)
	assert.Equal(t, 70.0, got.PredictedRange.High)
}

func TestMapReportDocumentDomainToApi(t *testing.T) {
	got := MapReportDocumentDomainToApi(domain.ReportDocument{
		Title: "Asha_Report",
		Blocks: []domain.TextBlock{
			{Section: domain.SectionFooter, Content: "f", X: 14, Y: 285, FontSize: 10, Rule: domain.PageRulePinned},
		},
	})

	assert.Equal(t, "Asha_Report", got.Title)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "footer", got.Blocks[0].Section)
	assert.Equal(t, "pinned", got.Blocks[0].Rule)
}
