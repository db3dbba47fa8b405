package institute

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/rankboard/pkg/adapters"
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/analytics"
	"github.com/de-tools/rankboard/pkg/services/config"
	"github.com/de-tools/rankboard/pkg/services/report"
	"github.com/de-tools/rankboard/pkg/store/records"
	"github.com/rs/zerolog"
)

type Explorer interface {
	ListStudents(ctx context.Context, instituteID string) ([]domain.StudentSummary, error)
	GetStudentAnalytics(ctx context.Context, instituteID, studentID string) (domain.StudentAnalytics, error)
	GetStudentReport(ctx context.Context, instituteID, studentID string, now time.Time) (domain.ReportDocument, error)
}

type Settings struct {
	Insights analytics.Settings
	Layout   report.LayoutSettings
}

func DefaultSettings() Settings {
	return Settings{
		Insights: analytics.DefaultSettings(),
		Layout:   report.DefaultLayoutSettings(),
	}
}

type instituteExplorer struct {
	source   records.Store
	branding config.BrandingRegistry
	settings Settings
}

// NewExplorer serves analytics and reports straight from a record source.
// Every call fetches the institute logs again; nothing is cached.
func NewExplorer(source records.Store, branding config.BrandingRegistry, settings Settings) Explorer {
	return &instituteExplorer{
		source:   source,
		branding: branding,
		settings: settings,
	}
}

// snapshot is one consistent read of an institute
type snapshot struct {
	institute  domain.Institute
	students   []domain.Student
	attendance []domain.AttendanceRecord
	tests      []domain.TestRecord
}

func (e *instituteExplorer) load(ctx context.Context, instituteID string) (*snapshot, error) {
	inst, err := e.source.GetInstitute(ctx, instituteID)
	if err != nil {
		return nil, err
	}
	students, err := e.source.ListStudents(ctx, instituteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	attendance, err := e.source.ListAttendance(ctx, instituteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	tests, err := e.source.ListTests(ctx, instituteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}

	snap := &snapshot{
		institute:  adapters.MapStoreInstituteToDomain(inst),
		students:   make([]domain.Student, 0, len(students)),
		attendance: make([]domain.AttendanceRecord, 0, len(attendance)),
		tests:      make([]domain.TestRecord, 0, len(tests)),
	}
	for _, st := range students {
		student := adapters.MapStoreStudentToDomain(st)
		if student.Deleted {
			continue
		}
		snap.students = append(snap.students, student)
	}
	for _, a := range attendance {
		snap.attendance = append(snap.attendance, adapters.MapStoreAttendanceToDomain(a))
	}
	for _, t := range tests {
		snap.tests = append(snap.tests, adapters.MapStoreTestToDomain(t))
	}

	zerolog.Ctx(ctx).Debug().
		Str("institute", instituteID).
		Int("students", len(snap.students)).
		Int("attendance", len(snap.attendance)).
		Int("tests", len(snap.tests)).
		Msg("loaded institute records")
	return snap, nil
}

func (s *snapshot) student(studentID string) (domain.Student, error) {
	for _, st := range s.students {
		if st.ID == studentID {
			return st, nil
		}
	}
	return domain.Student{}, fmt.Errorf("student %s: %w", studentID, domain.ErrStudentNotFound)
}

func (e *instituteExplorer) ListStudents(ctx context.Context, instituteID string) ([]domain.StudentSummary, error) {
	snap, err := e.load(ctx, instituteID)
	if err != nil {
		return nil, err
	}

	tallies := analytics.TallyByStudent(snap.attendance)
	tests := analytics.GroupTestsByStudent(snap.tests)

	summaries := make([]domain.StudentSummary, 0, len(snap.students))
	for _, st := range snap.students {
		tally := tallies[st.ID]
		summaries = append(summaries, domain.StudentSummary{
			Student:              st,
			Attendance:           tally,
			AttendancePercentage: analytics.AttendancePercentage(tally),
			Insights:             analytics.ComputeInsights(tests[st.ID], e.settings.Insights),
		})
	}
	return summaries, nil
}

func (e *instituteExplorer) GetStudentAnalytics(
	ctx context.Context,
	instituteID string,
	studentID string,
) (domain.StudentAnalytics, error) {
	snap, err := e.load(ctx, instituteID)
	if err != nil {
		return domain.StudentAnalytics{}, err
	}
	student, err := snap.student(studentID)
	if err != nil {
		return domain.StudentAnalytics{}, err
	}
	return analytics.Analyze(student, snap.attendance, snap.tests, e.settings.Insights), nil
}

func (e *instituteExplorer) GetStudentReport(
	ctx context.Context,
	instituteID string,
	studentID string,
	now time.Time,
) (domain.ReportDocument, error) {
	snap, err := e.load(ctx, instituteID)
	if err != nil {
		return domain.ReportDocument{}, err
	}
	student, err := snap.student(studentID)
	if err != nil {
		return domain.ReportDocument{}, err
	}

	result := analytics.Analyze(student, snap.attendance, snap.tests, e.settings.Insights)
	doc := report.Compose(report.Input{
		Student:     student,
		Attendance:  &result.Attendance,
		Insights:    result.Insights,
		Tests:       result.Tests,
		Branding:    e.branding.Overlay(ctx, instituteID, snap.institute.Branding),
		GeneratedAt: now,
	}, e.settings.Layout)

	if doc.Overflowed {
		zerolog.Ctx(ctx).Warn().
			Str("institute", instituteID).
			Str("student", studentID).
			Msg("report content runs past the footer")
	}
	return doc, nil
}
