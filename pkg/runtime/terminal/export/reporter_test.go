package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flowBlock(section domain.Section, content string, x, y float64) domain.TextBlock {
	return domain.TextBlock{Section: section, Content: content, X: x, Y: y, Rule: domain.PageRuleFlow}
}

func testConfig() PageConfig {
	return PageConfig{MarginLeft: 14, CharWidth: 2, GapAbove: 8, RuleWidth: 10}
}

func TestRender(t *testing.T) {
	doc := &domain.ReportDocument{Blocks: []domain.TextBlock{
		flowBlock(domain.SectionMasthead, "RankBoard", 14, 20),
		flowBlock(domain.SectionMasthead, "Stamp", 34, 20),
		flowBlock(domain.SectionIdentity, "Student Profile", 14, 34),
		flowBlock(domain.SectionIdentity, "Name: Asha", 14, 42),
		flowBlock(domain.SectionIdentity, "Class: 10-B", 14, 48),
		{Section: domain.SectionFooter, Content: "sunrise.example", X: 14, Y: 285, Rule: domain.PageRulePinned},
	}}

	expected := strings.Join([]string{
		"RankBoard Stamp",
		"",
		"Student Profile",
		"Name: Asha",
		"Class: 10-B",
		"",
		"----------",
		"sunrise.example",
		"",
	}, "\n")
	assert.Equal(t, expected, Render(doc, testConfig()))
}

func TestRender_ColumnsFromOffsets(t *testing.T) {
	doc := &domain.ReportDocument{Blocks: []domain.TextBlock{
		flowBlock(domain.SectionMasthead, "A", 14, 20),
		flowBlock(domain.SectionMasthead, "B", 24, 20),
	}}

	assert.Equal(t, "A    B\n", Render(doc, testConfig()))
}

func TestRender_CollidingBlocksKeepASpace(t *testing.T) {
	doc := &domain.ReportDocument{Blocks: []domain.TextBlock{
		flowBlock(domain.SectionMasthead, "a long header", 14, 20),
		flowBlock(domain.SectionMasthead, "stamp", 16, 20),
	}}

	assert.Equal(t, "a long header stamp\n", Render(doc, testConfig()))
}

func TestRender_EmptyFooterStillDrawsRule(t *testing.T) {
	doc := &domain.ReportDocument{Blocks: []domain.TextBlock{
		{Section: domain.SectionFooter, Content: "", X: 14, Y: 285, Rule: domain.PageRulePinned},
	}}

	assert.Equal(t, "----------\n\n", Render(doc, testConfig()))
}

func TestReporter_HandleComposedReport(t *testing.T) {
	layout := report.DefaultLayoutSettings()
	doc := report.Compose(report.Input{
		Student:     domain.Student{Name: "Asha", ClassOrCourse: "10-B"},
		Attendance:  &domain.AttendanceTally{TotalMarked: 10, PresentCount: 7},
		GeneratedAt: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
	}, layout)

	var buf bytes.Buffer
	require.NoError(t, NewReporter(&buf, PageConfigFromLayout(layout)).Handle(&doc))

	lines := strings.Split(buf.String(), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "RankBoard"))
	assert.True(t, strings.HasSuffix(lines[0], "Generated on: 2025-06-12"))
	assert.Equal(t, 68, strings.Index(lines[0], "Generated on:"))
	assert.Contains(t, lines, "Attendance 7/10 (70%)")
	assert.Contains(t, lines, "No guidance added")
	assert.Contains(t, lines, strings.Repeat("-", 90))
}
