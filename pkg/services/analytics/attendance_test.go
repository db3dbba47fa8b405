package analytics

import (
	"testing"
	"time"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func markedLog(studentID string, statuses ...domain.AttendanceStatus) []domain.AttendanceRecord {
	records := make([]domain.AttendanceRecord, 0, len(statuses))
	for i, s := range statuses {
		records = append(records, domain.AttendanceRecord{
			StudentID: studentID,
			Date:      "2025-06-10",
			Status:    s,
			MarkedAt:  time.Date(2025, 6, 10, 9, i, 0, 0, time.UTC),
		})
	}
	return records
}

func TestTallyAttendance(t *testing.T) {
	t.Run("seven present out of ten", func(t *testing.T) {
		records := markedLog("s1",
			"present", "present", "absent", "present", "late",
			"present", "present", "absent", "present", "present",
		)

		tally := TallyAttendance(records, "s1")

		assert.Equal(t, domain.AttendanceTally{TotalMarked: 10, PresentCount: 7}, tally)
		assert.Equal(t, 70, AttendancePercentage(tally))
	})

	t.Run("other students are ignored", func(t *testing.T) {
		records := append(markedLog("s1", "present"), markedLog("s2", "present", "absent")...)

		assert.Equal(t, domain.AttendanceTally{TotalMarked: 1, PresentCount: 1}, TallyAttendance(records, "s1"))
		assert.Equal(t, domain.AttendanceTally{TotalMarked: 2, PresentCount: 1}, TallyAttendance(records, "s2"))
	})

	t.Run("duplicate marks for the same day all count", func(t *testing.T) {
		records := markedLog("s1", "present", "present", "absent")

		assert.Equal(t, 3, TallyAttendance(records, "s1").TotalMarked)
	})

	t.Run("unknown statuses count toward total only", func(t *testing.T) {
		records := markedLog("s1", "Present", "", "excused")

		assert.Equal(t, domain.AttendanceTally{TotalMarked: 3, PresentCount: 0}, TallyAttendance(records, "s1"))
	})

	t.Run("no records", func(t *testing.T) {
		tally := TallyAttendance(nil, "s1")

		assert.Equal(t, domain.AttendanceTally{}, tally)
		assert.Equal(t, 0, AttendancePercentage(tally))
	})
}

func TestTallyByStudent(t *testing.T) {
	records := append(markedLog("s1", "present", "absent"), markedLog("s2", "present")...)

	tallies := TallyByStudent(records)

	assert.Len(t, tallies, 2)
	assert.Equal(t, domain.AttendanceTally{TotalMarked: 2, PresentCount: 1}, tallies["s1"])
	assert.Equal(t, domain.AttendanceTally{TotalMarked: 1, PresentCount: 1}, tallies["s2"])
}

func TestTallyAttendance_OrderIndependent(t *testing.T) {
	records := markedLog("s1", "present", "absent", "present", "absent", "present")
	reversed := make([]domain.AttendanceRecord, len(records))
	for i := range records {
		reversed[len(records)-1-i] = records[i]
	}

	assert.Equal(t, TallyAttendance(records, "s1"), TallyAttendance(reversed, "s1"))
}

func TestAttendancePercentage_Rounding(t *testing.T) {
	tests := []struct {
		name  string
		tally domain.AttendanceTally
		want  int
	}{
		{"two thirds rounds up", domain.AttendanceTally{TotalMarked: 3, PresentCount: 2}, 67},
		{"one third rounds down", domain.AttendanceTally{TotalMarked: 3, PresentCount: 1}, 33},
		{"half rounds up", domain.AttendanceTally{TotalMarked: 8, PresentCount: 1}, 13},
		{"all present", domain.AttendanceTally{TotalMarked: 4, PresentCount: 4}, 100},
		{"nothing marked", domain.AttendanceTally{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttendancePercentage(tt.tally))
		})
	}
}
