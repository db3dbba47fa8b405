package records

import (
	"slices"
	"time"

	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/google/uuid"
)

// NewMarks builds one attendance record per student for a marking action.
// Records are ordered by student id.
func NewMarks(date string, statuses map[string]string, markedAt time.Time) []store.Attendance {
	ids := make([]string, 0, len(statuses))
	for id := range statuses {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	marks := make([]store.Attendance, 0, len(ids))
	for _, id := range ids {
		marks = append(marks, store.Attendance{
			ID:        uuid.NewString(),
			StudentID: id,
			Date:      date,
			Status:    statuses[id],
			MarkedAt:  markedAt,
		})
	}
	return marks
}

// PrepareTest fills the id and creation time of a new test record
func PrepareTest(test store.Test, now time.Time) store.Test {
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	if test.CreatedAt.IsZero() {
		test.CreatedAt = now
	}
	return test
}

// SortTests orders tests by insertion: created_at ascending, id as tie-break
func SortTests(tests []store.Test) {
	slices.SortStableFunc(tests, func(a, b store.Test) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
