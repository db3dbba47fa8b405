package sql

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func setupMock(t *testing.T) (*recordStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	rw, err := NewRecordStore(db)
	require.NoError(t, err)

	s := rw.(*recordStore)
	s.now = func() time.Time { return created }
	return s, mock
}

func TestNewRecordStore_NilDB(t *testing.T) {
	_, err := NewRecordStore(nil)
	assert.Error(t, err)
}

func TestRecordStore_GetInstitute(t *testing.T) {
	ctx := context.Background()

	t.Run("with branding", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM institutes")).
			WithArgs("inst-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "header_text", "footer_text", "created_at"}).
				AddRow("inst-1", "Sunrise", "active", "Sunrise Academy", nil, created))

		inst, err := s.GetInstitute(ctx, "inst-1")

		require.NoError(t, err)
		assert.Equal(t, "Sunrise", inst.Name)
		require.NotNil(t, inst.Branding)
		assert.Equal(t, "Sunrise Academy", inst.Branding.HeaderText)
		assert.Equal(t, "", inst.Branding.FooterText)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM institutes")).
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetInstitute(ctx, "nope")

		assert.ErrorIs(t, err, domain.ErrInstituteNotFound)
	})
}

func TestRecordStore_ListStudents(t *testing.T) {
	s, mock := setupMock(t)
	columns := []string{
		"id", "name", "class_or_course",
		"fee_amount", "fee_next_due_date", "fee_status", "fee_updated_at",
		"guidance_text", "guidance_updated_at",
		"deleted", "created_at",
	}
	mock.ExpectQuery(regexp.QuoteMeta("FROM students")).
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("s1", "Asha", "10-B", "1500", "2025-07-01", "due", created, "Revise algebra", created, false, created).
			AddRow("s2", "Ravi", nil, nil, nil, nil, nil, nil, nil, true, created))

	students, err := s.ListStudents(context.Background(), "inst-1")

	require.NoError(t, err)
	require.Len(t, students, 2)
	require.NotNil(t, students[0].Fees)
	assert.Equal(t, "1500", students[0].Fees.Amount)
	assert.Equal(t, "due", students[0].Fees.Status)
	require.NotNil(t, students[0].FacultyGuidance)
	assert.Equal(t, "Revise algebra", students[0].FacultyGuidance.Text)
	assert.Nil(t, students[1].Fees)
	assert.Nil(t, students[1].FacultyGuidance)
	assert.True(t, students[1].Deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_ListTests_Ordered(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at, id")).
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "subject", "marks_obtained", "max_marks", "test_date", "created_at"}).
			AddRow("t1", "s1", "Math", 90.0, 100.0, "2025-06-01", created).
			AddRow("t2", "s1", "Science", 40.0, 100.0, nil, created.Add(time.Minute)))

	tests, err := s.ListTests(context.Background(), "inst-1")

	require.NoError(t, err)
	assert.Equal(t, []store.Test{
		{ID: "t1", StudentID: "s1", Subject: "Math", MarksObtained: 90, MaxMarks: 100, TestDate: "2025-06-01", CreatedAt: created},
		{ID: "t2", StudentID: "s1", Subject: "Science", MarksObtained: 40, MaxMarks: 100, CreatedAt: created.Add(time.Minute)},
	}, tests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_ListAttendance(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM attendance")).
		WithArgs("inst-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "attendance_date", "status", "marked_at"}).
			AddRow("a1", "s1", "2025-06-10", "present", created))

	marks, err := s.ListAttendance(context.Background(), "inst-1")

	require.NoError(t, err)
	assert.Equal(t, []store.Attendance{
		{ID: "a1", StudentID: "s1", Date: "2025-06-10", Status: "present", MarkedAt: created},
	}, marks)
}

func TestRecordStore_MarkAttendance(t *testing.T) {
	s, mock := setupMock(t)
	insert := regexp.QuoteMeta("INSERT INTO attendance")
	mock.ExpectExec(insert).
		WithArgs("inst-1", sqlmock.AnyArg(), "s1", "2025-06-10", "present", created).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).
		WithArgs("inst-1", sqlmock.AnyArg(), "s2", "2025-06-10", "absent", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.MarkAttendance(context.Background(), "inst-1", "2025-06-10",
		map[string]string{"s2": "absent", "s1": "present"}, created)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_AddTest(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tests")).
		WithArgs("inst-1", sqlmock.AnyArg(), "s1", "Math", 45.0, 50.0, "2025-06-10", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.AddTest(context.Background(), "inst-1", store.Test{
		StudentID: "s1", Subject: "Math", MarksObtained: 45, MaxMarks: 50, TestDate: "2025-06-10",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_SetFees(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults status to due", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE students")).
			WithArgs("inst-1", "s1", "1500", "2025-07-01", "due", created).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := s.SetFees(ctx, "inst-1", "s1", store.Fees{Amount: "1500", NextDueDate: "2025-07-01"})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown student", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE students")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.SetFees(ctx, "inst-1", "ghost", store.Fees{Amount: "1"})

		assert.ErrorIs(t, err, domain.ErrStudentNotFound)
	})
}

func TestRecordStore_SoftDeleteStudent(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectExec(regexp.QuoteMeta("SET deleted = TRUE")).
		WithArgs("inst-1", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.SoftDeleteStudent(context.Background(), "inst-1", "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_SetBranding_UnknownInstitute(t *testing.T) {
	s, mock := setupMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE institutes")).
		WithArgs("nope", "H", sql.NullString{}).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.SetBranding(context.Background(), "nope", store.Branding{HeaderText: "H"})

	assert.ErrorIs(t, err, domain.ErrInstituteNotFound)
}

func TestRecordStore_SetInstituteStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectExec(regexp.QuoteMeta("SET status = $2")).
			WithArgs("inst-1", "disabled").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.SetInstituteStatus(ctx, "inst-1", "disabled"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown institute", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectExec(regexp.QuoteMeta("SET status = $2")).
			WithArgs("nope", "active").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.SetInstituteStatus(ctx, "nope", "active")

		assert.ErrorIs(t, err, domain.ErrInstituteNotFound)
	})
}

func TestRunInTransaction(t *testing.T) {
	t.Run("commits and routes writes through the transaction", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tests")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendance")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := RunInTransaction(context.Background(), s.db, func(ctx context.Context) error {
			require.NotNil(t, GetTransaction(ctx))
			return s.ClearInstitute(ctx, "inst-1")
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		s, mock := setupMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tests")).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := RunInTransaction(context.Background(), s.db, func(ctx context.Context) error {
			return s.ClearInstitute(ctx, "inst-1")
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
