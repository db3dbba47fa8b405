package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/de-tools/rankboard/pkg/store/records"
	"github.com/rs/zerolog"
)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type recordStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewRecordStore serves institute records from any database/sql connection
// whose driver accepts $n placeholders
func NewRecordStore(db *sql.DB) (records.ReadWriter, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{
		db:  db,
		now: time.Now,
	}, nil
}

func (s *recordStore) conn(ctx context.Context) querier {
	if tx := GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close record rows")
	}
}

func (s *recordStore) GetInstitute(ctx context.Context, instituteID string) (store.Institute, error) {
	query := `
		SELECT id, name, status, header_text, footer_text, created_at
		FROM institutes
		WHERE id = $1`

	var (
		inst           store.Institute
		header, footer sql.NullString
	)
	err := s.conn(ctx).QueryRowContext(ctx, query, instituteID).
		Scan(&inst.ID, &inst.Name, &inst.Status, &header, &footer, &inst.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Institute{}, fmt.Errorf("institute %s: %w", instituteID, domain.ErrInstituteNotFound)
	}
	if err != nil {
		return store.Institute{}, fmt.Errorf("failed to query institute: %w", err)
	}

	if header.String != "" || footer.String != "" {
		inst.Branding = &store.Branding{HeaderText: header.String, FooterText: footer.String}
	}
	return inst, nil
}

func (s *recordStore) ListStudents(ctx context.Context, instituteID string) ([]store.Student, error) {
	query := `
		SELECT id, name, class_or_course,
			fee_amount, fee_next_due_date, fee_status, fee_updated_at,
			guidance_text, guidance_updated_at,
			deleted, created_at
		FROM students
		WHERE institute_id = $1
		ORDER BY created_at, id`

	rows, err := s.conn(ctx).QueryContext(ctx, query, instituteID)
	if err != nil {
		return nil, fmt.Errorf("students query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	students := make([]store.Student, 0)
	for rows.Next() {
		var (
			st                              store.Student
			class                           sql.NullString
			feeAmount, feeDue, feeStatus    sql.NullString
			guidanceText                    sql.NullString
			feeUpdatedAt, guidanceUpdatedAt sql.NullTime
		)
		if err := rows.Scan(
			&st.ID, &st.Name, &class,
			&feeAmount, &feeDue, &feeStatus, &feeUpdatedAt,
			&guidanceText, &guidanceUpdatedAt,
			&st.Deleted, &st.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}

		st.ClassOrCourse = class.String
		if feeStatus.Valid {
			st.Fees = &store.Fees{
				Amount:      feeAmount.String,
				NextDueDate: feeDue.String,
				Status:      feeStatus.String,
				UpdatedAt:   feeUpdatedAt.Time,
			}
		}
		if guidanceText.Valid {
			st.FacultyGuidance = &store.Guidance{
				Text:      guidanceText.String,
				UpdatedAt: guidanceUpdatedAt.Time,
			}
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read students: %w", err)
	}
	return students, nil
}

func (s *recordStore) ListAttendance(ctx context.Context, instituteID string) ([]store.Attendance, error) {
	query := `
		SELECT id, student_id, attendance_date, status, marked_at
		FROM attendance
		WHERE institute_id = $1
		ORDER BY marked_at, id`

	rows, err := s.conn(ctx).QueryContext(ctx, query, instituteID)
	if err != nil {
		return nil, fmt.Errorf("attendance query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	marks := make([]store.Attendance, 0)
	for rows.Next() {
		var a store.Attendance
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Date, &a.Status, &a.MarkedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		marks = append(marks, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance: %w", err)
	}
	return marks, nil
}

func (s *recordStore) ListTests(ctx context.Context, instituteID string) ([]store.Test, error) {
	query := `
		SELECT id, student_id, subject, marks_obtained, max_marks, test_date, created_at
		FROM tests
		WHERE institute_id = $1
		ORDER BY created_at, id`

	rows, err := s.conn(ctx).QueryContext(ctx, query, instituteID)
	if err != nil {
		return nil, fmt.Errorf("tests query failed: %w", err)
	}
	defer closeRows(ctx, rows)

	tests := make([]store.Test, 0)
	for rows.Next() {
		var (
			t        store.Test
			testDate sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.StudentID, &t.Subject, &t.MarksObtained, &t.MaxMarks, &testDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan test: %w", err)
		}
		t.TestDate = testDate.String
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tests: %w", err)
	}
	return tests, nil
}

func (s *recordStore) PutInstitute(ctx context.Context, institute store.Institute) error {
	query := `
		INSERT INTO institutes (id, name, status, header_text, footer_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			status = excluded.status,
			header_text = excluded.header_text,
			footer_text = excluded.footer_text`

	var header, footer sql.NullString
	if institute.Branding != nil {
		header = nullString(institute.Branding.HeaderText)
		footer = nullString(institute.Branding.FooterText)
	}
	status := institute.Status
	if status == "" {
		status = string(domain.InstituteActive)
	}
	createdAt := institute.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	if _, err := s.conn(ctx).ExecContext(ctx, query,
		institute.ID, institute.Name, status, header, footer, createdAt,
	); err != nil {
		return fmt.Errorf("failed to upsert institute: %w", err)
	}
	return nil
}

func (s *recordStore) AddStudents(ctx context.Context, instituteID string, students []store.Student) error {
	query := `
		INSERT INTO students (
			institute_id, id, name, class_or_course,
			fee_amount, fee_next_due_date, fee_status, fee_updated_at,
			guidance_text, guidance_updated_at,
			deleted, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	for _, st := range students {
		var (
			feeAmount, feeDue, feeStatus, guidanceText sql.NullString
			feeUpdatedAt, guidanceUpdatedAt            sql.NullTime
		)
		if st.Fees != nil {
			feeAmount = sql.NullString{String: st.Fees.Amount, Valid: true}
			feeDue = sql.NullString{String: st.Fees.NextDueDate, Valid: true}
			feeStatus = sql.NullString{String: st.Fees.Status, Valid: true}
			feeUpdatedAt = nullTime(st.Fees.UpdatedAt)
		}
		if st.FacultyGuidance != nil {
			guidanceText = sql.NullString{String: st.FacultyGuidance.Text, Valid: true}
			guidanceUpdatedAt = nullTime(st.FacultyGuidance.UpdatedAt)
		}
		createdAt := st.CreatedAt
		if createdAt.IsZero() {
			createdAt = s.now()
		}

		if _, err := s.conn(ctx).ExecContext(ctx, query,
			instituteID, st.ID, st.Name, st.ClassOrCourse,
			feeAmount, feeDue, feeStatus, feeUpdatedAt,
			guidanceText, guidanceUpdatedAt,
			st.Deleted, createdAt,
		); err != nil {
			return fmt.Errorf("failed to insert student %s: %w", st.ID, err)
		}
	}
	return nil
}

func (s *recordStore) AddAttendance(ctx context.Context, instituteID string, marks []store.Attendance) error {
	query := `
		INSERT INTO attendance (institute_id, id, student_id, attendance_date, status, marked_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, a := range marks {
		if _, err := s.conn(ctx).ExecContext(ctx, query,
			instituteID, a.ID, a.StudentID, a.Date, a.Status, a.MarkedAt,
		); err != nil {
			return fmt.Errorf("failed to insert attendance %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *recordStore) AddTests(ctx context.Context, instituteID string, tests []store.Test) error {
	query := `
		INSERT INTO tests (institute_id, id, student_id, subject, marks_obtained, max_marks, test_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, t := range tests {
		if _, err := s.conn(ctx).ExecContext(ctx, query,
			instituteID, t.ID, t.StudentID, t.Subject, t.MarksObtained, t.MaxMarks, t.TestDate, t.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert test %s: %w", t.ID, err)
		}
	}
	return nil
}

func (s *recordStore) MarkAttendance(
	ctx context.Context,
	instituteID string,
	date string,
	statuses map[string]string,
	markedAt time.Time,
) error {
	return s.AddAttendance(ctx, instituteID, records.NewMarks(date, statuses, markedAt))
}

func (s *recordStore) AddTest(ctx context.Context, instituteID string, test store.Test) (string, error) {
	test = records.PrepareTest(test, s.now())
	if err := s.AddTests(ctx, instituteID, []store.Test{test}); err != nil {
		return "", err
	}
	return test.ID, nil
}

func (s *recordStore) SetFees(ctx context.Context, instituteID, studentID string, fees store.Fees) error {
	if fees.Status == "" {
		fees.Status = string(domain.FeeStateDue)
	}
	if fees.UpdatedAt.IsZero() {
		fees.UpdatedAt = s.now()
	}
	query := `
		UPDATE students
		SET fee_amount = $3, fee_next_due_date = $4, fee_status = $5, fee_updated_at = $6
		WHERE institute_id = $1 AND id = $2`

	return s.updateStudent(ctx, query, instituteID, studentID,
		fees.Amount, fees.NextDueDate, fees.Status, fees.UpdatedAt)
}

func (s *recordStore) SetGuidance(ctx context.Context, instituteID, studentID string, guidance store.Guidance) error {
	if guidance.UpdatedAt.IsZero() {
		guidance.UpdatedAt = s.now()
	}
	query := `
		UPDATE students
		SET guidance_text = $3, guidance_updated_at = $4
		WHERE institute_id = $1 AND id = $2`

	return s.updateStudent(ctx, query, instituteID, studentID, guidance.Text, guidance.UpdatedAt)
}

func (s *recordStore) SoftDeleteStudent(ctx context.Context, instituteID, studentID string) error {
	query := `
		UPDATE students
		SET deleted = TRUE
		WHERE institute_id = $1 AND id = $2`

	return s.updateStudent(ctx, query, instituteID, studentID)
}

func (s *recordStore) updateStudent(ctx context.Context, query, instituteID, studentID string, args ...any) error {
	res, err := s.conn(ctx).ExecContext(ctx, query, append([]any{instituteID, studentID}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", studentID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", studentID, err)
	}
	if n == 0 {
		return fmt.Errorf("student %s: %w", studentID, domain.ErrStudentNotFound)
	}
	return nil
}

func (s *recordStore) SetBranding(ctx context.Context, instituteID string, branding store.Branding) error {
	query := `
		UPDATE institutes
		SET header_text = $2, footer_text = $3
		WHERE id = $1`

	res, err := s.conn(ctx).ExecContext(ctx, query,
		instituteID, nullString(branding.HeaderText), nullString(branding.FooterText))
	if err != nil {
		return fmt.Errorf("failed to update branding: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update branding: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("institute %s: %w", instituteID, domain.ErrInstituteNotFound)
	}
	return nil
}

func (s *recordStore) SetInstituteStatus(ctx context.Context, instituteID, status string) error {
	query := `
		UPDATE institutes
		SET status = $2
		WHERE id = $1`

	res, err := s.conn(ctx).ExecContext(ctx, query, instituteID, status)
	if err != nil {
		return fmt.Errorf("failed to update institute status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update institute status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("institute %s: %w", instituteID, domain.ErrInstituteNotFound)
	}
	return nil
}

func (s *recordStore) ClearInstitute(ctx context.Context, instituteID string) error {
	for _, query := range []string{
		`DELETE FROM tests WHERE institute_id = $1`,
		`DELETE FROM attendance WHERE institute_id = $1`,
		`DELETE FROM students WHERE institute_id = $1`,
	} {
		if _, err := s.conn(ctx).ExecContext(ctx, query, instituteID); err != nil {
			return fmt.Errorf("failed to delete institute records: %w", err)
		}
	}
	return nil
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullTime(v time.Time) sql.NullTime {
	return sql.NullTime{Time: v, Valid: !v.IsZero()}
}
