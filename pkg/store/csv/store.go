package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/de-tools/rankboard/pkg/store/records"
	"github.com/google/uuid"
)

const (
	InstituteFile  = "institute.csv"
	StudentsFile   = "students.csv"
	AttendanceFile = "attendance.csv"
	TestsFile      = "tests.csv"
)

type recordStore struct {
	dir string
}

// NewRecordStore reads the records of one institute from a directory export.
// Files are read on every call. Rows without an id get one derived from
// their file and line, so repeated reads agree.
func NewRecordStore(dir string) (records.Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &recordStore{dir: dir}, nil
}

// row gives access to a record by header name
type row struct {
	file   string
	line   int
	fields map[string]string
}

func (r row) get(name string) string {
	return strings.TrimSpace(r.fields[name])
}

// raw keeps the field exactly as written, for labels that are matched verbatim
func (r row) raw(name string) string {
	return r.fields[name]
}

func (r row) id() string {
	if id := r.get("id"); id != "" {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:%d", r.file, r.line))).String()
}

func (r row) parseFloat(name string) (float64, error) {
	v := r.get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s line %d: invalid %s %q", r.file, r.line, name, v)
	}
	return f, nil
}

func (r row) parseBool(name string) (bool, error) {
	v := r.get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s line %d: invalid %s %q", r.file, r.line, name, v)
	}
	return b, nil
}

func (r row) parseTime(name string) (time.Time, error) {
	v := r.get(name)
	if v == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s line %d: invalid %s %q", r.file, r.line, name, v)
}

// readRows returns nil rows when the file does not exist
func (s *recordStore) readRows(name string) ([]row, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", name, err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				fields[col] = record[i]
			}
		}
		rows = append(rows, row{file: name, line: line, fields: fields})
	}
	return rows, nil
}

func (s *recordStore) GetInstitute(_ context.Context, instituteID string) (store.Institute, error) {
	rows, err := s.readRows(InstituteFile)
	if err != nil {
		return store.Institute{}, err
	}
	if rows == nil {
		return store.Institute{ID: instituteID, Name: instituteID, Status: string(domain.InstituteActive)}, nil
	}

	for _, r := range rows {
		if r.get("id") != instituteID {
			continue
		}
		inst := store.Institute{
			ID:     instituteID,
			Name:   r.get("name"),
			Status: r.get("status"),
		}
		if header, footer := r.get("header_text"), r.get("footer_text"); header != "" || footer != "" {
			inst.Branding = &store.Branding{HeaderText: header, FooterText: footer}
		}
		if inst.CreatedAt, err = r.parseTime("created_at"); err != nil {
			return store.Institute{}, err
		}
		return inst, nil
	}
	return store.Institute{}, fmt.Errorf("institute %s: %w", instituteID, domain.ErrInstituteNotFound)
}

func (s *recordStore) ListStudents(_ context.Context, _ string) ([]store.Student, error) {
	rows, err := s.readRows(StudentsFile)
	if err != nil {
		return nil, err
	}

	students := make([]store.Student, 0, len(rows))
	for _, r := range rows {
		st := store.Student{
			ID:            r.id(),
			Name:          r.get("name"),
			ClassOrCourse: r.get("class_or_course"),
		}
		if st.Deleted, err = r.parseBool("deleted"); err != nil {
			return nil, err
		}
		if st.CreatedAt, err = r.parseTime("created_at"); err != nil {
			return nil, err
		}
		if amount := r.get("fee_amount"); amount != "" {
			st.Fees = &store.Fees{
				Amount:      amount,
				NextDueDate: r.get("fee_next_due_date"),
				Status:      r.get("fee_status"),
			}
			if st.Fees.Status == "" {
				st.Fees.Status = string(domain.FeeStateDue)
			}
		}
		if text := r.get("guidance"); text != "" {
			st.FacultyGuidance = &store.Guidance{Text: text}
		}
		students = append(students, st)
	}
	return students, nil
}

func (s *recordStore) ListAttendance(_ context.Context, _ string) ([]store.Attendance, error) {
	rows, err := s.readRows(AttendanceFile)
	if err != nil {
		return nil, err
	}

	marks := make([]store.Attendance, 0, len(rows))
	for _, r := range rows {
		a := store.Attendance{
			ID:        r.id(),
			StudentID: r.get("student_id"),
			Date:      r.get("date"),
			Status:    r.get("status"),
		}
		if a.MarkedAt, err = r.parseTime("marked_at"); err != nil {
			return nil, err
		}
		marks = append(marks, a)
	}
	return marks, nil
}

func (s *recordStore) ListTests(_ context.Context, _ string) ([]store.Test, error) {
	rows, err := s.readRows(TestsFile)
	if err != nil {
		return nil, err
	}

	tests := make([]store.Test, 0, len(rows))
	undated := false
	for _, r := range rows {
		t := store.Test{
			ID:        r.id(),
			StudentID: r.get("student_id"),
			Subject:   r.raw("subject"),
			TestDate:  r.get("test_date"),
		}
		if t.MarksObtained, err = r.parseFloat("marks_obtained"); err != nil {
			return nil, err
		}
		if t.MaxMarks, err = r.parseFloat("max_marks"); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = r.parseTime("created_at"); err != nil {
			return nil, err
		}
		undated = undated || t.CreatedAt.IsZero()
		tests = append(tests, t)
	}
	// file order is insertion order unless every row is dated
	if !undated {
		records.SortTests(tests)
	}
	return tests, nil
}
