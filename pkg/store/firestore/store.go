package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/de-tools/rankboard/pkg/store/records"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	institutesCollection = "institutes"
	studentsCollection   = "students"
	attendanceCollection = "attendance"
	testsCollection      = "tests"
)

type Settings struct {
	ProjectID string
	// CredentialsFile is a service account key; empty uses application default credentials
	// or FIRESTORE_EMULATOR_HOST when set
	CredentialsFile string
}

func NewClient(ctx context.Context, settings Settings) (*firestore.Client, error) {
	var opts []option.ClientOption
	if settings.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(settings.CredentialsFile))
	}

	client, err := firestore.NewClient(ctx, settings.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

type recordStore struct {
	client *firestore.Client
	now    func() time.Time
}

// NewRecordStore serves institute records from institutes/{id} documents
// and their students, attendance and tests sub-collections
func NewRecordStore(client *firestore.Client) (records.ReadWriter, error) {
	if client == nil {
		return nil, fmt.Errorf("firestore client is nil")
	}
	return &recordStore{
		client: client,
		now:    time.Now,
	}, nil
}

func (s *recordStore) institute(instituteID string) *firestore.DocumentRef {
	return s.client.Collection(institutesCollection).Doc(instituteID)
}

func (s *recordStore) collection(instituteID, name string) *firestore.CollectionRef {
	return s.institute(instituteID).Collection(name)
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *recordStore) GetInstitute(ctx context.Context, instituteID string) (store.Institute, error) {
	snap, err := s.institute(instituteID).Get(ctx)
	if isNotFound(err) {
		return store.Institute{}, fmt.Errorf("institute %s: %w", instituteID, domain.ErrInstituteNotFound)
	}
	if err != nil {
		return store.Institute{}, fmt.Errorf("failed to get institute: %w", err)
	}

	var inst store.Institute
	if err := snap.DataTo(&inst); err != nil {
		return store.Institute{}, fmt.Errorf("failed to decode institute: %w", err)
	}
	inst.ID = snap.Ref.ID
	return inst, nil
}

// readAll decodes every document of a query, handing the document id to setID
func readAll[T any](ctx context.Context, query firestore.Query, setID func(*T, string)) ([]T, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	out := make([]T, 0)
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var item T
		if err := doc.DataTo(&item); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", doc.Ref.Path, err)
		}
		setID(&item, doc.Ref.ID)
		out = append(out, item)
	}
	return out, nil
}

func (s *recordStore) ListStudents(ctx context.Context, instituteID string) ([]store.Student, error) {
	students, err := readAll(ctx, s.collection(instituteID, studentsCollection).Query,
		func(st *store.Student, id string) { st.ID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (s *recordStore) ListAttendance(ctx context.Context, instituteID string) ([]store.Attendance, error) {
	marks, err := readAll(ctx, s.collection(instituteID, attendanceCollection).Query,
		func(a *store.Attendance, id string) { a.ID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return marks, nil
}

func (s *recordStore) ListTests(ctx context.Context, instituteID string) ([]store.Test, error) {
	query := s.collection(instituteID, testsCollection).OrderBy("createdAt", firestore.Asc)
	tests, err := readAll(ctx, query, func(t *store.Test, id string) { t.ID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	records.SortTests(tests)
	return tests, nil
}

func (s *recordStore) PutInstitute(ctx context.Context, institute store.Institute) error {
	if institute.Status == "" {
		institute.Status = string(domain.InstituteActive)
	}
	if institute.CreatedAt.IsZero() {
		institute.CreatedAt = s.now()
	}
	if _, err := s.institute(institute.ID).Set(ctx, institute); err != nil {
		return fmt.Errorf("failed to put institute: %w", err)
	}
	return nil
}

// setAll writes documents through a bulk writer and reports the first failure
func (s *recordStore) setAll(ctx context.Context, coll *firestore.CollectionRef, ids []string, docs []any) error {
	if len(docs) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for i, doc := range docs {
		ref := coll.NewDoc()
		if ids[i] != "" {
			ref = coll.Doc(ids[i])
		}
		job, err := bw.Set(ref, doc)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}

func (s *recordStore) AddStudents(ctx context.Context, instituteID string, students []store.Student) error {
	ids := make([]string, 0, len(students))
	docs := make([]any, 0, len(students))
	for _, st := range students {
		if st.CreatedAt.IsZero() {
			st.CreatedAt = s.now()
		}
		ids = append(ids, st.ID)
		docs = append(docs, st)
	}
	if err := s.setAll(ctx, s.collection(instituteID, studentsCollection), ids, docs); err != nil {
		return fmt.Errorf("failed to add students: %w", err)
	}
	return nil
}

func (s *recordStore) AddAttendance(ctx context.Context, instituteID string, marks []store.Attendance) error {
	ids := make([]string, 0, len(marks))
	docs := make([]any, 0, len(marks))
	for _, a := range marks {
		ids = append(ids, a.ID)
		docs = append(docs, a)
	}
	if err := s.setAll(ctx, s.collection(instituteID, attendanceCollection), ids, docs); err != nil {
		return fmt.Errorf("failed to add attendance: %w", err)
	}
	return nil
}

func (s *recordStore) AddTests(ctx context.Context, instituteID string, tests []store.Test) error {
	ids := make([]string, 0, len(tests))
	docs := make([]any, 0, len(tests))
	for _, t := range tests {
		ids = append(ids, t.ID)
		docs = append(docs, t)
	}
	if err := s.setAll(ctx, s.collection(instituteID, testsCollection), ids, docs); err != nil {
		return fmt.Errorf("failed to add tests: %w", err)
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
	if _, err := s.collection(instituteID, testsCollection).Doc(test.ID).Set(ctx, test); err != nil {
		return "", fmt.Errorf("failed to add test: %w", err)
	}
	return test.ID, nil
}

func (s *recordStore) updateStudent(ctx context.Context, instituteID, studentID string, updates []firestore.Update) error {
	_, err := s.collection(instituteID, studentsCollection).Doc(studentID).Update(ctx, updates)
	if isNotFound(err) {
		return fmt.Errorf("student %s: %w", studentID, domain.ErrStudentNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update student %s: %w", studentID, err)
	}
	return nil
}

func (s *recordStore) SetFees(ctx context.Context, instituteID, studentID string, fees store.Fees) error {
	if fees.Status == "" {
		fees.Status = string(domain.FeeStateDue)
	}
	if fees.UpdatedAt.IsZero() {
		fees.UpdatedAt = s.now()
	}
	return s.updateStudent(ctx, instituteID, studentID, []firestore.Update{{Path: "fees", Value: fees}})
}

func (s *recordStore) SetGuidance(ctx context.Context, instituteID, studentID string, guidance store.Guidance) error {
	if guidance.UpdatedAt.IsZero() {
		guidance.UpdatedAt = s.now()
	}
	return s.updateStudent(ctx, instituteID, studentID, []firestore.Update{{Path: "facultyGuidance", Value: guidance}})
}

func (s *recordStore) SoftDeleteStudent(ctx context.Context, instituteID, studentID string) error {
	return s.updateStudent(ctx, instituteID, studentID, []firestore.Update{{Path: "deleted", Value: true}})
}

// SetBranding merges into the institute document, creating it when missing
func (s *recordStore) SetBranding(ctx context.Context, instituteID string, branding store.Branding) error {
	data := map[string]any{"branding": branding}
	if _, err := s.institute(instituteID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update branding: %w", err)
	}
	return nil
}

func (s *recordStore) SetInstituteStatus(ctx context.Context, instituteID, status string) error {
	_, err := s.institute(instituteID).Update(ctx, []firestore.Update{{Path: "status", Value: status}})
	if isNotFound(err) {
		return fmt.Errorf("institute %s: %w", instituteID, domain.ErrInstituteNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update institute status: %w", err)
	}
	return nil
}

func (s *recordStore) ClearInstitute(ctx context.Context, instituteID string) error {
	for _, name := range []string{testsCollection, attendanceCollection, studentsCollection} {
		refs, err := s.collection(instituteID, name).DocumentRefs(ctx).GetAll()
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", name, err)
		}
		if len(refs) == 0 {
			continue
		}

		bw := s.client.BulkWriter(ctx)
		jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
		for _, ref := range refs {
			job, err := bw.Delete(ref)
			if err != nil {
				bw.End()
				return fmt.Errorf("failed to delete %s: %w", ref.Path, err)
			}
			jobs = append(jobs, job)
		}
		bw.End()
		for _, job := range jobs {
			if _, err := job.Results(); err != nil {
				return fmt.Errorf("failed to delete %s: %w", name, err)
			}
		}
	}
	return nil
}
