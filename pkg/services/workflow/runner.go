package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/rankboard/pkg/models/store"
	"github.com/de-tools/rankboard/pkg/store/duckdb/mirror"
	"github.com/de-tools/rankboard/pkg/store/records"
	sqlstore "github.com/de-tools/rankboard/pkg/store/sql"
	"github.com/rs/zerolog"
)

type Stage string

const (
	StageInstitute  Stage = "institute"
	StageStudents   Stage = "students"
	StageAttendance Stage = "attendance"
	StageTests      Stage = "tests"
)

type RunnerProgress struct {
	Stage   Stage
	Records int
}

// Runner copies one institute from a record source into the embedded store.
// The previous mirror of the institute is replaced inside a single transaction.
type Runner struct {
	instituteID string
	sourceName  string
	source      records.Store
	db          *sql.DB
	target      records.Writer
	stateStore  mirror.Store
	now         func() time.Time
	done        chan struct{}
	progress    chan RunnerProgress
	err         error
}

func NewRunner(
	instituteID string,
	sourceName string,
	source records.Store,
	db *sql.DB,
	target records.Writer,
	stateStore mirror.Store,
) *Runner {
	return &Runner{
		instituteID: instituteID,
		sourceName:  sourceName,
		source:      source,
		db:          db,
		target:      target,
		stateStore:  stateStore,
		now:         time.Now,
		done:        make(chan struct{}),
		progress:    make(chan RunnerProgress, 4),
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress reports every written stage; it is buffered so Run never waits on a reader
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

// Err is the result of Run, valid once Done is closed
func (r *Runner) Err() error {
	<-r.done
	return r.err
}

func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	defer close(r.progress)
	logger := zerolog.Ctx(ctx).With().Str("institute", r.instituteID).Str("source", r.sourceName).Logger()

	r.err = r.run(logger.WithContext(ctx))
	if r.err != nil {
		logger.Error().Err(r.err).Msg("mirror failed")
		return r.err
	}
	logger.Info().Msg("mirror completed")
	return nil
}

func (r *Runner) run(ctx context.Context) error {
	institute, err := r.source.GetInstitute(ctx, r.instituteID)
	if err != nil {
		return fmt.Errorf("failed to read institute: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	students, err := r.source.ListStudents(ctx, r.instituteID)
	if err != nil {
		return fmt.Errorf("failed to read students: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	attendance, err := r.source.ListAttendance(ctx, r.instituteID)
	if err != nil {
		return fmt.Errorf("failed to read attendance: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tests, err := r.source.ListTests(ctx, r.instituteID)
	if err != nil {
		return fmt.Errorf("failed to read tests: %w", err)
	}

	// undated rows keep their source order once stored
	stampedAt := r.now()
	for i := range tests {
		if tests[i].CreatedAt.IsZero() {
			tests[i].CreatedAt = stampedAt.Add(time.Duration(i) * time.Microsecond)
		}
	}

	institute.ID = r.instituteID
	return sqlstore.RunInTransaction(ctx, r.db, func(ctx context.Context) error {
		if err := r.target.ClearInstitute(ctx, r.instituteID); err != nil {
			return err
		}
		if err := r.target.PutInstitute(ctx, institute); err != nil {
			return err
		}
		r.progress <- RunnerProgress{Stage: StageInstitute, Records: 1}

		if err := r.target.AddStudents(ctx, r.instituteID, students); err != nil {
			return err
		}
		r.progress <- RunnerProgress{Stage: StageStudents, Records: len(students)}

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.target.AddAttendance(ctx, r.instituteID, attendance); err != nil {
			return err
		}
		r.progress <- RunnerProgress{Stage: StageAttendance, Records: len(attendance)}

		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.target.AddTests(ctx, r.instituteID, tests); err != nil {
			return err
		}
		r.progress <- RunnerProgress{Stage: StageTests, Records: len(tests)}

		return r.stateStore.Save(ctx, store.MirrorState{
			InstituteID: r.instituteID,
			Source:      r.sourceName,
			Students:    len(students),
			Attendance:  len(attendance),
			Tests:       len(tests),
			MirroredAt:  r.now(),
		})
	})
}
