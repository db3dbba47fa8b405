package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/rankboard/pkg/models/store"
	sqlstore "github.com/de-tools/rankboard/pkg/store/sql"
)

type Store interface {
	Save(ctx context.Context, state store.MirrorState) error
	// Get returns nil when the institute was never mirrored
	Get(ctx context.Context, instituteID string) (*store.MirrorState, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Save(ctx context.Context, state store.MirrorState) error {
	query := `
		INSERT INTO mirror_state (institute_id, source, students, attendance, tests, mirrored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (institute_id) DO UPDATE SET
			source = excluded.source,
			students = excluded.students,
			attendance = excluded.attendance,
			tests = excluded.tests,
			mirrored_at = excluded.mirrored_at`

	args := []any{state.InstituteID, state.Source, state.Students, state.Attendance, state.Tests, state.MirroredAt}

	var err error
	if tx := sqlstore.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("failed to save mirror state: %w", err)
	}
	return nil
}

func (s *defaultStore) Get(ctx context.Context, instituteID string) (*store.MirrorState, error) {
	query := `
		SELECT institute_id, source, students, attendance, tests, mirrored_at
		FROM mirror_state
		WHERE institute_id = $1`

	var state store.MirrorState
	err := s.db.QueryRowContext(ctx, query, instituteID).Scan(
		&state.InstituteID, &state.Source, &state.Students, &state.Attendance, &state.Tests, &state.MirroredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query mirror state: %w", err)
	}
	return &state, nil
}
