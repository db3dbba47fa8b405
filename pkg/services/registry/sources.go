package registry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/rankboard/pkg/services/config"
	csvstore "github.com/de-tools/rankboard/pkg/store/csv"
	"github.com/de-tools/rankboard/pkg/store/duckdb"
	fsstore "github.com/de-tools/rankboard/pkg/store/firestore"
	"github.com/de-tools/rankboard/pkg/store/postgres"
	sqlstore "github.com/de-tools/rankboard/pkg/store/sql"
	"github.com/rs/zerolog"
)

func sqlSource(db *sql.DB) (*Source, error) {
	rw, err := sqlstore.NewRecordStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Source{Store: rw, Writer: rw, DB: db, close: db.Close}, nil
}

func OpenDuckDB(ctx context.Context, cfg config.StoreConfig) (*Source, error) {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Path})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("path", cfg.Path).Msg("opened duckdb store")
	return sqlSource(db)
}

func OpenPostgres(ctx context.Context, cfg config.StoreConfig) (*Source, error) {
	db, err := postgres.NewDB(ctx, postgres.Settings{DSN: cfg.DSN})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Msg("opened postgres store")
	return sqlSource(db)
}

func OpenFirestore(ctx context.Context, cfg config.StoreConfig) (*Source, error) {
	if cfg.Project == "" {
		return nil, fmt.Errorf("firestore project is empty")
	}
	client, err := fsstore.NewClient(ctx, fsstore.Settings{
		ProjectID:       cfg.Project,
		CredentialsFile: cfg.Credentials,
	})
	if err != nil {
		return nil, err
	}
	rw, err := fsstore.NewRecordStore(client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("project", cfg.Project).Msg("opened firestore store")
	return &Source{Store: rw, Writer: rw, close: client.Close}, nil
}

// OpenCSV opens a directory export. It has no write side.
func OpenCSV(ctx context.Context, cfg config.StoreConfig) (*Source, error) {
	s, err := csvstore.NewRecordStore(cfg.Path)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("dir", cfg.Path).Msg("opened csv store")
	return &Source{Store: s}, nil
}
