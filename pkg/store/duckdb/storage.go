package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	sqlstore "github.com/de-tools/rankboard/pkg/store/sql"
	"github.com/marcboeker/go-duckdb/v2"
)

type Settings struct {
	DbPath string
	// Threads defaults to 4
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	threads := settings.Threads
	if threads <= 0 {
		threads = 4
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=%d", settings.DbPath, threads), func(exec driver.ExecerContext) error {
		for _, query := range sqlstore.Schema {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}

	db := sql.OpenDB(c)
	return db, nil
}
