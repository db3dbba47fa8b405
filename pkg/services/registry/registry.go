package registry

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/config"
	"github.com/de-tools/rankboard/pkg/store/records"
)

// Source is an opened record backend
type Source struct {
	Driver config.StoreDriver
	Store  records.Store
	// Writer is nil for read-only backends
	Writer records.Writer
	// DB is set for the SQL backends
	DB    *sql.DB
	close func() error
}

// Writable returns the write side or ErrReadOnlySource
func (s *Source) Writable() (records.Writer, error) {
	if s.Writer == nil {
		return nil, fmt.Errorf("%s: %w", s.Driver, domain.ErrReadOnlySource)
	}
	return s.Writer, nil
}

func (s *Source) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// SourceFactory opens a backend from its store configuration
type SourceFactory func(ctx context.Context, cfg config.StoreConfig) (*Source, error)

// Registry manages record backend factories
type Registry interface {
	// Register adds a new backend factory
	Register(driver config.StoreDriver, factory SourceFactory) error
	// Open instantiates the backend named by cfg.Driver
	Open(ctx context.Context, cfg config.StoreConfig) (*Source, error)
	// ListDrivers returns the registered drivers in name order
	ListDrivers() []config.StoreDriver
}

type registry struct {
	mu        sync.RWMutex
	factories map[config.StoreDriver]SourceFactory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[config.StoreDriver]SourceFactory),
	}
}

// NewDefaultRegistry knows every backend shipped with rankboard
func NewDefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(config.StoreDuckDB, OpenDuckDB)
	_ = r.Register(config.StorePostgres, OpenPostgres)
	_ = r.Register(config.StoreFirestore, OpenFirestore)
	_ = r.Register(config.StoreCSV, OpenCSV)
	return r
}

func (r *registry) Register(driver config.StoreDriver, factory SourceFactory) error {
	if driver == "" {
		return fmt.Errorf("driver name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[driver]; exists {
		return fmt.Errorf("driver %q is already registered", driver)
	}

	r.factories[driver] = factory
	return nil
}

func (r *registry) Open(ctx context.Context, cfg config.StoreConfig) (*Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[cfg.Driver]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("driver %q: %w", cfg.Driver, domain.ErrUnsupportedSource)
	}

	source, err := factory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Driver, err)
	}
	source.Driver = cfg.Driver
	return source, nil
}

func (r *registry) ListDrivers() []config.StoreDriver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]config.StoreDriver, 0, len(r.factories))
	for driver := range r.factories {
		drivers = append(drivers, driver)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i] < drivers[j] })
	return drivers
}
