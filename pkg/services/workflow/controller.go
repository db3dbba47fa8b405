package workflow

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/de-tools/rankboard/pkg/store/duckdb/mirror"
	"github.com/de-tools/rankboard/pkg/store/records"
)

type Controller interface {
	Start(ctx context.Context, instituteID string) error
	Cancel(ctx context.Context, instituteID string) error
	// Wait blocks until every started mirror finishes and returns the failures by institute
	Wait() map[string]error
}

type mirrorDescriptor struct {
	cancelFunc context.CancelFunc
	runner     *Runner
}

type DefaultController struct {
	sourceName string
	source     records.Store
	db         *sql.DB
	target     records.Writer
	stateStore mirror.Store

	mu      sync.Mutex
	mirrors map[string]mirrorDescriptor
}

func NewController(
	sourceName string,
	source records.Store,
	db *sql.DB,
	target records.Writer,
	stateStore mirror.Store,
) *DefaultController {
	return &DefaultController{
		sourceName: sourceName,
		source:     source,
		db:         db,
		target:     target,
		stateStore: stateStore,
		mirrors:    make(map[string]mirrorDescriptor),
	}
}

func (ctrl *DefaultController) Start(ctx context.Context, instituteID string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if desc, ok := ctrl.mirrors[instituteID]; ok {
		select {
		case <-desc.runner.Done():
		default:
			return fmt.Errorf("mirror already running: %s", instituteID)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	runner := NewRunner(instituteID, ctrl.sourceName, ctrl.source, ctrl.db, ctrl.target, ctrl.stateStore)
	ctrl.mirrors[instituteID] = mirrorDescriptor{
		cancelFunc: cancel,
		runner:     runner,
	}

	go func() {
		defer cancel()
		_ = runner.Run(ctx)
	}()
	return nil
}

func (ctrl *DefaultController) Cancel(_ context.Context, instituteID string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.mirrors[instituteID]
	if !ok {
		return fmt.Errorf("mirror not running: %s", instituteID)
	}
	desc.cancelFunc()
	<-desc.runner.Done()

	delete(ctrl.mirrors, instituteID)
	return nil
}

func (ctrl *DefaultController) Wait() map[string]error {
	ctrl.mu.Lock()
	runners := make(map[string]*Runner, len(ctrl.mirrors))
	for id, desc := range ctrl.mirrors {
		runners[id] = desc.runner
	}
	ctrl.mu.Unlock()

	failures := make(map[string]error)
	for id, runner := range runners {
		if err := runner.Err(); err != nil {
			failures[id] = err
		}
	}
	return failures
}
