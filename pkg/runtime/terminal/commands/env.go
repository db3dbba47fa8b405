package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/rankboard/pkg/services/config"
	"github.com/de-tools/rankboard/pkg/services/institute"
	"github.com/de-tools/rankboard/pkg/services/registry"
	"github.com/de-tools/rankboard/pkg/store/artifact"
)

// Env is shared by every command. Config is filled in once flags are parsed.
type Env struct {
	Config    *config.Config
	Registry  registry.Registry
	Output    io.Writer
	Now       func() time.Time
	Institute string
}

// InstituteID prefers the --institute flag over the configured institute
func (e *Env) InstituteID() (string, error) {
	if e.Institute != "" {
		return e.Institute, nil
	}
	if e.Config != nil && e.Config.Institute != "" {
		return e.Config.Institute, nil
	}
	return "", fmt.Errorf("no institute given: use --institute or set institute in the config")
}

func (e *Env) OpenStore(ctx context.Context) (*registry.Source, error) {
	return e.Registry.Open(ctx, e.Config.Store)
}

func (e *Env) NewExplorer(source *registry.Source) (institute.Explorer, error) {
	branding, err := config.NewBrandingRegistry(e.Config.Branding.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load branding overrides: %w", err)
	}
	return institute.NewExplorer(source.Store, branding, institute.Settings{
		Insights: e.Config.Insights,
		Layout:   e.Config.Layout,
	}), nil
}

func (e *Env) NewSink(ctx context.Context) (artifact.Sink, error) {
	cfg := e.Config.Artifacts
	switch cfg.Sink {
	case config.ArtifactS3:
		return artifact.NewS3SinkFromSettings(ctx, artifact.S3Settings{
			Bucket:  cfg.Bucket,
			Prefix:  cfg.Prefix,
			Profile: cfg.Profile,
			Region:  cfg.Region,
		})
	default:
		return artifact.NewLocalSink(cfg.Dir), nil
	}
}

// withWriter opens the configured store and hands its write side to fn
func (e *Env) withWriter(ctx context.Context, fn func(source *registry.Source, instituteID string) error) error {
	instituteID, err := e.InstituteID()
	if err != nil {
		return err
	}
	source, err := e.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer source.Close()

	if _, err := source.Writable(); err != nil {
		return err
	}
	return fn(source, instituteID)
}
