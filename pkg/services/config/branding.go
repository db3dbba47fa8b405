package config

import (
	"context"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"gopkg.in/ini.v1"
)

type BrandingRegistry interface {
	GetInstitutes(ctx context.Context) ([]string, error)
	// Overlay replaces the fields of base that the institute's section sets
	Overlay(ctx context.Context, instituteID string, base domain.BrandingConfig) domain.BrandingConfig
}

type brandingRegistry struct {
	cfg *ini.File
}

// NewBrandingRegistry loads branding overrides from an ini file.
// An empty path yields a registry without overrides.
func NewBrandingRegistry(path string) (BrandingRegistry, error) {
	if path == "" {
		return &brandingRegistry{cfg: ini.Empty()}, nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &brandingRegistry{cfg: cfg}, nil
}

func (br *brandingRegistry) GetInstitutes(_ context.Context) ([]string, error) {
	var institutes []string
	for _, section := range br.cfg.Sections() {
		if len(section.Keys()) > 0 {
			institutes = append(institutes, section.Name())
		}
	}
	return institutes, nil
}

func (br *brandingRegistry) Overlay(_ context.Context, instituteID string, base domain.BrandingConfig) domain.BrandingConfig {
	section, err := br.cfg.GetSection(instituteID)
	if err != nil {
		return base
	}

	if key, err := section.GetKey("header_text"); err == nil && key.String() != "" {
		base.HeaderText = key.String()
	}
	if key, err := section.GetKey("footer_text"); err == nil && key.String() != "" {
		base.FooterText = key.String()
	}
	return base
}
