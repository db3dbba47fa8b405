package config

import (
	"context"
	"testing"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandingRegistry_Overlay(t *testing.T) {
	path := writeFile(t, "branding.ini", `[inst-1]
header_text = Sunrise Academy
footer_text = sunrise.example

[inst-2]
footer_text = Only the footer
`)
	registry, err := NewBrandingRegistry(path)
	require.NoError(t, err)

	stored := domain.BrandingConfig{HeaderText: "Stored Header", FooterText: "Stored Footer"}
	ctx := context.Background()

	assert.Equal(t,
		domain.BrandingConfig{HeaderText: "Sunrise Academy", FooterText: "sunrise.example"},
		registry.Overlay(ctx, "inst-1", stored))
	assert.Equal(t,
		domain.BrandingConfig{HeaderText: "Stored Header", FooterText: "Only the footer"},
		registry.Overlay(ctx, "inst-2", stored))
	assert.Equal(t, stored, registry.Overlay(ctx, "inst-3", stored))

	institutes, err := registry.GetInstitutes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"inst-1", "inst-2"}, institutes)
}

func TestBrandingRegistry_EmptyPath(t *testing.T) {
	registry, err := NewBrandingRegistry("")
	require.NoError(t, err)

	base := domain.BrandingConfig{HeaderText: "H"}
	assert.Equal(t, base, registry.Overlay(context.Background(), "any", base))
}

func TestBrandingRegistry_MissingFile(t *testing.T) {
	_, err := NewBrandingRegistry("/does/not/exist.ini")

	assert.Error(t, err)
}
