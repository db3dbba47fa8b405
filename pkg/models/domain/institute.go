package domain

import "time"

type InstituteStatus string

const (
	InstituteActive   InstituteStatus = "active"
	InstituteDisabled InstituteStatus = "disabled"
)

func (s InstituteStatus) Valid() bool {
	return s == InstituteActive || s == InstituteDisabled
}

// BrandingConfig is tenant supplied header and footer text for reports.
type BrandingConfig struct {
	HeaderText string
	FooterText string
}

type Institute struct {
	ID        string
	Name      string
	Status    InstituteStatus
	Branding  BrandingConfig
	CreatedAt time.Time
}
