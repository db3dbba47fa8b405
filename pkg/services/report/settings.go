package report

// LayoutSettings contains the page geometry used to compose a report, in millimetres
type LayoutSettings struct {
	PageWidth       float64 `mapstructure:"page_width"`
	PageHeight      float64 `mapstructure:"page_height"`
	MarginLeft      float64 `mapstructure:"margin_left"`
	FirstRow        float64 `mapstructure:"first_row"`
	TimestampColumn float64 `mapstructure:"timestamp_column"`
	// FooterOffset is the fixed vertical position of the footer (default: 285)
	FooterOffset float64 `mapstructure:"footer_offset"`
	// WrapWidth is the width available to guidance text (default: 180)
	WrapWidth float64 `mapstructure:"wrap_width"`
	// CharWidth approximates the advance of one display column at body size
	CharWidth float64 `mapstructure:"char_width"`

	MastheadSize float64 `mapstructure:"masthead_size"`
	StampSize    float64 `mapstructure:"stamp_size"`
	HeadingSize  float64 `mapstructure:"heading_size"`
	BodySize     float64 `mapstructure:"body_size"`
	FooterSize   float64 `mapstructure:"footer_size"`

	// MastheadStep follows the masthead row
	MastheadStep float64 `mapstructure:"masthead_step"`
	// HeadingStep follows a section heading
	HeadingStep float64 `mapstructure:"heading_step"`
	// LineStep follows a body line
	LineStep float64 `mapstructure:"line_step"`
	// SectionStep follows the last line of a section
	SectionStep float64 `mapstructure:"section_step"`

	DateLayout string `mapstructure:"date_layout"`
}

// DefaultLayoutSettings returns an A4 portrait layout
func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		PageWidth:       210,
		PageHeight:      297,
		MarginLeft:      14,
		FirstRow:        20,
		TimestampColumn: 150,
		FooterOffset:    285,
		WrapWidth:       180,
		CharWidth:       2,
		MastheadSize:    16,
		StampSize:       10,
		HeadingSize:     13,
		BodySize:        11,
		FooterSize:      10,
		MastheadStep:    14,
		HeadingStep:     8,
		LineStep:        6,
		SectionStep:     10,
		DateLayout:      "2006-01-02",
	}
}

// WrapColumns is the number of display columns that fit in WrapWidth
func (s LayoutSettings) WrapColumns() int {
	if s.CharWidth <= 0 {
		return 0
	}
	return int(s.WrapWidth / s.CharWidth)
}
