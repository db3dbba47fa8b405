package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/services/report"
	"github.com/mattn/go-runewidth"
)

const (
	TextExtension   = ".txt"
	TextContentType = "text/plain; charset=utf-8"
)

// PageConfig maps page millimetres onto a fixed width text grid
type PageConfig struct {
	MarginLeft float64
	CharWidth  float64
	// GapAbove is the smallest row distance rendered as a blank line
	GapAbove  float64
	RuleWidth int
}

func PageConfigFromLayout(layout report.LayoutSettings) PageConfig {
	return PageConfig{
		MarginLeft: layout.MarginLeft,
		CharWidth:  layout.CharWidth,
		GapAbove:   layout.HeadingStep,
		RuleWidth:  layout.WrapColumns(),
	}
}

type Reporter struct {
	writer io.Writer
	config PageConfig
}

func NewReporter(writer io.Writer, config PageConfig) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: config,
	}
}

func (c *Reporter) Handle(doc *domain.ReportDocument) error {
	if _, err := io.WriteString(c.writer, Render(doc, c.config)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

type textRow struct {
	y      float64
	blocks []domain.TextBlock
}

// Render lays a document out as plain text. Flow blocks sharing a vertical
// offset form one line; pinned blocks follow a rule line at the end.
func Render(doc *domain.ReportDocument, config PageConfig) string {
	var flow, pinned []textRow
	for _, b := range doc.Blocks {
		if b.Rule == domain.PageRulePinned {
			pinned = appendRow(pinned, b)
		} else {
			flow = appendRow(flow, b)
		}
	}

	var sb strings.Builder
	for i, r := range flow {
		if i > 0 && r.y-flow[i-1].y > config.GapAbove {
			sb.WriteString("\n")
		}
		sb.WriteString(renderRow(r, config))
		sb.WriteString("\n")
	}

	if len(pinned) > 0 {
		if len(flow) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Repeat("-", config.RuleWidth))
		sb.WriteString("\n")
		for _, r := range pinned {
			sb.WriteString(renderRow(r, config))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func appendRow(rows []textRow, b domain.TextBlock) []textRow {
	if n := len(rows); n > 0 && rows[n-1].y == b.Y {
		rows[n-1].blocks = append(rows[n-1].blocks, b)
		return rows
	}
	return append(rows, textRow{y: b.Y, blocks: []domain.TextBlock{b}})
}

func (c PageConfig) column(x float64) int {
	if c.CharWidth <= 0 || x <= c.MarginLeft {
		return 0
	}
	return int(math.Round((x - c.MarginLeft) / c.CharWidth))
}

// renderRow keeps at least one space between blocks that would collide
func renderRow(r textRow, config PageConfig) string {
	var line string
	for i, b := range r.blocks {
		col := config.column(b.X)
		width := runewidth.StringWidth(line)
		if i > 0 && col <= width {
			col = width + 1
		}
		line = runewidth.FillRight(line, col) + b.Content
	}
	return strings.TrimRight(line, " ")
}
