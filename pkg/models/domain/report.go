package domain

// Section identifies which part of a report a block belongs to
type Section string

const (
	SectionMasthead    Section = "masthead"
	SectionIdentity    Section = "identity"
	SectionPerformance Section = "performance"
	SectionTests       Section = "tests"
	SectionSubjects    Section = "subjects"
	SectionGuidance    Section = "guidance"
	SectionFooter      Section = "footer"
)

// PageRule tells a renderer how a block relates to the page boundary
type PageRule string

const (
	// PageRuleFlow blocks follow the vertical cursor.
	PageRuleFlow PageRule = "flow"
	// PageRulePinned blocks sit at a fixed offset whatever precedes them.
	PageRulePinned PageRule = "pinned"
)

// TextBlock is a single positioned line of text
type TextBlock struct {
	Section  Section
	Content  string
	X        float64
	Y        float64
	FontSize float64
	Rule     PageRule
}

// ReportDocument represents one printable page-stream
type ReportDocument struct {
	Title        string
	PageWidth    float64
	PageHeight   float64
	FooterOffset float64
	Blocks       []TextBlock
	// Overflowed is set when flowing content runs past the footer offset.
	// The page is not split.
	Overflowed bool
}

// Sections returns the distinct sections in emission order
func (d ReportDocument) Sections() []Section {
	var sections []Section
	seen := make(map[Section]bool)
	for _, b := range d.Blocks {
		if !seen[b.Section] {
			seen[b.Section] = true
			sections = append(sections, b.Section)
		}
	}
	return sections
}

// SectionBlocks returns the blocks of one section in emission order
func (d ReportDocument) SectionBlocks(section Section) []TextBlock {
	var blocks []TextBlock
	for _, b := range d.Blocks {
		if b.Section == section {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
