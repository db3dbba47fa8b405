package api

type TextBlock struct {
	Section  string  `json:"section"`
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
	Rule     string  `json:"rule"`
}

type ReportDocument struct {
	Title        string      `json:"title"`
	PageWidth    float64     `json:"page_width"`
	PageHeight   float64     `json:"page_height"`
	FooterOffset float64     `json:"footer_offset"`
	Overflowed   bool        `json:"overflowed"`
	Blocks       []TextBlock `json:"blocks"`
}
