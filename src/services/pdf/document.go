package pdf

import "strings"

type MarkKind string

const (
	MarkTitle          MarkKind = "title"
	MarkPeriod         MarkKind = "period"
	MarkChart          MarkKind = "chart"
	MarkSectionHeading MarkKind = "section-heading"
	MarkSummaryBox     MarkKind = "summary-box"
	MarkBullet         MarkKind = "bullet"
	MarkTableHeader    MarkKind = "table-header"
	MarkRow            MarkKind = "row"
	MarkContinuation   MarkKind = "continuation"
	MarkPlaceholder    MarkKind = "placeholder"
	MarkNoData         MarkKind = "no-data"
	MarkBorder         MarkKind = "border"
	MarkHeaderRule     MarkKind = "header-rule"
	MarkFooterRule     MarkKind = "footer-rule"
	MarkFooter         MarkKind = "footer"
	MarkPrintedAt      MarkKind = "printed-at"
)

// Mark records one drawing operation. Table rows carry their cells joined
// with " | ".
type Mark struct {
	Kind MarkKind
	Text string
}

type Page struct {
	Number int
	Marks  []Mark
}

// Find returns the marks of the given kind in drawing order.
func (p Page) Find(kind MarkKind) []Mark {
	var out []Mark
	for _, m := range p.Marks {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

func (p Page) Has(kind MarkKind) bool {
	return len(p.Find(kind)) > 0
}

// Contains reports whether a mark of kind has text containing substr.
func (p Page) Contains(kind MarkKind, substr string) bool {
	for _, m := range p.Find(kind) {
		if strings.Contains(m.Text, substr) {
			return true
		}
	}
	return false
}

// Document is a finished report: the PDF bytes plus what was drawn per page.
type Document struct {
	Bytes []byte
	Pages []Page
}

func (d *Document) PageCount() int {
	return len(d.Pages)
}
