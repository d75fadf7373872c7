package pdf

import "strings"

type Column struct {
	Header string
	Width  float64
	Align  string
}

type Table struct {
	Columns []Column
	Rows    [][]string
	Accent  Color
	// Caption is reprinted in the top margin of every page after the first
	// that the table touches.
	Caption string
}

// DrawTable renders t starting at startY and returns the cursor below the
// last row. Rows that do not fit move to a new page where the header row is
// repeated.
func (b *Builder) DrawTable(t Table, startY float64) float64 {
	l := b.layout
	b.y = startY

	captioned := map[int]bool{}
	pageHook := func() {
		page := b.pdf.PageNo()
		if page <= 1 || t.Caption == "" || captioned[page] {
			return
		}
		captioned[page] = true
		b.font("I", 9, muted)
		b.pdf.SetXY(l.Margin, l.ContentTop-7)
		b.pdf.CellFormat(l.ContentWidth(), 5, b.tr(t.Caption), "", 0, "L", false, 0, "")
		b.mark(MarkContinuation, t.Caption)
	}

	b.onPage = pageHook
	defer func() { b.onPage = nil }()

	if !b.NewPageIfNeeded(l.HeaderRowHeight + l.RowHeight) {
		pageHook()
	}
	b.tableHeader(t)

	for i, row := range t.Rows {
		if b.NewPageIfNeeded(l.RowHeight) {
			b.tableHeader(t)
		}
		b.tableRow(t, row, i%2 == 1)
	}
	return b.y
}

// DrawTableChunks renders rows in chunks of size, each chunk on a page of its
// own, and returns the cursor below the last chunk.
func (b *Builder) DrawTableChunks(t Table, size int) float64 {
	if size <= 0 {
		size = len(t.Rows)
	}
	for start := 0; start < len(t.Rows); start += size {
		end := start + size
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		chunk := t
		chunk.Rows = t.Rows[start:end]

		b.AddPage()
		b.DrawTable(chunk, b.layout.ContentTop)
	}
	return b.y
}

func (b *Builder) tableHeader(t Table) {
	l := b.layout
	b.pdf.SetFillColor(t.Accent.R, t.Accent.G, t.Accent.B)
	b.font("B", l.CellFontSize, white)

	x := l.Margin
	headers := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		b.pdf.SetXY(x, b.y)
		b.pdf.CellFormat(col.Width, l.HeaderRowHeight, b.fit(col.Header, col.Width), "", 0, "C", true, 0, "")
		x += col.Width
		headers = append(headers, col.Header)
	}
	b.mark(MarkTableHeader, strings.Join(headers, " | "))
	b.y += l.HeaderRowHeight
}

func (b *Builder) tableRow(t Table, cells []string, striped bool) {
	l := b.layout
	fill := white
	if striped {
		fill = stripe
	}
	b.pdf.SetFillColor(fill.R, fill.G, fill.B)
	b.font("", l.CellFontSize, black)

	x := l.Margin
	for i, col := range t.Columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		align := col.Align
		if align == "" {
			align = "L"
		}
		b.pdf.SetXY(x, b.y)
		b.pdf.CellFormat(col.Width, l.RowHeight, b.fit(text, col.Width), "", 0, align, true, 0, "")
		x += col.Width
	}
	b.mark(MarkRow, strings.Join(cells, " | "))
	b.y += l.RowHeight
}
