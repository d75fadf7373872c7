package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily  = "Helvetica"
	chartImage  = "report-chart"
	cellPadding = 2.0
)

// Color is an RGB triple with 0-255 components.
type Color struct {
	R, G, B int
}

var (
	black      = Color{0, 0, 0}
	white      = Color{255, 255, 255}
	muted      = Color{110, 110, 110}
	ruleGray   = Color{180, 180, 180}
	borderGray = Color{200, 200, 200}
	stripe     = Color{245, 247, 250}
	shade      = Color{240, 244, 250}

	AccentBlue  = Color{41, 128, 185}
	AccentGreen = Color{39, 174, 96}
	AccentRed   = Color{192, 57, 43}
	TintGreen   = Color{223, 245, 230}
	TintRed     = Color{250, 226, 224}
)

// Builder owns the gofpdf document and a cursor over it. Everything drawn is
// also recorded as a Mark on the page it landed on.
type Builder struct {
	pdf    *gofpdf.Fpdf
	layout Layout
	tr     func(string) string
	y      float64

	marks map[int][]Mark
	// onPage runs after every page added while a table is being drawn.
	onPage func()
}

func NewBuilder(layout Layout) *Builder {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(layout.Margin, layout.ContentTop, layout.Margin)
	doc.SetAutoPageBreak(false, layout.PageHeight-layout.ContentBottom)

	b := &Builder{
		pdf:    doc,
		layout: layout,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		marks:  map[int][]Mark{},
	}
	b.pdf.AddPage()
	b.y = layout.ContentTop
	return b
}

func (b *Builder) mark(kind MarkKind, text string) {
	page := b.pdf.PageNo()
	b.marks[page] = append(b.marks[page], Mark{Kind: kind, Text: text})
}

func (b *Builder) font(style string, size float64, c Color) {
	b.pdf.SetFont(fontFamily, style, size)
	b.pdf.SetTextColor(c.R, c.G, c.B)
}

func (b *Builder) Y() float64 { return b.y }

func (b *Builder) SetY(y float64) { b.y = y }

func (b *Builder) Page() int { return b.pdf.PageNo() }

func (b *Builder) SetMetadata(title, subject string) {
	b.pdf.SetTitle(title, true)
	b.pdf.SetSubject(subject, true)
	b.pdf.SetCreator("reports", true)
}

// AddPage starts a new page and moves the cursor to the top of its content area.
func (b *Builder) AddPage() {
	b.pdf.AddPage()
	b.y = b.layout.ContentTop
	if b.onPage != nil {
		b.onPage()
	}
}

// NewPageIfNeeded adds a page when height no longer fits above the footer band.
func (b *Builder) NewPageIfNeeded(height float64) bool {
	if b.y+height <= b.layout.ContentBottom {
		return false
	}
	b.AddPage()
	return true
}

// DrawHeader prints the centred title and period on the first page.
func (b *Builder) DrawHeader(title, period string) {
	l := b.layout

	b.font("B", 16, black)
	b.pdf.SetXY(l.Margin, 12)
	b.pdf.CellFormat(l.ContentWidth(), 8, b.tr(title), "", 0, "C", false, 0, "")
	b.mark(MarkTitle, title)

	b.font("", l.BodyFontSize, muted)
	b.pdf.SetXY(l.Margin, 21)
	b.pdf.CellFormat(l.ContentWidth(), 6, b.tr(period), "", 0, "C", false, 0, "")
	b.mark(MarkPeriod, period)

	b.rule(l.HeaderRuleY)
	b.y = l.ContentTop
}

// DrawChart embeds a PNG below the header. The image is decoded and
// re-encoded first so a broken image is rejected before gofpdf sees it.
func (b *Builder) DrawChart(data []byte) error {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode chart image: %w", err)
	}
	rgba := image.NewNRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return fmt.Errorf("encode chart image: %w", err)
	}

	l := b.layout
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	b.pdf.RegisterImageOptionsReader(chartImage, opts, &buf)
	if b.pdf.Err() {
		return b.pdf.Error()
	}
	b.pdf.ImageOptions(chartImage, l.ChartX, l.ChartY, l.ChartWidth, l.ChartHeight, false, opts, 0, "")
	b.mark(MarkChart, "")
	return b.pdf.Error()
}

func (b *Builder) rule(y float64) {
	b.pdf.SetDrawColor(ruleGray.R, ruleGray.G, ruleGray.B)
	b.pdf.SetLineWidth(0.3)
	b.pdf.Line(b.layout.Margin, y, b.layout.PageWidth-b.layout.Margin, y)
}

// Heading prints a bold section title and advances the cursor past it.
func (b *Builder) Heading(text string) {
	b.NewPageIfNeeded(14)
	b.font("B", 12, black)
	b.pdf.SetXY(b.layout.Margin, b.y)
	b.pdf.CellFormat(b.layout.ContentWidth(), 6, b.tr(text), "", 0, "L", false, 0, "")
	b.mark(MarkSectionHeading, text)
	b.y += 8
}

// Placeholder prints the italic sentence used instead of an empty table.
func (b *Builder) Placeholder(text string) {
	b.NewPageIfNeeded(8)
	b.font("I", b.layout.BodyFontSize, muted)
	b.pdf.SetXY(b.layout.Margin, b.y)
	b.pdf.CellFormat(b.layout.ContentWidth(), 6, b.tr(text), "", 0, "L", false, 0, "")
	b.mark(MarkPlaceholder, text)
	b.y += 8
}

func (b *Builder) Bullet(text string) {
	b.NewPageIfNeeded(6)
	b.font("", b.layout.BodyFontSize, black)
	b.pdf.SetXY(b.layout.Margin+4, b.y)
	b.pdf.CellFormat(b.layout.ContentWidth()-4, 6, b.tr("• "+text), "", 0, "L", false, 0, "")
	b.mark(MarkBullet, text)
	b.y += 6
}

// NoData writes the single line shown for report types without a builder.
func (b *Builder) NoData(text string) {
	b.font("", 12, muted)
	b.pdf.SetXY(b.layout.Margin, b.layout.ContentTop+10)
	b.pdf.CellFormat(b.layout.ContentWidth(), 8, b.tr(text), "", 0, "C", false, 0, "")
	b.mark(MarkNoData, text)
}

type SummaryBox struct {
	Label string
	Value string
	Fill  *Color
}

// SummaryBoxes lays boxes side by side across the content width at y, on an
// optional shaded background, and moves the cursor below them.
func (b *Builder) SummaryBoxes(y, height float64, background *Color, boxes []SummaryBox) {
	if len(boxes) == 0 {
		return
	}
	l := b.layout
	b.y = y
	if b.NewPageIfNeeded(height) {
		y = b.y
	}

	if background != nil {
		b.pdf.SetFillColor(background.R, background.G, background.B)
		b.pdf.Rect(l.Margin, y, l.ContentWidth(), height, "F")
	}

	gap := 4.0
	width := (l.ContentWidth() - gap*float64(len(boxes)-1)) / float64(len(boxes))
	for i, box := range boxes {
		x := l.Margin + float64(i)*(width+gap)
		if box.Fill != nil {
			b.pdf.SetFillColor(box.Fill.R, box.Fill.G, box.Fill.B)
			b.pdf.Rect(x, y, width, height, "F")
		}

		b.font("", 9, muted)
		b.pdf.SetXY(x, y+height/2-6)
		b.pdf.CellFormat(width, 5, b.tr(box.Label), "", 0, "C", false, 0, "")

		b.font("B", 12, black)
		b.pdf.SetXY(x, y+height/2)
		b.pdf.CellFormat(width, 6, b.tr(box.Value), "", 0, "C", false, 0, "")

		b.mark(MarkSummaryBox, box.Label+": "+box.Value)
	}
	b.y = y + height
}

// fit shortens text with ".." until it fits in width.
func (b *Builder) fit(text string, width float64) string {
	text = b.tr(text)
	available := width - cellPadding
	if b.pdf.GetStringWidth(text) <= available {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && b.pdf.GetStringWidth(string(runes)+"..") > available {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ".."
}

// StylePages draws the border and both rules on every page that exists.
func (b *Builder) StylePages() {
	l := b.layout
	for page := 1; page <= b.pdf.PageCount(); page++ {
		b.pdf.SetPage(page)

		b.pdf.SetDrawColor(borderGray.R, borderGray.G, borderGray.B)
		b.pdf.SetLineWidth(0.4)
		b.pdf.Rect(l.BorderInset, l.BorderInset, l.PageWidth-2*l.BorderInset, l.PageHeight-2*l.BorderInset, "D")
		b.mark(MarkBorder, "")

		b.rule(l.HeaderRuleY)
		b.mark(MarkHeaderRule, "")

		b.rule(l.FooterRuleY)
		b.mark(MarkFooterRule, "")
	}
}

// StampFooters writes the page counter and the print stamp on every page.
func (b *Builder) StampFooters(printedAt string) {
	l := b.layout
	total := b.pdf.PageCount()
	for page := 1; page <= total; page++ {
		b.pdf.SetPage(page)
		b.font("", 8, muted)

		counter := fmt.Sprintf("Halaman %d dari %d", page, total)
		b.pdf.SetXY(l.Margin, l.FooterTextY)
		b.pdf.CellFormat(l.ContentWidth(), 5, b.tr(counter), "", 0, "C", false, 0, "")
		b.mark(MarkFooter, counter)

		stamp := "Dicetak pada: " + printedAt
		b.pdf.SetXY(l.Margin, l.FooterTextY)
		b.pdf.CellFormat(l.ContentWidth()/2, 5, b.tr(stamp), "", 0, "L", false, 0, "")
		b.mark(MarkPrintedAt, stamp)
	}
	b.pdf.SetPage(total)
}

// Finish serialises the document.
func (b *Builder) Finish() (*Document, error) {
	if b.pdf.Err() {
		return nil, b.pdf.Error()
	}

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	pages := make([]Page, 0, b.pdf.PageCount())
	for n := 1; n <= b.pdf.PageCount(); n++ {
		pages = append(pages, Page{Number: n, Marks: b.marks[n]})
	}
	return &Document{Bytes: buf.Bytes(), Pages: pages}, nil
}
