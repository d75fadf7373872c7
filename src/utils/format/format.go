// Package format renders amounts, quantities and dates for a configured locale.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const Placeholder = "N/A"

var inputDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a formatter for a BCP 47 locale such as "id-ID".
func NewFormatter(locale, currencySymbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		symbol:  currencySymbol,
	}, nil
}

// MustFormatter is NewFormatter for locales known at compile time.
func MustFormatter(locale, currencySymbol string) *Formatter {
	f, err := NewFormatter(locale, currencySymbol)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Formatter) indonesian() bool {
	base, _ := f.tag.Base()
	return base.String() == "id"
}

// Currency rounds to whole units: Rp50.000, -Rp1.250.
func (f *Formatter) Currency(v decimal.Decimal) string {
	rounded := v.Round(0)
	out := f.symbol + f.printer.Sprintf("%d", rounded.Abs().IntPart())
	if rounded.IsNegative() {
		return "-" + out
	}
	return out
}

// Number groups an integer with the locale separator.
func (f *Formatter) Number(n int64) string {
	return f.printer.Sprintf("%d", n)
}

// Quantity prints whole quantities grouped and keeps fractional ones as-is.
func (f *Formatter) Quantity(v decimal.Decimal) string {
	if v.Equal(v.Truncate(0)) {
		return f.Number(v.IntPart())
	}
	return v.String()
}

// ParseDate accepts the date shapes the backend emits.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Date renders 02 Januari 2006 (id) or January 02, 2006. Empty input yields
// the placeholder and unparseable input is returned unchanged.
func (f *Formatter) Date(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	t, ok := ParseDate(value)
	if !ok {
		return value
	}
	return f.FormatTime(t)
}

func (f *Formatter) FormatTime(t time.Time) string {
	if f.indonesian() {
		return fmt.Sprintf("%02d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 02, 2006")
}

// Timestamp is the print stamp placed in document footers.
func (f *Formatter) Timestamp(t time.Time) string {
	return fmt.Sprintf("%s %s", f.FormatTime(t), t.Format("15:04"))
}
