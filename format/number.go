// Package format renders chart values the way the dashboard displays them:
// locale-aware digit grouping, currency prefixes and unit suffixes.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxFractionDigits matches the browser's default toLocaleString behaviour.
const maxFractionDigits = 3

// Formatter formats numbers for one locale. The zero value is not usable; use New.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Formatter for the given BCP 47 locale. Unknown locales fall back to English.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// Default is the English formatter.
func Default() *Formatter { return New("en") }

// Locale returns the resolved locale tag.
func (f *Formatter) Locale() string { return f.tag.String() }

// Number groups thousands and keeps at most three fraction digits.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(maxFractionDigits)))
}

// Decorate wraps a formatted number with an optional currency prefix and unit suffix.
func (f *Formatter) Decorate(currency string, v float64, unit string) string {
	return currency + f.Number(v) + unit
}

// Percent renders a share in [0,1] as a rounded whole percentage, e.g. 0.404 → "40%".
func (f *Formatter) Percent(share float64) string {
	if math.IsNaN(share) || math.IsInf(share, 0) {
		share = 0
	}
	return f.printer.Sprintf("%d%%", int(math.Round(share*100)))
}
