package weather

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Padding is the display width of the city and description columns.
const Padding = 20

// FormatLine renders one observation as a single summary line:
// centered city, glyph, centered description and the temperature in parentheses.
func FormatLine(obs Observation, units UnitSystem) string {
	var b strings.Builder
	b.WriteString(Center(obs.CityName, Padding))
	b.WriteString("\t")
	b.WriteString(Classify(obs.Code).Glyph())
	b.WriteString(" \t")
	b.WriteString(Center(Capitalize(obs.Description), Padding))
	b.WriteString(" (")
	b.WriteString(FormatTemperature(obs.Temperature))
	b.WriteString(units.Symbol())
	b.WriteString(")")
	return b.String()
}

// Center pads s with spaces to width display columns. When the padding is
// odd the extra space goes on the right. Strings already wider than width are
// returned unchanged.
func Center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	pad := width - w
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// Capitalize title-cases the first rune and lower-cases the rest, so
// digraphs and ß get their titlecase form ("ǅ", "Ss") rather than full upper case.
// Casers are stateful, so each call builds its own.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Title(language.Und).String(s[:size]) + cases.Lower(language.Und).String(s[size:])
}

// FormatTemperature prints an integer reading as an integer ("15") and any
// other number in its shortest decimal form with at least one fractional
// digit ("21.5", "1e2" -> "100.0"). Text that is not a number is returned as is.
func FormatTemperature(t json.Number) string {
	if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := strconv.ParseFloat(t.String(), 64)
	if err != nil {
		return t.String()
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
