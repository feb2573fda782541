// Package report groups airtime records by client and renders the monthly certificates.
package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the locale reports are rendered in when none is configured.
const DefaultLocale = "ru"

// monthNames is indexed like supportedLocales.
var monthNames = [][12]string{
	{
		"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
		"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
	},
	{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
}

var (
	supportedLocales = []language.Tag{language.Russian, language.English}
	localeMatcher    = language.NewMatcher(supportedLocales)
)

// Format carries the locale used for client ordering, month names and numbers.
// It is not safe for concurrent use.
type Format struct {
	Tag      language.Tag
	months   [12]string
	collator *collate.Collator
	printer  *message.Printer
}

// NewFormat creates a Format for a BCP 47 locale such as "ru" or "en-GB".
// Month names fall back to the closest supported language.
func NewFormat(locale string) (Format, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Format{}, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	_, idx, _ := localeMatcher.Match(tag)

	return Format{
		Tag:      tag,
		months:   monthNames[idx],
		collator: collate.New(tag),
		printer:  message.NewPrinter(tag),
	}, nil
}

// DefaultFormat returns the Russian format.
func DefaultFormat() Format {
	f, err := NewFormat(DefaultLocale)
	if err != nil {
		panic(err)
	}
	return f
}

// Compare orders two client names by the locale's collation.
func (f Format) Compare(a, b string) int {
	return f.collator.CompareString(a, b)
}

// MonthName returns the standalone month name.
func (f Format) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return f.months[m-1]
}

// MonthRange joins the distinct month names of from and to with ", ".
func (f Format) MonthRange(from, to time.Time) string {
	first, last := f.MonthName(from.Month()), f.MonthName(to.Month())
	if first == last {
		return first
	}
	return strings.Join([]string{first, last}, ", ")
}

// maxFractionDigits covers the tick resolution of clip durations.
const maxFractionDigits = 7

// Seconds renders a duration total such as "45 сек.".
func (f Format) Seconds(total float64) string {
	return f.printer.Sprint(number.Decimal(total, number.NoSeparator(), number.MaxFractionDigits(maxFractionDigits))) + " сек."
}
