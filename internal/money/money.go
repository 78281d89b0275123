// Package money formats amounts stored in minor currency units for display.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter converts minor units of a single currency into localized strings.
type Formatter struct {
	unit      currency.Unit
	scale     int
	printer   *message.Printer
	separator string // Decimal separator of the language
}

// NewFormatter returns a Formatter for an ISO 4217 currency code and a
// BCP 47 language tag.
func NewFormatter(code, lang string) (Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("%w: %s", ErrCurrencyInvalid, code)
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return Formatter{}, fmt.Errorf("%w: %s", ErrLanguageInvalid, lang)
	}

	scale, _ := currency.Standard.Rounding(unit)
	printer := message.NewPrinter(tag)

	separator := "."
	sample := printer.Sprint(number.Decimal(1.5, number.Scale(1)))
	if strings.HasPrefix(sample, "1") && strings.HasSuffix(sample, "5") {
		separator = sample[1 : len(sample)-1]
	}

	return Formatter{
		unit:      unit,
		scale:     scale,
		printer:   printer,
		separator: separator,
	}, nil
}

// Currency returns the ISO code of the formatter's currency.
func (f Formatter) Currency() string {
	return f.unit.String()
}

// Decimal converts an amount in minor units to major units.
func (f Formatter) Decimal(amount int64) decimal.Decimal {
	return decimal.New(amount, int32(-f.scale))
}

// Format renders the amount with locale grouping followed by the currency code,
// e.g. "1,234.56 USD". All digits are exact, no matter how large the amount.
func (f Formatter) Format(amount int64) string {
	d := f.Decimal(amount)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	s := sign + f.printer.Sprint(number.Decimal(whole.IntPart()))

	if f.scale > 0 {
		// "0.56" for a fraction of 56 hundredths
		fraction := d.Sub(whole).StringFixed(int32(f.scale))
		s += f.separator + fraction[strings.IndexByte(fraction, '.')+1:]
	}

	return fmt.Sprintf("%s %s", s, f.unit)
}
