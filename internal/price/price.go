// Package price converts between localized display prices and whole
// currency amounts. Fractional amounts do not exist in this domain.
package price

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/nikolayk812/morpho-cart/internal/domain"
)

const (
	persianZero     = '\u06F0'
	arabicIndicZero = '\u0660'
)

var digitMapper = runes.Map(func(r rune) rune {
	switch {
	case r >= persianZero && r <= persianZero+9:
		return '0' + (r - persianZero)
	case r >= arabicIndicZero && r <= arabicIndicZero+9:
		return '0' + (r - arabicIndicZero)
	default:
		return r
	}
})

// NormalizeDigits maps Persian and Arabic-Indic digits to ASCII digits and
// leaves every other rune untouched.
func NormalizeDigits(s string) string {
	out, _, err := transform.String(digitMapper, s)
	if err != nil {
		return s
	}
	return out
}

func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, NormalizeDigits(s))
}

// Parse extracts every digit of s, in any supported numeral system, and
// reads the result as a base-10 amount. Separators, currency words and
// signs are dropped. Input without digits yields 0. A digit run beyond
// the int64 range saturates at math.MaxInt64.
func Parse(s string) int64 {
	digits := digitsOf(s)
	if digits == "" {
		return 0
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return math.MaxInt64
	}

	return n
}

// ParseValue is Parse for values that may already be numeric.
// Unsupported types and nil yield 0.
func ParseValue(v any) int64 {
	s, ok := textOf(v)
	if !ok {
		return 0
	}
	return Parse(s)
}

func textOf(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case domain.PriceText:
		return string(v), true
	case json.Number:
		return v.String(), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", false
		}
		return strconv.FormatFloat(math.Trunc(math.Abs(v)), 'f', 0, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

// Formatter renders amounts with the grouping and, optionally, the native
// digits of a locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter falls back to ASCII digits when nativeDigits is false or
// when the locale's digits are not ones Parse can read back.
func NewFormatter(tag language.Tag, nativeDigits bool) *Formatter {
	if nativeDigits && readsBack(tag) {
		return &Formatter{printer: message.NewPrinter(tag)}
	}

	latn, err := tag.SetTypeForKey("nu", "latn")
	if err != nil {
		latn = language.English
	}

	return &Formatter{printer: message.NewPrinter(latn)}
}

const allDigits = 1234567890

func readsBack(tag language.Tag) bool {
	out := message.NewPrinter(tag).Sprint(number.Decimal(allDigits))
	return Parse(out) == allDigits
}

// Format renders v for display. Zero and values without digits render as "0".
// Parse(f.Format(x)) == x for every non-negative int64 x.
func (f *Formatter) Format(v any) string {
	s, ok := textOf(v)
	if !ok {
		return "0"
	}

	digits := digitsOf(s)
	if digits == "" {
		return "0"
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n == 0 {
		return "0"
	}

	return f.printer.Sprint(number.Decimal(n))
}

var defaultFormatter = NewFormatter(language.Persian, true)

// Format renders v with Persian grouping and digits.
func Format(v any) string {
	return defaultFormatter.Format(v)
}
