package output

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rpgo/stepup-sip/internal/domain"
	"github.com/rpgo/stepup-sip/pkg/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Defaults used when a comparison does not name a currency or locale.
const (
	DefaultCurrency = "INR"
	DefaultLocale   = "en-IN"
)

// CurrencyFormatter renders amounts as whole currency units with
// locale-specific digit grouping (en-IN groups as 1,00,000).
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
	code    string
}

// NewCurrencyFormatter builds a formatter for an ISO 4217 code and a BCP 47 locale.
// Empty arguments fall back to the package defaults.
func NewCurrencyFormatter(code, locale string) (*CurrencyFormatter, error) {
	if code == "" {
		code = DefaultCurrency
	}
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", code, err)
	}
	p := message.NewPrinter(tag)
	return &CurrencyFormatter{
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
		code:    unit.String(),
	}, nil
}

// MustCurrencyFormatter is NewCurrencyFormatter for known-good arguments.
func MustCurrencyFormatter(code, locale string) *CurrencyFormatter {
	f, err := NewCurrencyFormatter(code, locale)
	if err != nil {
		panic(err)
	}
	return f
}

// formatterFor returns the formatter configured on results, falling back to
// the defaults when the configured values are unusable.
func formatterFor(results *domain.ScenarioComparison) *CurrencyFormatter {
	f, err := NewCurrencyFormatter(results.Currency, results.Locale)
	if err != nil {
		return MustCurrencyFormatter(DefaultCurrency, DefaultLocale)
	}
	return f
}

// Code returns the ISO currency code.
func (f *CurrencyFormatter) Code() string { return f.code }

// Symbol returns the locale's currency symbol.
func (f *CurrencyFormatter) Symbol() string { return f.symbol }

// Format renders amount rounded to whole units, e.g. "₹1,75,917".
func (f *CurrencyFormatter) Format(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	whole := math.Round(amount)
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	return sign + f.symbol + f.Number(whole)
}

// Number renders a whole number with locale grouping and no symbol.
func (f *CurrencyFormatter) Number(v float64) string {
	return f.printer.Sprintf("%d", int64(math.Round(v)))
}

// FormatPercentage renders a percentage with two decimals, or "n/a" when undefined.
func FormatPercentage(pct float64) string {
	m, ok := decimal.NewMoneyChecked(pct)
	if !ok {
		return "n/a"
	}
	return m.Round().String() + "%"
}

// FormatAmount renders amount with two fixed decimals for machine-readable outputs.
func FormatAmount(amount float64) string {
	m, ok := decimal.NewMoneyChecked(amount)
	if !ok {
		return ""
	}
	return m.Round().String()
}

// shareOf renders part as a percentage of total, or "n/a" when total is zero or not finite.
func shareOf(part, total float64) string {
	p, okPart := decimal.NewMoneyChecked(part)
	t, okTotal := decimal.NewMoneyChecked(total)
	if !okPart || !okTotal || t.IsZero() {
		return "n/a"
	}
	return FormatPercentage(decimal.NewMoneyFromDecimal(p.ShareOf(t)).Float64())
}

// firstYearSIP is the total SIP paid in year 1.
func firstYearSIP(monthly float64) float64 {
	return decimal.NewMoney(monthly).Annual().Float64()
}

func intToString(i int) string { return strconv.Itoa(i) }

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft pads s with leading spaces to width runes.
func padLeft(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
