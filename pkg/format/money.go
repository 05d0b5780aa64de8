// Package format renders monetary amounts and percentages for reports.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/iwvelando/asset-allocation/pkg/constants"
)

// Money describes how amounts and percentages are written. It is a value
// type; a zero Money falls back to the defaults from DefaultMoney.
type Money struct {
	CurrencySymbol     string `json:"currencySymbol" yaml:"currencySymbol"`
	DecimalSeparator   string `json:"decimalSeparator" yaml:"decimalSeparator"`
	ThousandsSeparator string `json:"thousandsSeparator" yaml:"thousandsSeparator"`
	// Template positions the symbol ($) and the number (1), e.g. "$1" or "1 $".
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
}

// DefaultMoney returns the yuan-style formatting used by the text report.
func DefaultMoney() Money {
	return Money{
		CurrencySymbol:     constants.DefaultCurrencySymbol,
		DecimalSeparator:   constants.DefaultDecimalSeparator,
		ThousandsSeparator: constants.DefaultThousandsSeparator,
		Template:           "$1",
	}
}

func (m Money) normalized() Money {
	if m.DecimalSeparator == "" {
		m.DecimalSeparator = constants.DefaultDecimalSeparator
	}
	if m.Template == "" {
		m.Template = "$1"
	}
	return m
}

// Currency returns amount with the currency symbol, thousands separators and
// two decimals (e.g. "¥1,234.56"). Negative amounts get a leading minus.
func (m Money) Currency(amount float64) string {
	m = m.normalized()
	return m.format(amount, m.CurrencySymbol, m.Template)
}

// Number returns amount without a currency symbol (e.g. "1,234.56").
func (m Money) Number(amount float64) string {
	m = m.normalized()
	return m.format(amount, "", "1")
}

// Percent renders a [0,1] fraction as a percentage with one decimal
// (e.g. 0.125 -> "12.5%").
func (m Money) Percent(fraction float64) string {
	m = m.normalized()
	s := strconv.FormatFloat(fraction*constants.PercentageMultiplier, 'f', constants.PercentDecimalPlaces, 64)
	if m.DecimalSeparator != "." {
		s = strings.Replace(s, ".", m.DecimalSeparator, 1)
	}
	return s + "%"
}

// format goes through go-money while the minor units fit in an int64 and
// groups the decimal digits itself beyond that.
func (m Money) format(amount float64, grapheme, template string) string {
	d := Decimal(amount)
	minor := d.Shift(constants.DecimalPlaces)
	if minor.GreaterThanOrEqual(minInt64) && minor.LessThanOrEqual(maxInt64) {
		f := money.NewFormatter(constants.DecimalPlaces, m.DecimalSeparator, m.ThousandsSeparator, grapheme, template)
		return f.Format(minor.IntPart())
	}

	digits := d.Abs().StringFixed(constants.DecimalPlaces)
	whole, frac, _ := strings.Cut(digits, ".")
	if m.ThousandsSeparator != "" {
		for i := len(whole) - 3; i > 0; i -= 3 {
			whole = whole[:i] + m.ThousandsSeparator + whole[i:]
		}
	}
	out := strings.Replace(template, "1", whole+m.DecimalSeparator+frac, 1)
	out = strings.Replace(out, "$", grapheme, 1)
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// Decimal converts amount to a decimal rounded to two places. The value is
// first rounded the way strconv rounds the binary float so that results agree
// with %.2f. NaN and infinities become zero.
func Decimal(amount float64) decimal.Decimal {
	d, err := decimal.NewFromString(strconv.FormatFloat(amount, 'f', constants.DecimalPlaces, 64))
	if err != nil {
		return decimal.Zero
	}
	return d
}
