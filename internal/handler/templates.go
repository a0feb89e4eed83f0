package handler

import (
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/maremansa/internal/quote"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"year": func() int {
			return time.Now().Year()
		},
		"formatBRL":  FormatBRL,
		"formatCm":   quote.FormatCentimeters,
		"cutHeight":  func(w quote.Wall) string { return quote.FormatCentimeters(w.CutHeight()) },
		"rollWidth":  func() int { return quote.RollWidth },
		"pluralize":  Pluralize,
		"contains":   func(list []string, s string) bool { return slices.Contains(list, s) },
		"join":       strings.Join,
		"wallNumber": func(i int) int { return i + 1 },
	}
}

// FormatBRL renders a price in Brazilian reais, e.g. "R$ 1.080,00".
// An invalid NullDecimal renders as "".
func FormatBRL(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}

	fixed := v.Decimal.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Pluralize picks the singular or plural form for n.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
