// Package format renders timesheet and payroll values in the Brazilian
// layout used by exported reports.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	dateLayout  = "02/01/2006"
	clockLayout = "15:04"

	// Placeholder for a missing entry or exit time
	Missing = "--:--"

	ObservationIncomplete = "Incompleto"
	ObservationCorrected  = "Corrigido"
)

// Date formats t as dd/MM/yyyy in t's own location.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// Clock formats t as HH:mm in t's own location.
func Clock(t time.Time) string {
	return t.Format(clockLayout)
}

// ClockIn formats t as HH:mm after converting it to loc. A nil t yields Missing.
func ClockIn(t *time.Time, loc *time.Location) string {
	if t == nil {
		return Missing
	}
	return Clock(t.In(loc))
}

// Hours formats fractional hours as "X.XXh", rounding half-up.
func Hours(h float64) string {
	return decimal.NewFromFloat(h).StringFixed(2) + "h"
}

// BRL formats an amount as "R$ 1.234,56".
func BRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if amount.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// Observations builds the observations column text for a day.
func Observations(incomplete, corrected bool) string {
	var notes []string
	if incomplete {
		notes = append(notes, ObservationIncomplete)
	}
	if corrected {
		notes = append(notes, ObservationCorrected)
	}
	return strings.Join(notes, "; ")
}
