// Package payroll holds the salary breakdown formulas. The percentages and
// the per-step rounding are a compatibility contract; the net value changes
// if any sub-component is rounded differently or later.
package payroll

import (
	"fmt"
	"math"
	"time"
)

// Flat professional tax applied to every breakdown.
const ProfessionalTax = 200.0

type Breakdown struct {
	Gross           float64 `json:"gross"`
	Basic           float64 `json:"basic"`
	HRA             float64 `json:"hra"`
	DA              float64 `json:"da"`
	TA              float64 `json:"ta"`
	Allowances      float64 `json:"allowances"`
	PF              float64 `json:"pf"`
	Tax             float64 `json:"tax"`
	ProfessionalTax float64 `json:"professional_tax"`
	Deductions      float64 `json:"deductions"`
	Net             float64 `json:"net"`
}

// Compute derives the full breakdown from a gross monthly salary. Each
// sub-component is rounded to the nearest whole currency unit before it is
// summed.
func Compute(gross float64) Breakdown {
	b := Breakdown{Gross: gross}

	b.Basic = math.Round(gross * 0.70)

	b.HRA = math.Round(gross * 0.15)
	b.DA = math.Round(gross * 0.10)
	b.TA = math.Round(gross * 0.05)
	b.Allowances = b.HRA + b.DA + b.TA

	b.PF = math.Round(gross * 0.05)
	b.Tax = math.Round(gross * 0.03)
	b.ProfessionalTax = ProfessionalTax
	b.Deductions = b.PF + b.Tax + b.ProfessionalTax

	b.Net = gross - b.Deductions
	return b
}

// ParseMonth parses a "2006-01" month label.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month label %q: %w", month, err)
	}
	return t, nil
}

// PaymentDate returns the payment date for a payroll month: the 5th of the
// following month.
func PaymentDate(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	next := t.AddDate(0, 1, 0)
	return time.Date(next.Year(), next.Month(), 5, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), nil
}
