package valueobject

import (
	"fmt"
	"math"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
)

const (
	MinCommissionPercent = 0.0
	MaxCommissionPercent = 100.0
)

// CommissionRate is a percentage in [0, 100], kept at two decimal places.
type CommissionRate struct {
	percent float64
}

func NewCommissionRate(percent float64) (CommissionRate, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return CommissionRate{}, errs.Validation(errs.CodeInvalidCommissionRate, "commission rate must be a finite number")
	}
	if percent < MinCommissionPercent || percent > MaxCommissionPercent {
		return CommissionRate{}, errs.Validation(errs.CodeInvalidCommissionRate,
			fmt.Sprintf("commission rate must be between %.0f and %.0f percent", MinCommissionPercent, MaxCommissionPercent))
	}
	return CommissionRate{percent: math.Round(percent*100) / 100}, nil
}

func (r CommissionRate) Percent() float64 { return r.percent }

// Of returns the commission owed on amount.
func (r CommissionRate) Of(amount float64) float64 {
	return math.Round(amount*r.percent) / 100
}

func (r CommissionRate) String() string { return fmt.Sprintf("%.2f%%", r.percent) }
