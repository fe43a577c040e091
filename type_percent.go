package fintrack

import (
	"fmt"
	"math"
)

// Percent is a percentage, 8.5 means 8.5%. Annual return rates and progress use it.
type Percent float64

// String formats the percentage with two decimals, "8.50%".
func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// Int returns the percentage rounded half away from zero.
func (p Percent) Int() int { return int(math.Round(float64(p))) }
