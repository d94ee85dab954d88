package player

import "math"

// ExperienceMeter accumulates experience and reports threshold crossings.
// Each crossing subtracts the current threshold, which then grows linearly.
type ExperienceMeter struct {
	value  float64
	level  int
	base   float64
	growth float64
}

// NewExperienceMeter creates a meter whose threshold at level n is base + growth*n
func NewExperienceMeter(base, growth float64) *ExperienceMeter {
	if base <= 0 {
		base = DefaultThresholdBase
	}
	if growth < 0 {
		growth = 0
	}
	return &ExperienceMeter{base: base, growth: growth}
}

// Add adds experience and returns how many thresholds were crossed.
// A crossing is reported once, at the moment it happens. Non-positive and
// non-finite amounts are ignored, and at most MaxCrossingsPerAdd crossings
// are reported per call.
func (m *ExperienceMeter) Add(amount float64) int {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return 0
	}
	m.value += amount

	crossings := 0
	for m.value >= m.Threshold() {
		if crossings == MaxCrossingsPerAdd {
			m.value = 0
			break
		}
		m.value -= m.Threshold()
		m.level++
		crossings++
	}
	return crossings
}

// Threshold returns the experience needed for the next crossing
func (m *ExperienceMeter) Threshold() float64 {
	return m.base + m.growth*float64(m.level)
}

// Value returns the experience carried toward the next threshold
func (m *ExperienceMeter) Value() float64 { return m.value }

// Level returns the number of thresholds crossed so far
func (m *ExperienceMeter) Level() int { return m.level }
