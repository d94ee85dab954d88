package draft

import (
	"math"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

// FallbackHook is called when floating-point drift exhausts the weight walk
// and the last eligible candidate is chosen instead.
type FallbackHook func(chosen domain.UpgradeOption, remaining float64)

// Sampler draws distinct options by repeated weighted picks without replacement
type Sampler struct {
	policy     Policy
	rng        RandomSource
	onFallback FallbackHook
}

// SamplerOption configures a Sampler
type SamplerOption func(*Sampler)

// WithFallbackHook registers a hook for weight-walk fallbacks
func WithFallbackHook(hook FallbackHook) SamplerOption {
	return func(s *Sampler) {
		s.onFallback = hook
	}
}

// NewSampler creates a sampler. A nil rng uses the crypto source.
func NewSampler(policy Policy, rng RandomSource, opts ...SamplerOption) *Sampler {
	if rng == nil {
		rng = NewCryptoSource()
	}
	s := &Sampler{policy: policy, rng: rng}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draw returns up to k distinct options from pool.
//
// The pool is reordered in place: chosen options are swapped to the front in
// pick order, so pool[:len(result)] equals the result. Membership is never
// changed. Only the first slot requires the option to be affordable. Drawing
// stops early, without error, once no eligible candidate remains.
func (s *Sampler) Draw(pool []domain.UpgradeOption, ledger LedgerReader, k int) []domain.UpgradeOption {
	if k <= 0 || len(pool) == 0 {
		return []domain.UpgradeOption{}
	}
	if k > len(pool) {
		k = len(pool)
	}

	result := make([]domain.UpgradeOption, 0, k)
	weights := make([]float64, len(pool))

	for excludeIndex := 0; excludeIndex < k; excludeIndex++ {
		requireAffordable := excludeIndex == 0

		totalWeight := 0.0
		numEligible := 0
		for i := excludeIndex; i < len(pool); i++ {
			w := s.policy.Weight(pool[i], ledger, requireAffordable)
			if w <= 0 || math.IsNaN(w) {
				w = 0
			}
			weights[i] = w
			totalWeight += w
			if w > 0 {
				numEligible++
			}
		}

		if numEligible == 0 {
			break
		}

		winner := s.pick(pool, weights, excludeIndex, totalWeight)

		pool[excludeIndex], pool[winner] = pool[winner], pool[excludeIndex]
		result = append(result, pool[excludeIndex])
	}

	return result
}

// pick walks the active suffix and returns the index of the chosen candidate.
// The first candidate whose weight is >= the remaining draw wins.
func (s *Sampler) pick(pool []domain.UpgradeOption, weights []float64, from int, totalWeight float64) int {
	r := s.rng.Uniform(0, totalWeight)
	last := -1
	for i := from; i < len(pool); i++ {
		w := weights[i]
		if w == 0 {
			continue
		}
		last = i
		if r <= w {
			return i
		}
		r -= w
	}

	if s.onFallback != nil {
		s.onFallback(pool[last], r)
	}
	return last
}
