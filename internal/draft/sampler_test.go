package draft

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

type sourceFunc func(low, high float64) float64

func (f sourceFunc) Uniform(low, high float64) float64 { return f(low, high) }

func makePool(keys ...string) []domain.UpgradeOption {
	pool := make([]domain.UpgradeOption, 0, len(keys))
	for _, k := range keys {
		pool = append(pool, domain.UpgradeOption{Key: k, DisplayName: k})
	}
	return pool
}

func keysOf(options []domain.UpgradeOption) []string {
	keys := make([]string, len(options))
	for i, o := range options {
		keys[i] = o.Key
	}
	return keys
}

func sortedKeys(options []domain.UpgradeOption) []string {
	keys := keysOf(options)
	sort.Strings(keys)
	return keys
}

func TestSampler_DrawAllEligibleReturnsKDistinct(t *testing.T) {
	pool := makePool("a", "b", "c", "d", "e", "f")
	members := map[string]bool{}
	for _, o := range pool {
		members[o.Key] = true
	}
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(1000)), NewSeededSource(7))
	ledger := NewMemoryLedger()

	for k := 1; k <= len(pool); k++ {
		for i := 0; i < 200; i++ {
			got := sampler.Draw(pool, ledger, k)
			require.Len(t, got, k)

			seen := map[string]bool{}
			for _, o := range got {
				assert.True(t, members[o.Key], "drew %s which is not in the pool", o.Key)
				assert.False(t, seen[o.Key], "duplicate offer %s", o.Key)
				seen[o.Key] = true
			}
		}
	}
}

func TestSampler_KLargerThanPool(t *testing.T) {
	pool := makePool("a", "b")
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), NewSeededSource(1))

	got := sampler.Draw(pool, NewMemoryLedger(), 5)
	assert.ElementsMatch(t, []string{"a", "b"}, keysOf(got))
}

func TestSampler_FewerEligibleThanK(t *testing.T) {
	pool := makePool("a", "b", "c", "d", "e")
	pool[1].PurchaseLimit = 1
	pool[3].PurchaseLimit = 1
	ledger := ledgerWith(map[string]int{"b": 1, "d": 1})
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), NewSeededSource(3))

	for i := 0; i < 100; i++ {
		got := sampler.Draw(pool, ledger, 5)
		assert.ElementsMatch(t, []string{"a", "c", "e"}, keysOf(got))
	}
}

func TestSampler_PreservesPoolMembership(t *testing.T) {
	pool := makePool("a", "b", "c", "d", "e", "f", "g")
	before := sortedKeys(pool)
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), NewSeededSource(11))

	for i := 0; i < 100; i++ {
		got := sampler.Draw(pool, NewMemoryLedger(), 3)
		assert.Equal(t, before, sortedKeys(pool))
		assert.Equal(t, keysOf(got), keysOf(pool[:len(got)]), "chosen options are swapped to the front in pick order")
	}
}

func TestSampler_EmptyInputs(t *testing.T) {
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), NewSeededSource(1))

	assert.Empty(t, sampler.Draw(nil, NewMemoryLedger(), 3))
	assert.Empty(t, sampler.Draw(makePool("a"), NewMemoryLedger(), 0))
	assert.Empty(t, sampler.Draw(makePool("a"), NewMemoryLedger(), -1))
}

func TestSampler_UnaffordableOnlyPoolYieldsNoOffers(t *testing.T) {
	pool := []domain.UpgradeOption{{Key: "A", Cost: 100}}
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(10)), NewSeededSource(5))

	got := sampler.Draw(pool, NewMemoryLedger(), 1)
	assert.Empty(t, got)

	got = sampler.Draw(pool, NewMemoryLedger(), 3)
	assert.Empty(t, got, "later slots are never reached when slot 0 is empty")
}

func TestSampler_OnlyFirstSlotRequiresAffordability(t *testing.T) {
	pool := []domain.UpgradeOption{
		{Key: "pricey", Cost: 100},
		{Key: "cheap", Cost: 5},
	}
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(10)), NewSeededSource(9))

	for i := 0; i < 100; i++ {
		got := sampler.Draw(pool, NewMemoryLedger(), 2)
		require.Len(t, got, 2)
		assert.Equal(t, "cheap", got[0].Key)
		assert.Equal(t, "pricey", got[1].Key)
	}
}

func TestSampler_ExhaustedOptionNeverDrawn(t *testing.T) {
	pool := makePool("capped", "other1", "other2")
	pool[0].PurchaseLimit = 2
	ledger := ledgerWith(map[string]int{"capped": 2})
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(1000)), NewSeededSource(13))

	for i := 0; i < 200; i++ {
		got := sampler.Draw(pool, ledger, 3)
		assert.NotContains(t, keysOf(got), "capped")
	}
}

func TestSampler_PrerequisiteGating(t *testing.T) {
	pool := []domain.UpgradeOption{
		{Key: "B", Prerequisites: []string{"A"}},
		{Key: "A"},
	}
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), NewSeededSource(17))

	for i := 0; i < 100; i++ {
		got := sampler.Draw(pool, NewMemoryLedger(), 2)
		assert.Equal(t, []string{"A"}, keysOf(got))
	}

	ledger := ledgerWith(map[string]int{"A": 1})
	sawB := false
	for i := 0; i < 100; i++ {
		got := sampler.Draw(pool, ledger, 2)
		assert.Len(t, got, 2)
		if got[0].Key == "B" {
			sawB = true
		}
	}
	assert.True(t, sawB, "B becomes eligible once A has been purchased")
}

func TestSampler_UniformDistributionOverEligible(t *testing.T) {
	const draws = 30000
	const tolerance = 0.02

	pool := makePool("X", "Y", "Z")
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), NewSeededSource(42))
	ledger := NewMemoryLedger()

	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		got := sampler.Draw(pool, ledger, 1)
		require.Len(t, got, 1)
		counts[got[0].Key]++
	}

	for _, key := range []string{"X", "Y", "Z"} {
		freq := float64(counts[key]) / draws
		assert.InDelta(t, 1.0/3.0, freq, tolerance, "slot-0 frequency of %s", key)
	}
}

func TestSampler_WeightedPolicyDistribution(t *testing.T) {
	const draws = 20000

	pool := []domain.UpgradeOption{
		{Key: "common", Rarity: "common"},
		{Key: "rare", Rarity: "rare"},
	}
	policy := NewWeightedPolicy(NewBinaryPolicy(fixedBalance(0)), RarityWeights(map[string]float64{"common": 3, "rare": 1}, 1))
	sampler := NewSampler(policy, NewSeededSource(99))

	common := 0
	for i := 0; i < draws; i++ {
		if sampler.Draw(pool, NewMemoryLedger(), 1)[0].Key == "common" {
			common++
		}
	}
	assert.InDelta(t, 0.75, float64(common)/draws, 0.02)
}

func TestSampler_BoundarySelectsCurrentCandidate(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		want string
	}{
		{name: "zero picks first", r: 0, want: "X"},
		{name: "exactly first weight picks first", r: 1, want: "X"},
		{name: "just past first weight picks second", r: 1.5, want: "Y"},
		{name: "exactly cumulative second weight picks second", r: 2, want: "Y"},
		{name: "last interval picks third", r: 2.5, want: "Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourceFunc(func(low, high float64) float64 { return tt.r })
			sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), src)

			got := sampler.Draw(makePool("X", "Y", "Z"), NewMemoryLedger(), 1)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Key)
		})
	}
}

func TestSampler_FallbackToLastEligibleCandidate(t *testing.T) {
	pool := makePool("X", "Y", "Z")
	pool[2].PurchaseLimit = 1
	ledger := ledgerWith(map[string]int{"Z": 1})

	var fallbacks []string
	overshoot := sourceFunc(func(low, high float64) float64 { return high + 0.5 })
	sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), overshoot, WithFallbackHook(func(chosen domain.UpgradeOption, _ float64) {
		fallbacks = append(fallbacks, chosen.Key)
	}))

	got := sampler.Draw(pool, ledger, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Y", got[0].Key, "Z is ineligible so Y is the last eligible candidate visited")
	assert.Equal(t, []string{"Y"}, fallbacks)
}

func TestSampler_SeededSourceIsReproducible(t *testing.T) {
	draw := func() []string {
		sampler := NewSampler(NewBinaryPolicy(fixedBalance(0)), NewSeededSource(2024))
		pool := makePool("a", "b", "c", "d", "e")
		var out []string
		for i := 0; i < 20; i++ {
			out = append(out, keysOf(sampler.Draw(pool, NewMemoryLedger(), 3))...)
		}
		return out
	}
	assert.Equal(t, draw(), draw())
}
