package draft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

type fixedBalance int64

func (b fixedBalance) Balance() int64 { return int64(b) }

func ledgerWith(counts map[string]int) *MemoryLedger {
	l := NewMemoryLedger()
	for k, n := range counts {
		for i := 0; i < n; i++ {
			l.Increment(k)
		}
	}
	return l
}

func TestBinaryPolicy_Weight(t *testing.T) {
	tests := []struct {
		name    string
		option  domain.UpgradeOption
		counts  map[string]int
		balance int64
		afford  bool
		want    float64
	}{
		{
			name:    "eligible option",
			option:  domain.UpgradeOption{Key: "speed", Cost: 10},
			balance: 100,
			afford:  true,
			want:    1,
		},
		{
			name:    "limit reached",
			option:  domain.UpgradeOption{Key: "speed", PurchaseLimit: 2},
			counts:  map[string]int{"speed": 2},
			balance: 100,
			want:    0,
		},
		{
			name:   "limit not yet reached",
			option: domain.UpgradeOption{Key: "speed", PurchaseLimit: 2},
			counts: map[string]int{"speed": 1},
			want:   1,
		},
		{
			name:   "unlimited ignores count",
			option: domain.UpgradeOption{Key: "speed"},
			counts: map[string]int{"speed": 50},
			want:   1,
		},
		{
			name:   "missing prerequisite",
			option: domain.UpgradeOption{Key: "dash", Prerequisites: []string{"speed"}},
			want:   0,
		},
		{
			name:   "only some prerequisites met",
			option: domain.UpgradeOption{Key: "blink", Prerequisites: []string{"speed", "dash"}},
			counts: map[string]int{"speed": 1},
			want:   0,
		},
		{
			name:   "all prerequisites met",
			option: domain.UpgradeOption{Key: "blink", Prerequisites: []string{"speed", "dash"}},
			counts: map[string]int{"speed": 1, "dash": 3},
			want:   1,
		},
		{
			name:    "unaffordable when affordability required",
			option:  domain.UpgradeOption{Key: "laser", Cost: 100},
			balance: 10,
			afford:  true,
			want:    0,
		},
		{
			name:    "unaffordable allowed for later slots",
			option:  domain.UpgradeOption{Key: "laser", Cost: 100},
			balance: 10,
			want:    1,
		},
		{
			name:    "exact balance is affordable",
			option:  domain.UpgradeOption{Key: "laser", Cost: 100},
			balance: 100,
			afford:  true,
			want:    1,
		},
		{
			name:    "exhausted wins over affordability",
			option:  domain.UpgradeOption{Key: "laser", Cost: 1, PurchaseLimit: 1},
			counts:  map[string]int{"laser": 1},
			balance: 1000,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := NewBinaryPolicy(fixedBalance(tt.balance))
			got := policy.Weight(tt.option, ledgerWith(tt.counts), tt.afford)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinaryPolicy_NilBalanceOnlyAffordsFree(t *testing.T) {
	policy := NewBinaryPolicy(nil)
	ledger := NewMemoryLedger()

	assert.Equal(t, 1.0, policy.Weight(domain.UpgradeOption{Key: "free"}, ledger, true))
	assert.Equal(t, 0.0, policy.Weight(domain.UpgradeOption{Key: "paid", Cost: 1}, ledger, true))
}

func TestWeightedPolicy(t *testing.T) {
	gate := NewBinaryPolicy(fixedBalance(0))
	ledger := NewMemoryLedger()
	weights := RarityWeights(map[string]float64{"common": 3, "rare": 1, "cursed": -1}, 2)
	policy := NewWeightedPolicy(gate, weights)

	assert.Equal(t, 3.0, policy.Weight(domain.UpgradeOption{Key: "a", Rarity: "common"}, ledger, true))
	assert.Equal(t, 1.0, policy.Weight(domain.UpgradeOption{Key: "b", Rarity: "rare"}, ledger, true))
	assert.Equal(t, 2.0, policy.Weight(domain.UpgradeOption{Key: "c"}, ledger, true), "unknown rarity uses default")
	assert.Equal(t, 0.0, policy.Weight(domain.UpgradeOption{Key: "d", Rarity: "cursed"}, ledger, true), "negative weight excludes")
	assert.Equal(t, 0.0, policy.Weight(domain.UpgradeOption{Key: "e", Rarity: "common", Cost: 5}, ledger, true), "gate still applies")

	nan := NewWeightedPolicy(gate, func(domain.UpgradeOption) float64 { return math.NaN() })
	assert.Equal(t, 0.0, nan.Weight(domain.UpgradeOption{Key: "f"}, ledger, true))

	plain := NewWeightedPolicy(gate, nil)
	assert.Equal(t, 1.0, plain.Weight(domain.UpgradeOption{Key: "g"}, ledger, true))
}
