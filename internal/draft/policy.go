package draft

import (
	"math"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

// BalanceProvider exposes the player's current currency balance
type BalanceProvider interface {
	Balance() int64
}

// Policy computes the eligibility weight of an option for the next pick.
// A weight of 0 excludes the option.
type Policy interface {
	Weight(option domain.UpgradeOption, ledger LedgerReader, requireAffordable bool) float64
}

// BinaryPolicy returns 1 for every eligible option and 0 otherwise.
// Rules are checked in order: purchase limit, prerequisites, affordability.
type BinaryPolicy struct {
	balance BalanceProvider
}

// NewBinaryPolicy creates a policy that reads affordability from balance
func NewBinaryPolicy(balance BalanceProvider) *BinaryPolicy {
	return &BinaryPolicy{balance: balance}
}

// Weight implements Policy
func (p *BinaryPolicy) Weight(option domain.UpgradeOption, ledger LedgerReader, requireAffordable bool) float64 {
	if Exhausted(option, ledger) {
		return 0
	}
	if !PrerequisitesMet(option, ledger) {
		return 0
	}
	if requireAffordable && !p.Affordable(option) {
		return 0
	}
	return 1
}

// Affordable reports whether the current balance covers the option's cost
func (p *BinaryPolicy) Affordable(option domain.UpgradeOption) bool {
	if p.balance == nil {
		return option.Cost <= 0
	}
	return p.balance.Balance() >= option.Cost
}

// Exhausted reports whether a capped option has reached its purchase limit
func Exhausted(option domain.UpgradeOption, ledger LedgerReader) bool {
	return option.PurchaseLimit > 0 && ledger.Count(option.Key) >= option.PurchaseLimit
}

// PrerequisitesMet reports whether every prerequisite was purchased at least once
func PrerequisitesMet(option domain.UpgradeOption, ledger LedgerReader) bool {
	for _, prereq := range option.Prerequisites {
		if ledger.Count(prereq) == 0 {
			return false
		}
	}
	return true
}

// WeightFunc assigns a relative magnitude to an option that already passed
// the eligibility gates.
type WeightFunc func(option domain.UpgradeOption) float64

// WeightedPolicy scales the result of a gating policy by a WeightFunc.
// Options the gate excludes stay excluded whatever the function returns.
type WeightedPolicy struct {
	gate   Policy
	weight WeightFunc
}

// NewWeightedPolicy wraps gate with a magnitude function
func NewWeightedPolicy(gate Policy, weight WeightFunc) *WeightedPolicy {
	return &WeightedPolicy{gate: gate, weight: weight}
}

// Weight implements Policy
func (p *WeightedPolicy) Weight(option domain.UpgradeOption, ledger LedgerReader, requireAffordable bool) float64 {
	if p.gate.Weight(option, ledger, requireAffordable) <= 0 {
		return 0
	}
	if p.weight == nil {
		return 1
	}
	w := p.weight(option)
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0
	}
	return w
}

// RarityWeights builds a WeightFunc from a rarity table. Unknown or empty
// rarities fall back to def.
func RarityWeights(table map[string]float64, def float64) WeightFunc {
	return func(option domain.UpgradeOption) float64 {
		if w, ok := table[option.Rarity]; ok {
			return w
		}
		return def
	}
}
