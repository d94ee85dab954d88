package levelup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/player"
)

func TestUpgradeEffects_HealOnLevel(t *testing.T) {
	p := player.New("p1", player.Config{MaxHealth: 10, StartingBalance: 100})
	p.Damage(5)
	effects := &upgradeEffects{player: p}

	err := effects.Apply(context.Background(), domain.UpgradeOption{
		Key:     "second_wind",
		Cost:    30,
		Effects: []domain.StatModifier{{Stat: player.StatHealOnLevel, Kind: domain.ModifierAdd, Amount: 2}},
	})
	require.NoError(t, err)

	snap := p.Snapshot()
	assert.Equal(t, int64(70), snap.Balance)
	assert.Equal(t, 7, snap.Health)
}

func TestUpgradeEffects_UnknownModifierChangesNothing(t *testing.T) {
	p := player.New("p1", player.Config{StartingBalance: 50})
	effects := &upgradeEffects{player: p}

	err := effects.Apply(context.Background(), domain.UpgradeOption{
		Key:  "broken",
		Cost: 10,
		Effects: []domain.StatModifier{
			{Stat: "pierce", Kind: domain.ModifierAdd, Amount: 1},
			{Stat: "pierce", Kind: "pow", Amount: 2},
		},
	})
	assert.Error(t, err)
	assert.Equal(t, int64(50), p.Balance())
	assert.Zero(t, p.Stat("pierce"))
}

func TestUpgradeEffects_InsufficientFunds(t *testing.T) {
	p := player.New("p1", player.Config{StartingBalance: 5})
	effects := &upgradeEffects{player: p, bonus: []domain.StatModifier{{Stat: "luck", Kind: domain.ModifierAdd, Amount: 1}}}

	err := effects.Apply(context.Background(), domain.UpgradeOption{Key: "pricey", Cost: 6})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Zero(t, p.Stat("luck"))
}
