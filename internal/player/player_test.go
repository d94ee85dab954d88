package player

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

func TestWallet(t *testing.T) {
	p := New("p1", Config{StartingBalance: 50})

	require.NoError(t, p.Deposit(25))
	assert.Equal(t, int64(75), p.Balance())

	require.NoError(t, p.Withdraw(75))
	assert.Equal(t, int64(0), p.Balance())

	err := p.Withdraw(1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.Equal(t, int64(0), p.Balance())

	assert.ErrorIs(t, p.Deposit(-1), domain.ErrInvalidAmount)
	assert.ErrorIs(t, p.Withdraw(-1), domain.ErrInvalidAmount)
}

func TestWallet_ConcurrentDeposits(t *testing.T) {
	p := New("p1", DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Deposit(2)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(200), p.Balance())
}

func TestHealth(t *testing.T) {
	p := New("p1", Config{MaxHealth: 5})
	assert.True(t, p.Alive())

	p.Damage(3)
	assert.Equal(t, 2, p.Snapshot().Health)

	p.Heal(10)
	assert.Equal(t, 5, p.Snapshot().Health)

	p.Damage(99)
	assert.Equal(t, 0, p.Snapshot().Health)
	assert.False(t, p.Alive())

	p.Heal(1)
	assert.True(t, p.Alive())
}

func TestAddExperience_QueuesPendingLevelUps(t *testing.T) {
	p := New("p1", Config{ThresholdBase: 10})

	crossings, err := p.AddExperience(25)
	require.NoError(t, err)
	assert.Equal(t, 2, crossings)
	assert.Equal(t, 2, p.PendingLevelUps())

	assert.True(t, p.TakePendingLevelUp())
	assert.True(t, p.TakePendingLevelUp())
	assert.False(t, p.TakePendingLevelUp())

	_, err = p.AddExperience(0)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestApplyModifier(t *testing.T) {
	p := New("p1", Config{MaxHealth: 10})

	require.NoError(t, p.ApplyModifier(domain.StatModifier{Stat: "move_speed", Kind: domain.ModifierMultiply, Amount: 1.5}))
	assert.InDelta(t, 1.5, p.Stat("move_speed"), 1e-9)

	require.NoError(t, p.ApplyModifier(domain.StatModifier{Stat: "move_speed", Kind: domain.ModifierMultiply, Amount: 2}))
	assert.InDelta(t, 3.0, p.Stat("move_speed"), 1e-9)

	require.NoError(t, p.ApplyModifier(domain.StatModifier{Stat: "pierce", Kind: domain.ModifierAdd, Amount: 1}))
	assert.InDelta(t, 1.0, p.Stat("pierce"), 1e-9)

	err := p.ApplyModifier(domain.StatModifier{Stat: "pierce", Kind: "pow", Amount: 2})
	assert.Error(t, err)
}

func TestApplyModifier_MaxHealthRaisesCap(t *testing.T) {
	p := New("p1", Config{MaxHealth: 10})
	p.Damage(4)

	require.NoError(t, p.ApplyModifier(domain.StatModifier{Stat: StatMaxHealth, Kind: domain.ModifierAdd, Amount: 2}))

	snap := p.Snapshot()
	assert.Equal(t, 12, snap.MaxHealth)
	assert.Equal(t, 8, snap.Health)
}

func TestSnapshot_IsCopy(t *testing.T) {
	p := New("p1", DefaultConfig())
	require.NoError(t, p.ApplyModifier(domain.StatModifier{Stat: "pierce", Kind: domain.ModifierAdd, Amount: 1}))

	snap := p.Snapshot()
	snap.Stats["pierce"] = 99

	assert.InDelta(t, 1.0, p.Stat("pierce"), 1e-9)
	assert.Equal(t, "p1", snap.ID)
	assert.Equal(t, DefaultThresholdBase, snap.Threshold)
}

func TestAddExperience_RejectsOutOfRange(t *testing.T) {
	for _, amount := range []float64{0, -1, MaxExperienceGrant + 1, 1e20, math.Inf(1), math.NaN()} {
		p := New("p1", DefaultConfig())

		crossings, err := p.AddExperience(amount)

		assert.ErrorIs(t, err, domain.ErrInvalidAmount, "amount %v", amount)
		assert.Zero(t, crossings)
		assert.Zero(t, p.PendingLevelUps())
	}

	p := New("p1", DefaultConfig())
	crossings, err := p.AddExperience(MaxExperienceGrant)
	require.NoError(t, err)
	assert.Positive(t, crossings)
	assert.LessOrEqual(t, crossings, MaxCrossingsPerAdd)
	assert.Equal(t, crossings, p.PendingLevelUps())
}
