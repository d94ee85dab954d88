package player

import (
	"fmt"
	"sync"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

// Config describes a new player's starting state
type Config struct {
	StartingBalance int64
	MaxHealth       int
	ThresholdBase   float64
	ThresholdGrowth float64
}

// DefaultConfig returns the starting state used when none is given
func DefaultConfig() Config {
	return Config{
		MaxHealth:       DefaultMaxHealth,
		ThresholdBase:   DefaultThresholdBase,
		ThresholdGrowth: DefaultThresholdStep,
	}
}

// Player holds the per-player collaborators of a draft: wallet, health,
// experience and the stats upgrades modify. Safe for concurrent use.
type Player struct {
	mu sync.RWMutex

	id        string
	balance   int64
	health    int
	maxHealth int
	meter     *ExperienceMeter
	pending   int
	stats     map[string]float64
}

// New creates a player at full health
func New(id string, cfg Config) *Player {
	if cfg.MaxHealth <= 0 {
		cfg.MaxHealth = DefaultMaxHealth
	}
	return &Player{
		id:        id,
		balance:   cfg.StartingBalance,
		health:    cfg.MaxHealth,
		maxHealth: cfg.MaxHealth,
		meter:     NewExperienceMeter(cfg.ThresholdBase, cfg.ThresholdGrowth),
		stats:     make(map[string]float64),
	}
}

// ID returns the player identifier
func (p *Player) ID() string { return p.id }

// Balance returns the current currency balance
func (p *Player) Balance() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.balance
}

// Deposit adds currency
func (p *Player) Deposit(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: deposit %d", domain.ErrInvalidAmount, amount)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.balance += amount
	return nil
}

// Withdraw removes currency, failing when the balance does not cover it
func (p *Player) Withdraw(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: withdraw %d", domain.ErrInvalidAmount, amount)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.balance < amount {
		return fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientFunds, amount, p.balance)
	}
	p.balance -= amount
	return nil
}

// Alive reports whether health is above zero
func (p *Player) Alive() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health > 0
}

// Damage lowers health, never below zero
func (p *Player) Damage(amount int) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health -= amount
	if p.health < 0 {
		p.health = 0
	}
}

// Heal raises health up to the maximum
func (p *Player) Heal(amount int) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.health += amount
	if p.health > p.maxHealth {
		p.health = p.maxHealth
	}
}

// AddExperience feeds the meter and queues one pending level-up per crossing.
// It returns the number of crossings. Amounts must be finite and in
// (0, MaxExperienceGrant].
func (p *Player) AddExperience(amount float64) (int, error) {
	if !(amount > 0) || amount > MaxExperienceGrant {
		return 0, fmt.Errorf("%w: experience %v", domain.ErrInvalidAmount, amount)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	crossings := p.meter.Add(amount)
	p.pending += crossings
	return crossings, nil
}

// TakePendingLevelUp consumes one queued level-up
func (p *Player) TakePendingLevelUp() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == 0 {
		return false
	}
	p.pending--
	return true
}

// PendingLevelUps returns the number of queued level-ups
func (p *Player) PendingLevelUps() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pending
}

// Stat returns a stat value, 0 when never modified
func (p *Player) Stat(name string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats[name]
}

// ApplyModifier changes a stat. Multiplying an unset stat starts from 1.
// The max_health stat also raises the health cap and current health.
func (p *Player) ApplyModifier(mod domain.StatModifier) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch mod.Kind {
	case domain.ModifierAdd:
		p.stats[mod.Stat] += mod.Amount
	case domain.ModifierMultiply:
		current, ok := p.stats[mod.Stat]
		if !ok {
			current = 1
		}
		p.stats[mod.Stat] = current * mod.Amount
	default:
		return fmt.Errorf("unknown modifier kind %q for stat %s", mod.Kind, mod.Stat)
	}

	if mod.Stat == StatMaxHealth && mod.Kind == domain.ModifierAdd {
		delta := int(mod.Amount)
		p.maxHealth += delta
		if p.maxHealth < 1 {
			p.maxHealth = 1
		}
		if delta > 0 {
			p.health += delta
		}
		if p.health > p.maxHealth {
			p.health = p.maxHealth
		}
	}
	return nil
}

// Snapshot returns a copy of the player's state
func (p *Player) Snapshot() domain.PlayerState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := make(map[string]float64, len(p.stats))
	for k, v := range p.stats {
		stats[k] = v
	}
	return domain.PlayerState{
		ID:              p.id,
		Balance:         p.balance,
		Health:          p.health,
		MaxHealth:       p.maxHealth,
		Level:           p.meter.Level(),
		Experience:      p.meter.Value(),
		Threshold:       p.meter.Threshold(),
		PendingLevelUps: p.pending,
		Stats:           stats,
	}
}
