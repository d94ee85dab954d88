package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
)

// EffectApplier applies the chosen option's effect. It is invoked exactly
// once per resolved draft. Returning an error keeps the session awaiting a choice.
type EffectApplier interface {
	Apply(ctx context.Context, option domain.UpgradeOption) error
}

// EffectFunc adapts a function to EffectApplier
type EffectFunc func(ctx context.Context, option domain.UpgradeOption) error

// Apply implements EffectApplier
func (f EffectFunc) Apply(ctx context.Context, option domain.UpgradeOption) error {
	return f(ctx, option)
}

// Liveness gates new drafts, e.g. a defeated player cannot level up
type Liveness interface {
	Alive() bool
}

// SessionConfig holds the collaborators of a Session
type SessionConfig struct {
	Pool     []domain.UpgradeOption
	Sampler  *Sampler
	Ledger   Ledger
	Effects  EffectApplier
	Liveness Liveness
	Clock    func() time.Time
}

// Session is the level-up state machine:
// Idle -> Drafting -> AwaitingChoice -> Resolved -> Idle.
// At most one draft is active at a time.
type Session struct {
	mu sync.Mutex

	pool     []domain.UpgradeOption
	sampler  *Sampler
	ledger   Ledger
	effects  EffectApplier
	liveness Liveness
	clock    func() time.Time

	state     domain.DraftState
	id        string
	offers    []domain.UpgradeOption
	startedAt time.Time
}

// NewSession creates an idle session. The pool is copied and owned by the session.
// A nil Sampler draws with a crypto source and offers only free options.
func NewSession(cfg SessionConfig) *Session {
	pool := make([]domain.UpgradeOption, len(cfg.Pool))
	copy(pool, cfg.Pool)

	ledger := cfg.Ledger
	if ledger == nil {
		ledger = NewMemoryLedger()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	// without a balance only free options are affordable
	sampler := cfg.Sampler
	if sampler == nil {
		sampler = NewSampler(NewBinaryPolicy(nil), nil)
	}

	return &Session{
		pool:     pool,
		sampler:  sampler,
		ledger:   ledger,
		effects:  cfg.Effects,
		liveness: cfg.Liveness,
		clock:    clock,
		state:    domain.DraftIdle,
	}
}

// Start samples up to k offers and waits for a choice.
// It is rejected while another draft is active or when the liveness check fails.
func (s *Session) Start(k int) ([]domain.UpgradeOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.DraftIdle {
		return nil, domain.ErrSessionAlreadyActive
	}
	if s.liveness != nil && !s.liveness.Alive() {
		return nil, domain.ErrPlayerDefeated
	}

	s.state = domain.DraftDrafting
	s.offers = s.sampler.Draw(s.pool, s.ledger, k)
	s.id = uuid.NewString()
	s.startedAt = s.clock()
	s.state = domain.DraftAwaitingChoice

	return s.copyOffers(), nil
}

// Confirm resolves the draft with the offer at index.
// On success the ledger is incremented once and the effect applied once.
// An out-of-range index returns domain.ErrInvalidChoice and leaves the session
// awaiting a choice, as does a failing effect.
func (s *Session) Confirm(ctx context.Context, index int) (domain.UpgradeOption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != domain.DraftAwaitingChoice {
		return domain.UpgradeOption{}, domain.ErrNoActiveSession
	}
	if index < 0 || index >= len(s.offers) {
		return domain.UpgradeOption{}, fmt.Errorf("%w: index %d, %d offers", domain.ErrInvalidChoice, index, len(s.offers))
	}

	chosen := s.offers[index]
	if s.effects != nil {
		if err := s.effects.Apply(ctx, chosen); err != nil {
			return domain.UpgradeOption{}, fmt.Errorf("failed to apply %s: %w", chosen.Key, err)
		}
	}

	s.ledger.Increment(chosen.Key)
	s.state = domain.DraftResolved
	s.reset()

	return chosen, nil
}

// Abandon discards the active draft without recording a purchase
func (s *Session) Abandon() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.DraftIdle {
		return domain.ErrNoActiveSession
	}
	s.reset()
	return nil
}

// State returns the current state
func (s *Session) State() domain.DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Offers returns the offers of the active draft, nil when idle
func (s *Session) Offers() []domain.UpgradeOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyOffers()
}

// ID returns the active draft's identifier, empty when idle
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// StartedAt returns when the active draft started
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// PurchaseCount returns how many times the option has been confirmed
func (s *Session) PurchaseCount(optionKey string) int {
	return s.ledger.Count(optionKey)
}

// Ledger returns the session's purchase ledger
func (s *Session) Ledger() Ledger {
	return s.ledger
}

// PoolKeys returns the pool's current order; used to check membership is preserved
func (s *Session) PoolKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, len(s.pool))
	for i, opt := range s.pool {
		keys[i] = opt.Key
	}
	return keys
}

func (s *Session) reset() {
	s.state = domain.DraftIdle
	s.id = ""
	s.offers = nil
	s.startedAt = time.Time{}
}

func (s *Session) copyOffers() []domain.UpgradeOption {
	if s.offers == nil {
		return nil
	}
	out := make([]domain.UpgradeOption, len(s.offers))
	copy(out, s.offers)
	return out
}
