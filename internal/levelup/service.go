package levelup

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/UpgradeDraft_Go/internal/catalog"
	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/draft"
	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
	"github.com/osse101/UpgradeDraft_Go/internal/metrics"
	"github.com/osse101/UpgradeDraft_Go/internal/player"
)

// Service defines the level-up draft business logic
type Service interface {
	// Catalog
	GetOptions(ctx context.Context) []domain.UpgradeOption

	// Players
	RegisterPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error)
	GetPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error)
	AddExperience(ctx context.Context, playerID string, amount float64) (*domain.ExperienceResult, error)
	Damage(ctx context.Context, playerID string, amount int) (*domain.PlayerState, error)
	Heal(ctx context.Context, playerID string, amount int) (*domain.PlayerState, error)

	// Drafts
	StartDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error)
	ConfirmChoice(ctx context.Context, playerID string, index int) (*domain.DraftResolution, error)
	AbandonDraft(ctx context.Context, playerID string) error
	GetActiveDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error)

	// Ledger
	PurchaseCount(ctx context.Context, playerID, optionKey string) (int, error)
	GetLedger(ctx context.Context, playerID string) (map[string]int, error)

	Shutdown(ctx context.Context) error
}

// Config tunes the service
type Config struct {
	Player     player.Config
	MaxPlayers int
	PlayerTTL  time.Duration
	Random     draft.RandomSource // nil uses the crypto source
}

type service struct {
	catalog *catalog.Catalog
	bus     event.Bus
	cfg     Config
	rng     draft.RandomSource
	weights draft.WeightFunc
	players *registry
	tracer  trace.Tracer
}

// a table of all 1s draws exactly like the binary policy
func uniformWeights(table map[string]float64) bool {
	for _, w := range table {
		if w != 1 {
			return false
		}
	}
	return true
}

// NewService creates a new level-up service over a validated catalog
func NewService(cat *catalog.Catalog, bus event.Bus, cfg Config) Service {
	rng := cfg.Random
	if rng == nil {
		rng = draft.NewCryptoSource()
	}

	var weights draft.WeightFunc
	if table := cat.RarityWeights(); !uniformWeights(table) {
		weights = draft.RarityWeights(table, 1)
	}

	return &service{
		catalog: cat,
		bus:     bus,
		cfg:     cfg,
		rng:     rng,
		weights: weights,
		players: newRegistry(cfg.MaxPlayers, cfg.PlayerTTL),
		tracer:  otel.Tracer(TracerName),
	}
}

func (s *service) GetOptions(ctx context.Context) []domain.UpgradeOption {
	return s.catalog.Options()
}

func (s *service) RegisterPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	pt, err := s.players.create(playerID, func() *participant {
		return s.newParticipant(playerID)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgPlayerRegistered, "player_id", playerID)
	state := pt.player.Snapshot()
	return &state, nil
}

func (s *service) newParticipant(playerID string) *participant {
	p := player.New(playerID, s.cfg.Player)

	var policy draft.Policy = draft.NewBinaryPolicy(p)
	if s.weights != nil {
		policy = draft.NewWeightedPolicy(policy, s.weights)
	}
	sampler := draft.NewSampler(policy, s.rng, draft.WithFallbackHook(func(chosen domain.UpgradeOption, remaining float64) {
		metrics.WeightFallbacks.Inc()
		logger.Debug("Weight walk fell back to last eligible option", "player_id", playerID, "option", chosen.Key, "remaining", remaining)
	}))

	return &participant{
		player: p,
		session: draft.NewSession(draft.SessionConfig{
			Pool:     s.catalog.Options(),
			Sampler:  sampler,
			Effects:  &upgradeEffects{player: p, bonus: s.catalog.LevelUpBonus()},
			Liveness: p,
		}),
	}
}

func (s *service) GetPlayer(ctx context.Context, playerID string) (*domain.PlayerState, error) {
	pt, err := s.players.get(playerID)
	if err != nil {
		return nil, err
	}
	state := pt.player.Snapshot()
	return &state, nil
}

// AddExperience queues one level-up per threshold crossed. When no draft is
// active the first queued level-up starts immediately.
func (s *service) AddExperience(ctx context.Context, playerID string, amount float64) (*domain.ExperienceResult, error) {
	ctx, span := s.tracer.Start(ctx, SpanAddExperience, trace.WithAttributes(attribute.String(AttrPlayerID, playerID)))
	defer span.End()

	pt, err := s.players.get(playerID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	pt.mu.Lock()
	crossings, err := pt.player.AddExperience(amount)
	if err != nil {
		pt.mu.Unlock()
		return nil, s.fail(span, err)
	}

	var events []event.Event
	var started *domain.DraftSnapshot
	if crossings > 0 {
		state := pt.player.Snapshot()
		events = append(events, event.NewThresholdCrossedEvent(playerID, state.Level, crossings, state.PendingLevelUps))
		logger.FromContext(ctx).Info(LogMsgThresholdCrossed, "player_id", playerID, "level", state.Level, "crossings", crossings)

		if pt.session.State() == domain.DraftIdle && pt.player.Alive() {
			snap, evt, err := s.beginLevelUp(ctx, pt)
			if err != nil {
				logger.FromContext(ctx).Warn(LogMsgAutoStartFailed, "player_id", playerID, "error", err)
			} else {
				started = snap
				events = append(events, evt)
			}
		}
	}
	result := &domain.ExperienceResult{
		Player:    pt.player.Snapshot(),
		Crossings: crossings,
		Draft:     started,
	}
	pt.mu.Unlock()

	s.publish(ctx, events...)
	return result, nil
}

func (s *service) Damage(ctx context.Context, playerID string, amount int) (*domain.PlayerState, error) {
	return s.adjustHealth(playerID, amount, func(p *player.Player) { p.Damage(amount) })
}

func (s *service) Heal(ctx context.Context, playerID string, amount int) (*domain.PlayerState, error) {
	return s.adjustHealth(playerID, amount, func(p *player.Player) { p.Heal(amount) })
}

func (s *service) adjustHealth(playerID string, amount int, apply func(*player.Player)) (*domain.PlayerState, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	pt, err := s.players.get(playerID)
	if err != nil {
		return nil, err
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()
	apply(pt.player)
	state := pt.player.Snapshot()
	return &state, nil
}

// StartDraft starts a draft for the player. A queued level-up is consumed
// and its wage deposited before offers are sampled.
func (s *service) StartDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error) {
	ctx, span := s.tracer.Start(ctx, SpanStartDraft, trace.WithAttributes(attribute.String(AttrPlayerID, playerID)))
	defer span.End()

	pt, err := s.players.get(playerID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	pt.mu.Lock()
	snap, evt, err := s.beginLevelUp(ctx, pt)
	sessionID := pt.session.ID()
	pt.mu.Unlock()

	if err != nil {
		s.reject(ctx, playerID, sessionID, -1, err)
		return nil, s.fail(span, err)
	}

	span.SetAttributes(attribute.String(AttrSessionID, snap.SessionID), attribute.Int(AttrOffers, len(snap.Offers)))
	s.publish(ctx, evt)
	return snap, nil
}

// beginLevelUp must be called with pt.mu held
func (s *service) beginLevelUp(ctx context.Context, pt *participant) (*domain.DraftSnapshot, event.Event, error) {
	if pt.session.State() != domain.DraftIdle {
		return nil, event.Event{}, domain.ErrSessionAlreadyActive
	}
	if !pt.player.Alive() {
		return nil, event.Event{}, domain.ErrPlayerDefeated
	}

	var pay event.LevelUpPayment
	if pt.player.TakePendingLevelUp() {
		pay.Paid = true
		pay.BaseWage = s.catalog.Wage()
		pay.WageBonus = int64(pt.player.Stat(player.StatWageBonus))
		if wage := pay.Total(); wage > 0 {
			if err := pt.player.Deposit(wage); err != nil {
				return nil, event.Event{}, err
			}
		}
	}
	pay.Balance = pt.player.Balance()

	if _, err := pt.session.Start(s.catalog.Slots()); err != nil {
		return nil, event.Event{}, err
	}

	snap := s.snapshot(pt)
	log := logger.FromContext(ctx)
	if len(snap.Offers) == 0 {
		log.Warn(LogMsgEmptyDraft, "player_id", snap.PlayerID, "session_id", snap.SessionID)
	}
	log.Info(LogMsgDraftStarted, "player_id", snap.PlayerID, "session_id", snap.SessionID, "offers", len(snap.Offers), "wage", pay.Total())

	return snap, event.NewDraftStartedEvent(*snap, pay), nil
}

// startQueued begins the next pending level-up once the previous draft has
// ended. The caller holds pt.mu.
func (s *service) startQueued(ctx context.Context, pt *participant) (*domain.DraftSnapshot, []event.Event) {
	if pt.player.PendingLevelUps() == 0 || !pt.player.Alive() {
		return nil, nil
	}
	next, evt, err := s.beginLevelUp(ctx, pt)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgAutoStartFailed, "player_id", pt.player.ID(), "error", err)
		return nil, nil
	}
	return next, []event.Event{evt}
}

// ConfirmChoice resolves the active draft with the offer at index. The next
// queued level-up, if any, starts right after.
func (s *service) ConfirmChoice(ctx context.Context, playerID string, index int) (*domain.DraftResolution, error) {
	ctx, span := s.tracer.Start(ctx, SpanConfirmChoice, trace.WithAttributes(
		attribute.String(AttrPlayerID, playerID),
		attribute.Int(AttrIndex, index),
	))
	defer span.End()

	pt, err := s.players.get(playerID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	pt.mu.Lock()
	sessionID := pt.session.ID()
	chosen, err := pt.session.Confirm(ctx, index)
	if err != nil {
		pt.mu.Unlock()
		s.reject(ctx, playerID, sessionID, index, err)
		return nil, s.fail(span, err)
	}

	res := &domain.DraftResolution{
		SessionID:     sessionID,
		PlayerID:      playerID,
		Slot:          index,
		Chosen:        chosen,
		PurchaseCount: pt.session.PurchaseCount(chosen.Key),
		Balance:       pt.player.Balance(),
	}
	events := []event.Event{event.NewDraftResolvedEvent(*res)}
	logger.FromContext(ctx).Info(LogMsgDraftResolved, "player_id", playerID, "session_id", sessionID, "option", chosen.Key)

	next, queued := s.startQueued(ctx, pt)
	res.NextDraft = next
	events = append(events, queued...)
	pt.mu.Unlock()

	span.SetAttributes(attribute.String(AttrSessionID, sessionID), attribute.String(AttrOptionKey, chosen.Key))
	s.publish(ctx, events...)
	return res, nil
}

// AbandonDraft discards the active draft. Nothing is bought or refunded.
// Like ConfirmChoice, the next queued level-up starts right after.
func (s *service) AbandonDraft(ctx context.Context, playerID string) error {
	ctx, span := s.tracer.Start(ctx, SpanAbandonDraft, trace.WithAttributes(attribute.String(AttrPlayerID, playerID)))
	defer span.End()

	pt, err := s.players.get(playerID)
	if err != nil {
		return s.fail(span, err)
	}

	pt.mu.Lock()
	sessionID := pt.session.ID()
	if err = pt.session.Abandon(); err != nil {
		pt.mu.Unlock()
		s.reject(ctx, playerID, sessionID, -1, err)
		return s.fail(span, err)
	}

	logger.FromContext(ctx).Info(LogMsgDraftAbandoned, "player_id", playerID, "session_id", sessionID)
	events := []event.Event{event.NewDraftAbandonedEvent(playerID, sessionID)}
	_, queued := s.startQueued(ctx, pt)
	events = append(events, queued...)
	pt.mu.Unlock()

	s.publish(ctx, events...)
	return nil
}

// GetActiveDraft returns the player's draft; an idle snapshot when none is active
func (s *service) GetActiveDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error) {
	pt, err := s.players.get(playerID)
	if err != nil {
		return nil, err
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()
	return s.snapshot(pt), nil
}

func (s *service) PurchaseCount(ctx context.Context, playerID, optionKey string) (int, error) {
	if _, err := s.catalog.Get(optionKey); err != nil {
		return 0, err
	}
	pt, err := s.players.get(playerID)
	if err != nil {
		return 0, err
	}
	return pt.session.PurchaseCount(optionKey), nil
}

func (s *service) GetLedger(ctx context.Context, playerID string) (map[string]int, error) {
	pt, err := s.players.get(playerID)
	if err != nil {
		return nil, err
	}
	return pt.session.Ledger().Snapshot(), nil
}

// Shutdown drops all in-memory players
func (s *service) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgServiceShutdown, "players", s.players.len())
	s.players.purge()
	log.Info(LogMsgServiceShutdownEnd)
	return nil
}

// snapshot must be called with pt.mu held
func (s *service) snapshot(pt *participant) *domain.DraftSnapshot {
	affordability := draft.NewBinaryPolicy(pt.player)
	options := pt.session.Offers()

	offers := make([]domain.Offer, 0, len(options))
	for i, opt := range options {
		offers = append(offers, domain.Offer{
			Slot:       i,
			Option:     opt,
			Affordable: affordability.Affordable(opt),
		})
	}

	return &domain.DraftSnapshot{
		SessionID: pt.session.ID(),
		PlayerID:  pt.player.ID(),
		State:     pt.session.State(),
		Level:     pt.player.Snapshot().Level,
		Offers:    offers,
		StartedAt: pt.session.StartedAt(),
	}
}

func (s *service) reject(ctx context.Context, playerID, sessionID string, index int, err error) {
	reason := rejectionReason(err)
	logger.FromContext(ctx).Info(LogMsgDraftRejected, "player_id", playerID, "reason", reason, "error", err)
	s.publish(ctx, event.NewDraftRejectedEvent(playerID, sessionID, index, reason))
}

func (s *service) publish(ctx context.Context, events ...event.Event) {
	if s.bus == nil {
		return
	}
	for _, evt := range events {
		if err := s.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
}

func (s *service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidChoice):
		return ReasonInvalidChoice
	case errors.Is(err, domain.ErrInsufficientFunds):
		return ReasonInsufficientFunds
	case errors.Is(err, domain.ErrSessionAlreadyActive):
		return ReasonAlreadyActive
	case errors.Is(err, domain.ErrNoActiveSession):
		return ReasonNoActiveSession
	case errors.Is(err, domain.ErrPlayerDefeated):
		return ReasonPlayerDefeated
	default:
		return ReasonEffectFailed
	}
}
