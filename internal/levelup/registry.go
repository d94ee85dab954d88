package levelup

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/draft"
	"github.com/osse101/UpgradeDraft_Go/internal/logger"
	"github.com/osse101/UpgradeDraft_Go/internal/metrics"
	"github.com/osse101/UpgradeDraft_Go/internal/player"
)

// participant pairs a player with their draft session.
// mu serializes level-up operations for one player.
type participant struct {
	mu      sync.Mutex
	player  *player.Player
	session *draft.Session
}

// registry holds participants in an LRU with idle expiration.
// Each access refreshes the entry's expiry, so only idle players are dropped.
type registry struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, *participant]
}

func newRegistry(size int, ttl time.Duration) *registry {
	if size <= 0 {
		size = DefaultMaxPlayers
	}
	if ttl <= 0 {
		ttl = DefaultPlayerTTL
	}
	onEvict := func(id string, _ *participant) {
		metrics.ActivePlayers.Dec()
		logger.FromContext(context.Background()).Debug(LogMsgPlayerEvicted, "player_id", id)
	}
	return &registry{
		lru: expirable.NewLRU[string, *participant](size, onEvict, ttl),
	}
}

// create adds a participant built by build, failing when the id is taken
func (r *registry) create(id string, build func() *participant) (*participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lru.Contains(id) {
		return nil, domain.ErrPlayerAlreadyExists
	}
	p := build()
	r.lru.Add(id, p)
	metrics.ActivePlayers.Inc()
	return p, nil
}

// get returns the participant and refreshes its expiry
func (r *registry) get(id string) (*participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.lru.Get(id)
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	r.lru.Add(id, p)
	return p, nil
}

func (r *registry) len() int {
	return r.lru.Len()
}

func (r *registry) purge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lru.Purge()
}
