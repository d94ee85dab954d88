package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UpgradeDraft_Go/internal/catalog"
	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/draft"
	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/levelup"
	"github.com/osse101/UpgradeDraft_Go/internal/player"
)

const testAPIKey = "test-key"

type pingPool struct{ mock.Mock }

func (p *pingPool) Ping(ctx context.Context) error { return p.Called(ctx).Error(0) }
func (p *pingPool) Close()                         {}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	captureLogs(t)

	cat, err := catalog.New(catalog.File{
		Version: catalog.SchemaVersion,
		Slots:   3,
		Wage:    20,
		Options: []domain.UpgradeOption{
			{Key: "alpha", Cost: 5, PurchaseLimit: 1},
			{Key: "beta", Cost: 5},
			{Key: "gamma", Cost: 5},
		},
	})
	require.NoError(t, err)

	svc := levelup.NewService(cat, event.NewMemoryBus(), levelup.Config{
		Player: player.Config{MaxHealth: 10, ThresholdBase: 10},
		Random: draft.NewSeededSource(1),
	})
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })

	pool := &pingPool{}
	pool.On("Ping", mock.Anything).Return(nil)

	return NewRouter(Options{APIKey: testAPIKey, DBPool: pool, Levelup: svc})
}

func call(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_DraftLifecycle(t *testing.T) {
	h := newTestRouter(t)

	rec := call(t, h, http.MethodPost, "/api/v1/players", map[string]string{"player_id": "hero"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = call(t, h, http.MethodPost, "/api/v1/players/hero/experience", map[string]float64{"amount": 10})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var exp domain.ExperienceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exp))
	assert.Equal(t, 1, exp.Crossings)
	require.NotNil(t, exp.Draft)
	assert.Equal(t, domain.DraftAwaitingChoice, exp.Draft.State)
	require.Len(t, exp.Draft.Offers, 3)
	assert.Equal(t, int64(20), exp.Player.Balance)

	rec = call(t, h, http.MethodPost, "/api/v1/players/hero/draft/start", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, h, http.MethodPost, "/api/v1/players/hero/draft/confirm", map[string]int{"index": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	chosen := exp.Draft.Offers[0].Option.Key
	rec = call(t, h, http.MethodPost, "/api/v1/players/hero/draft/confirm", map[string]int{"index": 0})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.DraftResolution
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, chosen, res.Chosen.Key)
	assert.Equal(t, 1, res.PurchaseCount)
	assert.Equal(t, int64(15), res.Balance)

	rec = call(t, h, http.MethodGet, "/api/v1/players/hero/ledger/"+chosen, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = call(t, h, http.MethodGet, "/api/v1/players/hero/draft", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"state":"idle"`)

	rec = call(t, h, http.MethodPost, "/api/v1/players/hero/draft/abandon", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	h := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/options", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownPlayer(t *testing.T) {
	h := newTestRouter(t)

	rec := call(t, h, http.MethodGet, "/api/v1/players/ghost/draft", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
