package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/sse"
)

type mockDraftService struct {
	mock.Mock
}

func (m *mockDraftService) GetActiveDraft(ctx context.Context, playerID string) (*domain.DraftSnapshot, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftSnapshot), args.Error(1)
}

func (m *mockDraftService) ConfirmChoice(ctx context.Context, playerID string, index int) (*domain.DraftResolution, error) {
	args := m.Called(ctx, playerID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DraftResolution), args.Error(1)
}

func (m *mockDraftService) AbandonDraft(ctx context.Context, playerID string) error {
	return m.Called(ctx, playerID).Error(0)
}

func setup(t *testing.T, svc DraftService) (*sse.Hub, string) {
	t.Helper()
	hub := sse.NewHub()
	hub.Start()

	r := chi.NewRouter()
	r.Get("/players/{id}/ws", NewServer(svc, hub).Handler())
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		hub.Stop()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/players/p1/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ServerMsg {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ServerMsg
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func awaitingSnapshot() *domain.DraftSnapshot {
	return &domain.DraftSnapshot{
		SessionID: "s1",
		PlayerID:  "p1",
		State:     domain.DraftAwaitingChoice,
		Level:     1,
		Offers:    []domain.Offer{{Slot: 0, Option: domain.UpgradeOption{Key: "alpha"}, Affordable: true}},
	}
}

func TestServer_SnapshotThenChoose(t *testing.T) {
	svc := new(mockDraftService)
	svc.On("GetActiveDraft", mock.Anything, "p1").Return(awaitingSnapshot(), nil)
	svc.On("ConfirmChoice", mock.Anything, "p1", 0).Return(&domain.DraftResolution{
		SessionID: "s1", PlayerID: "p1", Chosen: domain.UpgradeOption{Key: "alpha"}, PurchaseCount: 1,
	}, nil)
	_, url := setup(t, svc)

	conn := dial(t, url)

	snap := read(t, conn)
	assert.Equal(t, TypeSnapshot, snap.Type)
	require.NotNil(t, snap.Draft)
	assert.Equal(t, "s1", snap.Draft.SessionID)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": TypeChoose, "index": 0}))
	res := read(t, conn)
	assert.Equal(t, TypeResolved, res.Type)
	require.NotNil(t, res.Resolution)
	assert.Equal(t, "alpha", res.Resolution.Chosen.Key)
	assert.Equal(t, 1, res.Resolution.PurchaseCount)

	svc.AssertExpectations(t)
}

func TestServer_ChooseErrorsKeepConnection(t *testing.T) {
	svc := new(mockDraftService)
	svc.On("GetActiveDraft", mock.Anything, "p1").Return(awaitingSnapshot(), nil)
	svc.On("ConfirmChoice", mock.Anything, "p1", 5).Return(nil, domain.ErrInvalidChoice)
	svc.On("AbandonDraft", mock.Anything, "p1").Return(nil)
	_, url := setup(t, svc)

	conn := dial(t, url)
	read(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": TypeChoose, "index": 5}))
	msg := read(t, conn)
	assert.Equal(t, TypeError, msg.Type)
	assert.Equal(t, CodeInvalidChoice, msg.Code)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": TypeChoose}))
	assert.Equal(t, CodeBadMessage, read(t, conn).Code)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, CodeBadMessage, read(t, conn).Code)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": TypeAbandon}))
	assert.Equal(t, TypeAbandoned, read(t, conn).Type)

	svc.AssertExpectations(t)
}

func TestServer_ForwardsPlayerEvents(t *testing.T) {
	svc := new(mockDraftService)
	svc.On("GetActiveDraft", mock.Anything, "p1").Return(&domain.DraftSnapshot{PlayerID: "p1", State: domain.DraftIdle}, nil)
	hub, url := setup(t, svc)

	conn := dial(t, url)
	read(t, conn)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast("draft.started", "p2", nil)
	hub.Broadcast("draft.started", "p1", map[string]int{"level": 2})

	msg := read(t, conn)
	assert.Equal(t, TypeEvent, msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, "p1", msg.Event.PlayerID)
	assert.Equal(t, "draft.started", msg.Event.Type)
}

func TestServer_UnknownPlayerRejectedBeforeUpgrade(t *testing.T) {
	svc := new(mockDraftService)
	svc.On("GetActiveDraft", mock.Anything, "p1").Return(nil, domain.ErrPlayerNotFound)
	_, url := setup(t, svc)

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)
}
