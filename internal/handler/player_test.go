package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/UpgradeDraft_Go/internal/domain"
	"github.com/osse101/UpgradeDraft_Go/internal/player"
	"github.com/osse101/UpgradeDraft_Go/mocks"
)

func TestHandleRegisterPlayer(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		setup      func(*mocks.MockLevelupService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: RegisterPlayerRequest{PlayerID: "hero"},
			setup: func(m *mocks.MockLevelupService) {
				m.On("RegisterPlayer", mock.Anything, "hero").Return(&domain.PlayerState{ID: "hero", Health: 10}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"id":"hero"`,
		},
		{
			name:       "invalid id",
			body:       RegisterPlayerRequest{PlayerID: "bad id"},
			setup:      func(m *mocks.MockLevelupService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:       "malformed json",
			body:       `{"player_id":`,
			setup:      func(m *mocks.MockLevelupService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequest,
		},
		{
			name: "already exists",
			body: RegisterPlayerRequest{PlayerID: "hero"},
			setup: func(m *mocks.MockLevelupService) {
				m.On("RegisterPlayer", mock.Anything, "hero").Return(nil, domain.ErrPlayerAlreadyExists)
			},
			wantStatus: http.StatusConflict,
			wantBody:   ErrMsgPlayerExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockLevelupService(t)
			tt.setup(svc)

			w := doRequest(t, newPlayerRouter(svc), http.MethodPost, "/players", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleGetPlayer_NotFound(t *testing.T) {
	svc := mocks.NewMockLevelupService(t)
	svc.On("GetPlayer", mock.Anything, "ghost").Return(nil, domain.ErrPlayerNotFound)

	w := doRequest(t, newPlayerRouter(svc), http.MethodGet, "/players/ghost", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrMsgPlayerNotFound, decode[ErrorResponse](t, w).Error)
}

func TestHandleAddExperience(t *testing.T) {
	t.Run("starts draft", func(t *testing.T) {
		svc := mocks.NewMockLevelupService(t)
		svc.On("AddExperience", mock.Anything, "hero", 25.0).Return(&domain.ExperienceResult{
			Player:    domain.PlayerState{ID: "hero", PendingLevelUps: 1},
			Crossings: 2,
			Draft:     &domain.DraftSnapshot{PlayerID: "hero", State: domain.DraftAwaitingChoice},
		}, nil)

		w := doRequest(t, newPlayerRouter(svc), http.MethodPost, "/players/hero/experience", ExperienceRequest{Amount: 25})

		assert.Equal(t, http.StatusOK, w.Code)
		res := decode[map[string]interface{}](t, w)
		assert.Equal(t, float64(2), res["crossings"])
		assert.Contains(t, w.Body.String(), `"state":"awaiting_choice"`)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc := mocks.NewMockLevelupService(t)

		w := doRequest(t, newPlayerRouter(svc), http.MethodPost, "/players/hero/experience", ExperienceRequest{Amount: 0})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Must be greater than 0", decode[ValidationErrorResponse](t, w).Fields["amount"])
	})

	t.Run("rejects oversized amounts", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"over limit", `{"amount": 1e20}`},
			{"just over limit", `{"amount": 1000000001}`},
			{"overflows float64", `{"amount": 1e400}`},
			{"infinity literal", `{"amount": Infinity}`},
			{"nan literal", `{"amount": NaN}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := mocks.NewMockLevelupService(t)

				w := doRequest(t, newPlayerRouter(svc), http.MethodPost, "/players/hero/experience", tt.body)

				assert.Equal(t, http.StatusBadRequest, w.Code)
				svc.AssertNotCalled(t, "AddExperience", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("accepts the largest grant", func(t *testing.T) {
		svc := mocks.NewMockLevelupService(t)
		svc.On("AddExperience", mock.Anything, "hero", player.MaxExperienceGrant).
			Return(&domain.ExperienceResult{Player: domain.PlayerState{ID: "hero"}}, nil)

		w := doRequest(t, newPlayerRouter(svc), http.MethodPost, "/players/hero/experience", `{"amount": 1000000000}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandleDamageAndHeal(t *testing.T) {
	svc := mocks.NewMockLevelupService(t)
	svc.On("Damage", mock.Anything, "hero", 4).Return(&domain.PlayerState{ID: "hero", Health: 6}, nil)
	svc.On("Heal", mock.Anything, "hero", 2).Return(&domain.PlayerState{ID: "hero", Health: 8}, nil)
	router := newPlayerRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/players/hero/damage", HealthChangeRequest{Amount: 4})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 6, decode[domain.PlayerState](t, w).Health)

	w = doRequest(t, router, http.MethodPost, "/players/hero/heal", HealthChangeRequest{Amount: 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8, decode[domain.PlayerState](t, w).Health)

	w = doRequest(t, router, http.MethodPost, "/players/hero/heal", HealthChangeRequest{Amount: -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleLedger(t *testing.T) {
	svc := mocks.NewMockLevelupService(t)
	svc.On("GetLedger", mock.Anything, "hero").Return(map[string]int{"alpha": 2}, nil)
	svc.On("PurchaseCount", mock.Anything, "hero", "alpha").Return(2, nil)
	svc.On("PurchaseCount", mock.Anything, "hero", "nope").Return(0, domain.ErrUnknownOption)
	router := newPlayerRouter(svc)

	w := doRequest(t, router, http.MethodGet, "/players/hero/ledger", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"alpha": 2}, decode[LedgerResponse](t, w).Purchases)

	w = doRequest(t, router, http.MethodGet, "/players/hero/ledger/alpha", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[PurchaseCountResponse](t, w).Count)

	w = doRequest(t, router, http.MethodGet, "/players/hero/ledger/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetOptions(t *testing.T) {
	svc := mocks.NewMockLevelupService(t)
	svc.On("GetOptions", mock.Anything).Return([]domain.UpgradeOption{{Key: "alpha", Cost: 5}})

	w := doRequest(t, newPlayerRouter(svc), http.MethodGet, "/options", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	opts := decode[OptionsResponse](t, w).Options
	assert.Len(t, opts, 1)
	assert.Equal(t, "alpha", opts[0].Key)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{domain.ErrInvalidChoice, http.StatusBadRequest},
		{domain.ErrInsufficientFunds, http.StatusBadRequest},
		{domain.ErrSessionAlreadyActive, http.StatusConflict},
		{domain.ErrNoActiveSession, http.StatusConflict},
		{domain.ErrPlayerDefeated, http.StatusConflict},
		{domain.ErrPlayerNotFound, http.StatusNotFound},
		{assert.AnError, http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.wantStatus, status, "error %v", tt.err)
		assert.NotEmpty(t, msg)
	}

	wrapped := mapWrapped(domain.ErrInsufficientFunds)
	status, msg := mapServiceErrorToUserMessage(wrapped)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, ErrMsgNotEnoughMoney, msg)
}
