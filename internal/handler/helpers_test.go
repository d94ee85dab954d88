package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/UpgradeDraft_Go/internal/levelup"
)

func newPlayerRouter(svc levelup.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/options", HandleGetOptions(svc))
	r.Post("/players", HandleRegisterPlayer(svc))
	r.Route("/players/{id}", func(r chi.Router) {
		r.Get("/", HandleGetPlayer(svc))
		r.Post("/experience", HandleAddExperience(svc))
		r.Post("/damage", HandleDamage(svc))
		r.Post("/heal", HandleHeal(svc))
		r.Get("/ledger", HandleGetLedger(svc))
		r.Get("/ledger/{option}", HandleGetPurchaseCount(svc))
		r.Get("/draft", HandleGetDraft(svc))
		r.Post("/draft/start", HandleStartDraft(svc))
		r.Post("/draft/confirm", HandleConfirmChoice(svc))
		r.Post("/draft/abandon", HandleAbandonDraft(svc))
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return v
}
