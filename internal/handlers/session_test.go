package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"smartpulse-backend/internal/models"
)

type stubSessionWriter struct {
	created *models.WorkSession
	err     error
}

func (s *stubSessionWriter) Create(_ context.Context, session *models.WorkSession) error {
	s.created = session
	return s.err
}

func TestSessionHandler_Ingest_RejectsMissingStartTime(t *testing.T) {
	store := &stubSessionWriter{}
	h := NewSessionHandler(store, nil)

	body := `{"productive":50,"unproductive":50}`
	rr := httptest.NewRecorder()
	h.Ingest(rr, authedRequest(http.MethodPost, "/api/v1/sessions", body, uuid.New()))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without startTime, got %d", rr.Code)
	}
	if store.created != nil {
		t.Fatalf("session should not be stored without startTime")
	}
}

func TestSessionHandler_Ingest_RejectsNegativeCounters(t *testing.T) {
	store := &stubSessionWriter{}
	h := NewSessionHandler(store, nil)

	body := `{"startTime":"2026-03-02T09:00:00Z","productive":-5}`
	rr := httptest.NewRecorder()
	h.Ingest(rr, authedRequest(http.MethodPost, "/api/v1/sessions", body, uuid.New()))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for negative counters, got %d", rr.Code)
	}
	if store.created != nil {
		t.Fatalf("session should not be stored with negative counters")
	}
}

func TestSessionHandler_Ingest_RejectsMalformedBody(t *testing.T) {
	store := &stubSessionWriter{}
	h := NewSessionHandler(store, nil)

	rr := httptest.NewRecorder()
	h.Ingest(rr, authedRequest(http.MethodPost, "/api/v1/sessions", `{"startTime":`, uuid.New()))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed body, got %d", rr.Code)
	}
}
