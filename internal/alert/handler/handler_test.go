package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"aegis/internal/alert"
)

type fakeNotifier struct {
	attempted []string
	failFor   map[string]bool
}

func (f *fakeNotifier) Notify(_ context.Context, phoneNumber string, _ alert.Request) error {
	f.attempted = append(f.attempted, phoneNumber)
	if f.failFor[phoneNumber] {
		return errors.New("provider rejected request")
	}
	return nil
}

type fixedResolver struct {
	numbers []string
}

func (f fixedResolver) ResolvePhoneNumbers(context.Context) ([]string, error) {
	return f.numbers, nil
}

type fixedEvents struct {
	events []string
}

func (f fixedEvents) Events() []string {
	return f.events
}

type fixture struct {
	router http.Handler
	text   *fakeNotifier
	call   *fakeNotifier
}

func newFixture(t *testing.T, numbers []string, textConfigured bool) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	f := &fixture{text: &fakeNotifier{}, call: &fakeNotifier{}}
	var text alert.Notifier
	if textConfigured {
		text = f.text
	}
	dispatcher := alert.NewDispatcher(text, f.call, logger, nil)

	h := New(dispatcher, fixedResolver{numbers: numbers}, fixedEvents{events: []string{"spring-hackathon"}}, logger)
	r := chi.NewRouter()
	h.Register(r)
	f.router = r
	return f
}

func postAlert(t *testing.T, router http.Handler, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/alert", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validPayload() map[string]any {
	return map[string]any{
		"mode":        "text",
		"event_name":  "Fire Drill",
		"description": "Please leave the building",
		"urgency":     "high",
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) alert.Response {
	t.Helper()
	var resp alert.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode alert response: %v", err)
	}
	return resp
}

func TestAlertFanOut(t *testing.T) {
	f := newFixture(t, []string{"+15550000001", "+15550000002"}, true)

	rec := postAlert(t, f.router, validPayload())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Success || resp.RecipientsContacted != 2 {
		t.Fatalf("expected both recipients contacted, got %+v", resp)
	}
	if len(f.text.attempted) != 2 {
		t.Fatalf("expected two SMS attempts, got %v", f.text.attempted)
	}
}

func TestAlertPartialFailureStillSucceeds(t *testing.T) {
	f := newFixture(t, []string{"+15550000001", "+15550000002", "+15550000003"}, true)
	f.text.failFor = map[string]bool{"+15550000002": true}

	rec := postAlert(t, f.router, validPayload())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if !resp.Success || resp.RecipientsContacted != 2 {
		t.Fatalf("expected 2 of 3 contacted with success=true, got %+v", resp)
	}
}

func TestAlertNoRecipients(t *testing.T) {
	f := newFixture(t, nil, true)

	rec := postAlert(t, f.router, validPayload())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected a 200-shaped summary even with nobody to contact, got %d", rec.Code)
	}

	resp := decodeResponse(t, rec)
	if resp.Success || resp.RecipientsContacted != 0 {
		t.Fatalf("expected success=false with zero contacted, got %+v", resp)
	}
}

func TestAlertChannelUnavailable(t *testing.T) {
	f := newFixture(t, []string{"+15550000001"}, false)

	rec := postAlert(t, f.router, validPayload())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the text channel is not configured, got %d", rec.Code)
	}
}

func TestAlertValidation(t *testing.T) {
	f := newFixture(t, []string{"+15550000001"}, true)

	cases := map[string]map[string]any{
		"unknown mode":         {"mode": "carrier-pigeon", "event_name": "E", "description": "D", "urgency": "high"},
		"unknown urgency":      {"mode": "text", "event_name": "E", "description": "D", "urgency": "severe"},
		"missing event name":   {"mode": "text", "description": "D", "urgency": "high"},
		"missing description":  {"mode": "text", "event_name": "E", "urgency": "high"},
		"oversized event name": {"mode": "text", "event_name": strings.Repeat("x", 101), "description": "D", "urgency": "high"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rec := postAlert(t, f.router, payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if len(f.text.attempted) != 0 {
				t.Fatalf("rejected request must not dispatch, attempted %v", f.text.attempted)
			}
		})
	}
}

func TestListEvents(t *testing.T) {
	f := newFixture(t, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/alert/events", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing events, got %d", rec.Code)
	}

	var resp struct {
		Events []string `json:"events"`
		Count  int      `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode events response: %v", err)
	}
	if resp.Count != 1 || len(resp.Events) != 1 || resp.Events[0] != "spring-hackathon" {
		t.Fatalf("unexpected events response: %+v", resp)
	}
}
