package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/alert"
	"aegis/internal/platform/config"
)

// staticContext stands in for the FAQ loader.
type staticContext struct {
	context string
}

func (s staticContext) BuildContext(_, _ string) string {
	return s.context
}

func testAlert() alert.Request {
	return alert.Request{
		EventName:   "Fire Drill",
		Description: "Please leave the building",
		Urgency:     alert.UrgencyHigh,
		EventID:     "spring-hackathon",
	}
}

func TestNotifyInitiatesCall(t *testing.T) {
	var (
		gotPath    string
		gotAuth    string
		gotPayload map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	svc := New(
		config.VAPI{APIKey: "vapi-key", PhoneNumberID: "pn-123", APIURL: srv.URL},
		staticContext{context: "assistant instructions with FAQ"},
	)

	err := svc.Notify(context.Background(), "+15550000001", testAlert())
	require.NoError(t, err)

	assert.Equal(t, "/call", gotPath)
	assert.Equal(t, "Bearer vapi-key", gotAuth)
	assert.Equal(t, "pn-123", gotPayload["phoneNumberId"])

	customer, ok := gotPayload["customer"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "+15550000001", customer["number"])

	assistant, ok := gotPayload["assistant"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, testAlert().SpokenMessage(), assistant["firstMessage"])
	assert.Equal(t, "assistant instructions with FAQ", assistant["systemMessage"])

	model, ok := assistant["model"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "openai", model["provider"])
	assert.Equal(t, "gpt-4", model["model"])
}

func TestNotifyProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer srv.Close()

	svc := New(config.VAPI{APIKey: "bad-key", PhoneNumberID: "pn-123", APIURL: srv.URL}, staticContext{})

	err := svc.Notify(context.Background(), "+15550000001", testAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNotifyNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	svc := New(config.VAPI{APIKey: "vapi-key", PhoneNumberID: "pn-123", APIURL: srv.URL}, staticContext{})

	err := svc.Notify(context.Background(), "+15550000001", testAlert())
	assert.Error(t, err)
}
