package config

import (
	"os"
	"strings"
)

// Twilio carries SMS provider credentials. Complete() gates whether the text
// channel is constructed at startup.
type Twilio struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	APIURL     string
}

func (t Twilio) Complete() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

// VAPI carries voice provider credentials.
type VAPI struct {
	APIKey        string
	PhoneNumberID string
	APIURL        string
}

func (v VAPI) Complete() bool {
	return v.APIKey != "" && v.PhoneNumberID != ""
}

// Server captures process-level configuration, read once at startup.
type Server struct {
	Addr      string
	EventsDir string
	// FallbackNumbers are always part of the alert fan-out target set,
	// regardless of who has registered.
	FallbackNumbers []string
	Twilio          Twilio
	VAPI            VAPI
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("AEGIS_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	eventsDir := os.Getenv("AEGIS_EVENTS_DIR")
	if eventsDir == "" {
		eventsDir = "events"
	}

	twilioURL := os.Getenv("TWILIO_API_URL")
	if twilioURL == "" {
		twilioURL = "https://api.twilio.com"
	}
	vapiURL := os.Getenv("VAPI_API_URL")
	if vapiURL == "" {
		vapiURL = "https://api.vapi.ai"
	}

	return Server{
		Addr:            addr,
		EventsDir:       eventsDir,
		FallbackNumbers: splitNumbers(os.Getenv("ALERT_PHONE_NUMBERS")),
		Twilio: Twilio{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
			APIURL:     twilioURL,
		},
		VAPI: VAPI{
			APIKey:        os.Getenv("VAPI_API_KEY"),
			PhoneNumberID: os.Getenv("VAPI_PHONE_NUMBER_ID"),
			APIURL:        vapiURL,
		},
	}
}

func splitNumbers(raw string) []string {
	if raw == "" {
		return nil
	}
	var numbers []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			numbers = append(numbers, n)
		}
	}
	return numbers
}
