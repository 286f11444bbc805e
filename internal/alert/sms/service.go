// Package sms sends text alerts through the Twilio Messages API.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aegis/internal/alert"
	"aegis/internal/platform/config"
)

// Service is the text-channel notifier. Each Notify call is a single
// stateless request/response exchange: no retry, no backoff.
type Service struct {
	cfg    config.Twilio
	client *http.Client
}

// New constructs the SMS service. Callers gate construction on
// cfg.Complete(); the service itself assumes usable credentials.
func New(cfg config.Twilio) *Service {
	return &Service{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Notify sends the alert as one SMS to the given phone number.
func (s *Service) Notify(ctx context.Context, phoneNumber string, a alert.Request) error {
	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", a.SMSBody())

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.cfg.APIURL, s.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Twilio error bodies carry a message and numeric code.
		var twilioErr struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&twilioErr)
		if twilioErr.Message != "" {
			return fmt.Errorf("twilio rejected message (status %d, code %d): %s", resp.StatusCode, twilioErr.Code, twilioErr.Message)
		}
		return fmt.Errorf("twilio rejected message: status %d", resp.StatusCode)
	}
	return nil
}
