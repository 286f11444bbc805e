// Package voice places outbound alert calls through the VAPI conversational
// voice API. Each call opens with a spoken alert message and leaves an
// assistant on the line that answers follow-up questions from an
// event-specific FAQ context.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"aegis/internal/alert"
	"aegis/internal/platform/config"
)

// ContextBuilder composes the assistant's behavioral instructions for a call.
type ContextBuilder interface {
	BuildContext(eventID, alertMessage string) string
}

// Service is the call-channel notifier.
type Service struct {
	cfg    config.VAPI
	faq    ContextBuilder
	client *http.Client
}

// New constructs the voice service. Callers gate construction on
// cfg.Complete().
func New(cfg config.VAPI, faq ContextBuilder) *Service {
	return &Service{
		cfg:    cfg,
		faq:    faq,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type callPayload struct {
	PhoneNumberID string        `json:"phoneNumberId"`
	Customer      callCustomer  `json:"customer"`
	Assistant     callAssistant `json:"assistant"`
}

type callCustomer struct {
	Number string `json:"number"`
}

type callAssistant struct {
	FirstMessage  string         `json:"firstMessage"`
	SystemMessage string         `json:"systemMessage"`
	Model         assistantModel `json:"model"`
	Voice         assistantVoice `json:"voice"`
}

type assistantModel struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

type assistantVoice struct {
	Provider string `json:"provider"`
	VoiceID  string `json:"voiceId"`
}

// Notify initiates one outbound call to the given phone number. The spoken
// opening and the assistant context are both derived from the alert; the
// context additionally embeds the event FAQ when one exists.
func (s *Service) Notify(ctx context.Context, phoneNumber string, a alert.Request) error {
	spoken := a.SpokenMessage()
	payload := callPayload{
		PhoneNumberID: s.cfg.PhoneNumberID,
		Customer:      callCustomer{Number: phoneNumber},
		Assistant: callAssistant{
			FirstMessage:  spoken,
			SystemMessage: s.faq.BuildContext(a.EventID, spoken),
			Model:         assistantModel{Provider: "openai", Model: "gpt-4", Temperature: 0.1},
			Voice:         assistantVoice{Provider: "11labs", VoiceID: "burt"},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL+"/call", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("initiate call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("vapi rejected call: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
