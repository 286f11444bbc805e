package alert

import (
	"fmt"
	"strings"
)

// Urgency is the fixed ordered severity set for alerts.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// ParseUrgency validates and returns an Urgency.
func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(s); u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return u, nil
	default:
		return "", fmt.Errorf("unknown urgency: %q", s)
	}
}

func (u Urgency) String() string {
	return string(u)
}

// Channel is the notification medium for a dispatch.
type Channel string

const (
	ChannelText Channel = "text"
	ChannelCall Channel = "call"
)

// ParseChannel validates and returns a Channel.
func ParseChannel(s string) (Channel, error) {
	switch c := Channel(s); c {
	case ChannelText, ChannelCall:
		return c, nil
	default:
		return "", fmt.Errorf("unknown channel: %q", s)
	}
}

// Request is a single logical alert, consumed once per dispatch. EventID is
// optional and keys the FAQ document lookup for the voice channel.
type Request struct {
	EventName   string
	Description string
	Urgency     Urgency
	EventID     string
}

// SpokenMessage is the short opening read to a recipient when a voice call
// connects, and the seed of the assistant context.
func (a Request) SpokenMessage() string {
	return fmt.Sprintf(
		"This is an urgent %s alert from your event organizer. %s. %s. Please follow safety instructions and contact event staff if you need assistance.",
		a.Urgency, a.EventName, a.Description,
	)
}

// SMSBody is the text-channel rendering of the alert.
func (a Request) SMSBody() string {
	return fmt.Sprintf("🚨 %s\n\n%s\n\nUrgency: %s\n\nReply for more info.",
		strings.ToUpper(a.EventName), a.Description, strings.ToUpper(string(a.Urgency)))
}

// Response summarizes a fan-out. Success is true iff at least one recipient
// was contacted; it is a summary, not a per-recipient ledger.
type Response struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	RecipientsContacted int    `json:"recipients_contacted"`
}
