// Package faq loads event FAQ documents and composes the behavioral context
// handed to the voice assistant on outbound calls.
package faq

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Loader reads FAQ documents from a directory, one file per event, named
// <event-id>.md. Documents are externally authored and read fresh on every
// call; the loader never caches or mutates them.
type Loader struct {
	docs   fs.FS
	logger *slog.Logger
}

// New constructs a Loader over the given directory.
func New(dir string, logger *slog.Logger) *Loader {
	return &Loader{docs: os.DirFS(dir), logger: logger}
}

// NewFromFS constructs a Loader over an arbitrary fs.FS, for tests.
func NewFromFS(docs fs.FS, logger *slog.Logger) *Loader {
	return &Loader{docs: docs, logger: logger}
}

// Load returns the FAQ document for the event, by exact identifier match.
// A missing or unreadable document degrades to ok=false rather than an
// error: alerts must go out whether or not supplementary material exists.
func (l *Loader) Load(eventID string) (string, bool) {
	if eventID == "" {
		return "", false
	}
	content, err := fs.ReadFile(l.docs, eventID+".md")
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("failed to read FAQ document", "event_id", eventID, "error", err)
		}
		return "", false
	}
	return string(content), true
}

// Events returns the identifiers of all available FAQ documents, sorted.
func (l *Loader) Events() []string {
	entries, err := fs.ReadDir(l.docs, ".")
	if err != nil {
		return nil
	}
	var events []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		events = append(events, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(events)
	return events
}

// BuildContext composes the assistant's behavioral instructions for a call.
// With no event identifier, or when the identifier has no matching document,
// it returns the same minimal fallback: the alert message plus a generic
// staff referral. With a document present the order is fixed: urgent-alert
// preamble, instructional policy block, raw FAQ text, closing reminder.
func (l *Loader) BuildContext(eventID, alertMessage string) string {
	content, ok := l.Load(eventID)
	if !ok {
		return fmt.Sprintf(
			"%s\n\nI can help answer basic questions, but for specific event information, please contact event staff.",
			alertMessage,
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "URGENT ALERT: %s\n\n", alertMessage)
	b.WriteString(`You are an AI assistant helping attendees during an emergency or important event alert.

INSTRUCTIONS:
1. First, clearly communicate the urgent alert message above
2. Then offer to answer any questions about the event or emergency procedures
3. Use the FAQ information below to provide accurate, helpful responses
4. If someone asks a question not covered in the FAQ, acknowledge you don't have that specific information and suggest they contact event staff
5. Keep responses concise but helpful
6. Prioritize safety information in emergencies

`)
	fmt.Fprintf(&b, "EVENT FAQ INFORMATION:\n%s\n\n", content)
	b.WriteString("Remember: Use this information to answer attendee questions, but always prioritize the urgent alert message first.")
	return b.String()
}
