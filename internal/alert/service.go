// Package alert implements the best-effort fan-out of a single logical alert
// to many recipients over SMS or outbound voice calls.
package alert

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	alertmetrics "aegis/internal/alert/metrics"
	dErrors "aegis/pkg/domain-errors"
	"aegis/pkg/requestcontext"
)

// Notifier delivers one alert to one phone number over a single channel.
// Implementations are stateless request/response exchanges against a
// provider API.
type Notifier interface {
	Notify(ctx context.Context, phoneNumber string, a Request) error
}

// Dispatcher fans an alert out to a recipient list. Channels whose provider
// credentials were missing at startup have a nil notifier and are reported
// unavailable before any dispatch begins; everything past that point is
// best-effort.
type Dispatcher struct {
	text    Notifier
	call    Notifier
	logger  *slog.Logger
	metrics *alertmetrics.Metrics
	tracer  trace.Tracer
}

// NewDispatcher constructs the fan-out engine. Either notifier may be nil,
// which marks that channel unavailable. metrics may be nil in tests.
func NewDispatcher(text, call Notifier, logger *slog.Logger, metrics *alertmetrics.Metrics) *Dispatcher {
	return &Dispatcher{
		text:    text,
		call:    call,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("aegis/alert"),
	}
}

// TextAvailable reports whether the text channel is configured.
func (d *Dispatcher) TextAvailable() bool { return d.text != nil }

// CallAvailable reports whether the call channel is configured.
func (d *Dispatcher) CallAvailable() bool { return d.call != nil }

func (d *Dispatcher) notifier(ch Channel) Notifier {
	if ch == ChannelCall {
		return d.call
	}
	return d.text
}

// Dispatch sends one notification per recipient, sequentially and
// independently: a failed recipient is logged and counted but never aborts
// the remaining dispatches. The returned Response reports success iff at
// least one recipient was contacted; callers inspect RecipientsContacted to
// gauge actual reach.
func (d *Dispatcher) Dispatch(ctx context.Context, a Request, numbers []string, ch Channel) (Response, error) {
	n := d.notifier(ch)
	if n == nil {
		return Response{}, dErrors.New(dErrors.CodeUnavailable, string(ch)+" channel not configured")
	}

	ctx, span := d.tracer.Start(ctx, "alert.dispatch", trace.WithAttributes(
		attribute.String("alert.channel", string(ch)),
		attribute.String("alert.urgency", string(a.Urgency)),
		attribute.Int("alert.recipients", len(numbers)),
	))
	defer span.End()

	start := time.Now()
	contacted := 0
	for _, number := range numbers {
		if err := n.Notify(ctx, number, a); err != nil {
			d.logger.ErrorContext(ctx, "failed to notify recipient",
				"request_id", requestcontext.RequestID(ctx),
				"channel", ch,
				"phone_number", number,
				"error", err,
			)
			continue
		}
		contacted++
	}

	failed := len(numbers) - contacted
	span.SetAttributes(attribute.Int("alert.contacted", contacted))
	d.metrics.ObserveDispatch(string(ch), contacted, failed, start)
	d.logger.InfoContext(ctx, "alert dispatched",
		"request_id", requestcontext.RequestID(ctx),
		"channel", ch,
		"event_name", a.EventName,
		"urgency", a.Urgency,
		"contacted", contacted,
		"failed", failed,
	)

	return Response{
		Success:             contacted > 0,
		Message:             dispatchMessage(ch),
		RecipientsContacted: contacted,
	}, nil
}

func dispatchMessage(ch Channel) string {
	if ch == ChannelCall {
		return "Voice call alerts initiated successfully"
	}
	return "Text alerts sent successfully"
}
