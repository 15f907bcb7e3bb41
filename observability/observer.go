package observability

import (
	"errors"
	"log/slog"

	"github.com/LubyRuffy/deltabridge/sse"
)

const maxLoggedFragment = 200

// StreamObserver implements sse.Observer for one call.
type StreamObserver struct {
	logger    *slog.Logger
	requestID string
}

var _ sse.Observer = (*StreamObserver)(nil)

// NewStreamObserver returns an observer tagged with requestID. A nil logger uses slog.Default().
func NewStreamObserver(logger *slog.Logger, requestID string) *StreamObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreamObserver{logger: logger, requestID: requestID}
}

func (o *StreamObserver) EventEmitted(string) {
	EventsEmittedTotal.Inc()
}

func (o *StreamObserver) FragmentDropped(fragment []byte, err error) {
	reason := "malformed"
	if errors.Is(err, sse.ErrUnterminatedLine) {
		reason = "unterminated"
	}
	FragmentsDroppedTotal.WithLabelValues(reason).Inc()
	o.logger.Debug("dropped upstream fragment",
		"request_id", o.requestID,
		"reason", reason,
		"fragment", truncate(string(fragment), maxLoggedFragment),
		"error", err,
	)
}

func (o *StreamObserver) SentinelSeen() {
	SentinelsTotal.Inc()
	o.logger.Debug("upstream sentinel seen", "request_id", o.requestID)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
