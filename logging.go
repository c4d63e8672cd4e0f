package pathbus

import (
	"io"

	"github.com/rs/zerolog"
)

// failureSink receives every HandlerFailure event the dispatcher produces.
// A handler's error (or recovered panic) is logged here and never
// propagated out of Publish.
type failureSink struct {
	logger zerolog.Logger
}

// newFailureSink builds a sink around the given zerolog.Logger. A nil
// logger writes to io.Discard, matching the library's "silent unless
// a host wires one in" default.
func newFailureSink(logger *zerolog.Logger) *failureSink {
	if logger == nil {
		discarded := zerolog.New(io.Discard)
		return &failureSink{logger: discarded}
	}
	return &failureSink{logger: *logger}
}

func (s *failureSink) handlerFailure(handle Handle, pattern, topic string, err error) {
	s.logger.Error().
		Str("handle", handle.String()).
		Str("pattern", pattern).
		Str("topic", topic).
		Err(err).
		Msg("pathbus: handler failed")
}
