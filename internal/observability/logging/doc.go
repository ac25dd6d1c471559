// Package logging builds the application's slog loggers.
//
// NewLogger writes JSON to stdout at the level named by LOG_LEVEL.
// FromContext returns a logger annotated with the request ID and, when the
// request is traced, the trace ID, so lines from one request can be joined:
//
//	func (s *Service) Feed(ctx context.Context, x, y float64) ([]entity.Card, error) {
//	    logging.FromContext(ctx).Info("feed assembled", slog.Int("cards", n))
//	}
package logging
