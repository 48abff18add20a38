package delivery

import (
	"context"
	"errors"
	"log/slog"
)

var errSimulated = errors.New("simulated failure")

// Log is a development sender. It logs each message instead of sending it.
type Log struct {
	logger *slog.Logger
	fail   bool
}

// NewLog returns a Log sender. With fail set every Send reports failure,
// which is handy for checking the error state of the contact form.
func NewLog(logger *slog.Logger, fail bool) *Log {
	return &Log{logger: logger, fail: fail}
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return failed(err)
	}
	l.logger.InfoContext(ctx, "contact message (not sent)",
		"name", msg.Name,
		"email", msg.Email,
		"message_len", len(msg.Message),
		"simulate_failure", l.fail,
	)
	if l.fail {
		return failed(errSimulated)
	}
	return nil
}
