package report

import (
	"context"
	"log/slog"
	"strings"

	"github.com/makbe/makbe/keycode"
)

// Log writes every key code set to a logger.
type Log struct {
	logger *slog.Logger
	level  slog.Level
}

func NewLog(logger *slog.Logger, level slog.Level) *Log {
	return &Log{logger: logger, level: level}
}

func (l *Log) Report(codes []keycode.Code) error {
	if !l.logger.Enabled(context.Background(), l.level) {
		return nil
	}
	l.logger.Log(context.Background(), l.level, "keys", "codes", strings.Join(Names(codes), " "), "count", len(codes))
	return nil
}
