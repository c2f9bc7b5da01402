package client

import (
	"github.com/sifan077/GifBoard/internal/infra/logger"
	"go.uber.org/zap"
)

// ErrorReporter receives every failed request. The default only logs; a UI
// can supply its own to show the error to the user.
type ErrorReporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) { f(err) }

// LogReporter writes failures to a zap logger.
type LogReporter struct {
	logger *zap.Logger
}

// NewLogReporter returns a reporter logging through l, or through the global
// logger when l is nil.
func NewLogReporter(l *zap.Logger) *LogReporter {
	if l == nil {
		l = logger.L()
	}
	return &LogReporter{logger: l}
}

func (r *LogReporter) Report(err error) {
	r.logger.Error("error in fetch", zap.Error(err))
}
