// SPDX-FileCopyrightText:  © 2025 Boxworks
// SPDX-License-Identifier:   MIT

package logging

import (
	"log/slog"

	"github.com/boxworks/boxctl/internal/logging"
	"github.com/samber/lo"
	slogmulti "github.com/samber/slog-multi"
)

// SlogHandler is an slog.Handler with an explicit flush/close lifecycle.
type SlogHandler interface {
	slog.Handler
	Flush()
	Close()
}

// HandlerBuilder creates a log handler bound to the given shared level.
type HandlerBuilder func(levelVar *slog.LevelVar) SlogHandler

type Slogger struct {
	Logger   *slog.Logger
	LevelVar *slog.LevelVar
	handlers []SlogHandler
}

func NewSlogger() *Slogger {
	levelVar := new(slog.LevelVar)

	return &Slogger{
		Logger:   slog.New(slogmulti.Fanout()),
		LevelVar: levelVar,
	}
}

// SetHandlers replaces all existing handlers, closing the old ones.
func (l *Slogger) SetHandlers(builders ...HandlerBuilder) *Slogger {
	for _, handler := range l.handlers {
		handler.Flush()
		handler.Close()
	}

	l.handlers = lo.Map(builders, func(build HandlerBuilder, _ int) SlogHandler {
		return build(l.LevelVar)
	})

	fanout := slogmulti.Fanout(lo.Map(l.handlers, func(handler SlogHandler, _ int) slog.Handler {
		return handler
	})...)

	l.Logger = slog.New(fanout)

	return l
}

// SetGlobally installs this logger as slog default.
func (l *Slogger) SetGlobally() *Slogger {
	slog.SetDefault(l.Logger)

	return l
}

func (l *Slogger) SetVerbosity(verbosity string) error {
	return logging.SetVerbosity(verbosity, l.LevelVar)
}

func (l *Slogger) Flush() {
	for _, handler := range l.handlers {
		handler.Flush()
	}
}

func (l *Slogger) Close() {
	for _, handler := range l.handlers {
		handler.Close()
	}
	l.handlers = nil
}
