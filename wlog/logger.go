/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package wlog

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields is a shorthand alias kept distinct from logrus.Fields so call sites
// never need to import logrus directly.
type Fields map[string]interface{}

// Logger is the interface every component depends on. The concrete type wraps
// a *logrus.Entry; tests may substitute a no-op implementation.
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(f Fields) Logger
	WithError(err error) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	// GetStdLogger bridges this Logger to the stdlib log.Logger interface, for
	// wiring into dependencies (e.g. net/http, os/exec) that only accept one.
	GetStdLogger() *log.Logger
}

type logger struct {
	e *logrus.Entry
}

// New creates a root Logger writing to out at the given level. Level parsing
// follows logrus.ParseLevel; an invalid level string falls back to Info.
func New(out io.Writer, level string) Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return &logger{e: logrus.NewEntry(l)}
}

// Discard returns a Logger that drops everything; used by components that
// don't have an explicit logger wired in (tests, library callers).
func Discard() Logger {
	return New(io.Discard, "panic")
}

// Default returns a Logger writing to stderr at info level, the default for
// both CLI entrypoints before flags are parsed.
func Default() Logger {
	return New(os.Stderr, "info")
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{e: l.e.WithField(key, value)}
}

func (l *logger) WithFields(f Fields) Logger {
	return &logger{e: l.e.WithFields(logrus.Fields(f))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{e: l.e.WithError(err)}
}

func (l *logger) Debug(args ...interface{})                 { l.e.Debug(args...) }
func (l *logger) Debugf(format string, args ...interface{})  { l.e.Debugf(format, args...) }
func (l *logger) Info(args ...interface{})                  { l.e.Info(args...) }
func (l *logger) Infof(format string, args ...interface{})   { l.e.Infof(format, args...) }
func (l *logger) Warn(args ...interface{})                  { l.e.Warn(args...) }
func (l *logger) Warnf(format string, args ...interface{})   { l.e.Warnf(format, args...) }
func (l *logger) Error(args ...interface{})                 { l.e.Error(args...) }
func (l *logger) Errorf(format string, args ...interface{})  { l.e.Errorf(format, args...) }

// GetStdLogger returns a *log.Logger that writes through this Logger at Info
// level, for bridging third-party code that only accepts the stdlib logger.
func (l *logger) GetStdLogger() *log.Logger {
	return log.New(l.e.Writer(), "", 0)
}
