// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package alert

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger wraps a *log.Logger with convenience methods for surfacing
// conditions that a human running the suite should notice.
type Logger struct {
	log *log.Logger
}

var std *Logger

// Provide as much information as possible about where the message
// originated, as this package should usually only be involved where
// there is a failure.
const logFlags = log.Ldate | log.Ltime | log.LUTC | log.Llongfile

func init() {
	std = NewLogger(os.Stderr)
}

// NewLogger returns a *Logger
func NewLogger(out io.Writer) *Logger {
	return &Logger{
		log: log.New(out, "ALERT ", logFlags),
	}
}

// SetOutput updates the embedded logger's output
func (l *Logger) SetOutput(out io.Writer) {
	l.log.SetOutput(out)
}

// SetFlags sets the output flags for the embedded logger
func (l *Logger) SetFlags(flags int) {
	l.log.SetFlags(flags)
}

// Output writes the output for a logging event
func (l *Logger) Output(skip int, s string) {
	l.log.Output(skip, s)
}

// Warn outputs a log message from the arguments
func (l *Logger) Warn(v ...interface{}) {
	l.Output(3, fmt.Sprint(v...))
}

// Warnf outputs a formatted log message from the arguments
func (l *Logger) Warnf(f string, v ...interface{}) {
	l.Output(3, fmt.Sprintf(f, v...))
}

// Fatal outputs a log message from the arguments, then exits
func (l *Logger) Fatal(v ...interface{}) {
	l.Output(3, fmt.Sprint(v...))
	os.Exit(1)
}

// package-level functions follow

// SetOutput configures the output writer for the package logger
func SetOutput(out io.Writer) {
	std.SetOutput(out)
}

// Warn outputs a log message from the arguments
func Warn(v ...interface{}) {
	std.Output(3, fmt.Sprint(v...))
}

// Warnf outputs a formatted log message from the arguments
func Warnf(f string, v ...interface{}) {
	std.Output(3, fmt.Sprintf(f, v...))
}

// Fatal outputs a log message from the arguments, then exits
func Fatal(v ...interface{}) {
	std.Output(3, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf outputs a formatted log message from the arguments, then exits
func Fatalf(f string, v ...interface{}) {
	std.Output(3, fmt.Sprintf(f, v...))
	os.Exit(1)
}

// Abort prints the error and exits. We don't need to see where the
// abort was called, so the file/line flags are removed before logging.
func Abort(err error) {
	std.SetFlags(log.Ldate | log.Ltime | log.LUTC)
	std.Output(3, err.Error())
	os.Exit(1)
}
