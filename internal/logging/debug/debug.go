// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package debug

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Debugger wraps a *log.Logger with a runtime enable/disable switch.
type Debugger struct {
	log     *log.Logger
	enabled int32
}

var std *Debugger

// EnableEnvVar is the name of an environment variable that, if set,
// will enable this package's functionality.
const EnableEnvVar = "ENABLE_DEBUG"

func init() {
	std = NewDebugger(os.Stderr)

	if os.Getenv(EnableEnvVar) != "" {
		Enable()
	}
}

// NewDebugger creates a new *Debugger which logs to the supplied io.Writer
func NewDebugger(out io.Writer) *Debugger {
	return &Debugger{
		log: log.New(out, "DEBUG ", log.Lmicroseconds|log.Lshortfile),
	}
}

// Enabled indicates whether or not debugging is enabled
func (d *Debugger) Enabled() bool {
	return atomic.LoadInt32(&d.enabled) == 1
}

// Enable turns on debug logging
func (d *Debugger) Enable() {
	atomic.CompareAndSwapInt32(&d.enabled, 0, 1)
}

// Disable turns off debug logging
func (d *Debugger) Disable() {
	atomic.CompareAndSwapInt32(&d.enabled, 1, 0)
}

// SetOutput updates the embedded logger's output
func (d *Debugger) SetOutput(out io.Writer) {
	d.log.SetOutput(out)
}

// Output writes the output for a logging event
func (d *Debugger) Output(skip int, s string) {
	if !d.Enabled() {
		return
	}
	d.log.Output(skip, s)
}

// Printf outputs formatted arguments
func (d *Debugger) Printf(f string, v ...interface{}) {
	if !d.Enabled() {
		return
	}
	d.Output(3, fmt.Sprintf(f, v...))
}

// Print outputs the arguments
func (d *Debugger) Print(v ...interface{}) {
	if !d.Enabled() {
		return
	}
	d.Output(3, fmt.Sprint(v...))
}

// package-level functions follow

// Enabled indicates whether or not debugging is enabled
func Enabled() bool {
	return std.Enabled()
}

// Enable turns on debug logging
func Enable() {
	std.Enable()
}

// Disable turns off debug logging
func Disable() {
	std.Disable()
}

// SetOutput configures the output writer for the package debugger
func SetOutput(out io.Writer) {
	std.SetOutput(out)
}

// Printf outputs formatted arguments
func Printf(f string, v ...interface{}) {
	std.Printf(f, v...)
}

// Print outputs the arguments
func Print(v ...interface{}) {
	std.Print(v...)
}
