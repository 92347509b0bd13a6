// Copyright (c) 2025 The openlib-uat authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package steps

// WithMatchers holds all registered step matchers and their handlers
var WithMatchers = map[string]HandlerFn{}

// HandlerFn is a step implementation suitable for godog's
// ScenarioContext.Step(). Signatures vary by captured arguments, so
// the registry is necessarily untyped.
type HandlerFn interface{}

func addStep(matcher string, handler HandlerFn) {
	WithMatchers[matcher] = handler
}
