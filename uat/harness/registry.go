package harness

import (
	"context"
	"sync"

	"github.com/pborman/uuid"
)

// Unit identifies an execution unit: a worker goroutine that runs one
// or more scenarios or tests sequentially. It is the isolation
// boundary for scenario contexts.
type Unit string

// DefaultUnit is the token used when nothing minted a more specific
// one. Sequential suite runs and standalone tests share it, which is
// what lets a test observe values a scenario recorded earlier in the
// same process.
const DefaultUnit Unit = "default"

// NewUnit mints a unique execution-unit token.
func NewUnit() Unit {
	return Unit(uuid.New())
}

type unitKeyType struct{}

var unitKey unitKeyType

// WithUnit returns a context carrying the given unit token.
func WithUnit(ctx context.Context, unit Unit) context.Context {
	return context.WithValue(ctx, unitKey, unit)
}

// UnitFromContext returns the unit token carried by ctx, or
// DefaultUnit if none is present.
func UnitFromContext(ctx context.Context) Unit {
	if unit, ok := ctx.Value(unitKey).(Unit); ok {
		return unit
	}
	return DefaultUnit
}

// ContextRegistry associates each execution unit with its own
// ScenarioContext. Access keyed by one unit never observes or perturbs
// the entry keyed by another, so concurrently-running units stay fully
// independent.
type ContextRegistry struct {
	mu       sync.RWMutex
	contexts map[Unit]*ScenarioContext
}

// Contexts is the process-wide registry shared by the suite wiring and
// standalone tests.
var Contexts = NewContextRegistry()

// NewContextRegistry returns an empty registry.
func NewContextRegistry() *ContextRegistry {
	return &ContextRegistry{
		contexts: make(map[Unit]*ScenarioContext),
	}
}

// Context returns the ScenarioContext associated with unit, creating
// a fresh one on first access. It never returns nil.
func (r *ContextRegistry) Context(unit Unit) *ScenarioContext {
	r.mu.RLock()
	sc, ok := r.contexts[unit]
	r.mu.RUnlock()
	if ok {
		return sc
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller on the same unit may have won the race between
	// the two lock acquisitions.
	if sc, ok := r.contexts[unit]; ok {
		return sc
	}

	sc = NewScenarioContext()
	r.contexts[unit] = sc
	return sc
}

// SetContext associates sc with unit, replacing any prior association.
func (r *ContextRegistry) SetContext(unit Unit, sc *ScenarioContext) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.contexts[unit] = sc
}

// ClearContext removes the association for unit entirely. A subsequent
// Context call on the same unit creates anew.
func (r *ContextRegistry) ClearContext(unit Unit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.contexts, unit)
}
