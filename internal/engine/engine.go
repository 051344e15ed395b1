// Package engine derives the daily view from a state snapshot and applies
// user operations to it.
//
// Every function works on the *domain.State it is given and keeps no state
// of its own. The caller loads the snapshot, calls into the engine and
// persists the result.
package engine

import "github.com/runoshun/steps/internal/domain"

// Engine carries the injected collaborators needed by operations that
// create tasks or pick goals at random.
type Engine struct {
	ids    domain.IDGenerator
	rnd    domain.Random
	pacing Pacing
}

// New creates an Engine.
func New(pacing Pacing, rnd domain.Random, ids domain.IDGenerator) *Engine {
	if rnd == nil {
		rnd = domain.RealRandom{}
	}
	if ids == nil {
		ids = domain.UUIDGenerator{}
	}
	return &Engine{pacing: pacing, rnd: rnd, ids: ids}
}

// Pacing returns the onboarding pacing the engine was created with.
func (e *Engine) Pacing() Pacing {
	return e.pacing
}
