package commands

import (
	"context"
	"strings"
	"sync"
)

// LocalActionRunner brackets a mutation so realtime echoes of it are
// suppressed. Sessions pass their reconciliation controller here.
type LocalActionRunner interface {
	RunLocalAction(ctx context.Context, fn func(context.Context) error) error
}

func runLocal(ctx context.Context, runner LocalActionRunner, fn func(context.Context) error) error {
	if runner == nil {
		return fn(ctx)
	}
	return runner.RunLocalAction(ctx, fn)
}

// InFlightGuard is the per-(submission, action) loading flag. A second
// submit of the same action is refused until the first returns.
type InFlightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{active: make(map[string]struct{})}
}

// Acquire returns a release function, or false when key is already held.
func (g *InFlightGuard) Acquire(key string) (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == nil {
		g.active = make(map[string]struct{})
	}
	if _, busy := g.active[key]; busy {
		return nil, false
	}
	g.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			delete(g.active, key)
		})
	}, true
}

func (g *InFlightGuard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}

// AnyBusy reports whether any action on the given submission is in flight.
func (g *InFlightGuard) AnyBusy(submissionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	prefix := submissionID + "|"
	for key := range g.active {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
