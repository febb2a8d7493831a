package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Group runs a set of named workers that live and die together. The first
// worker error cancels every sibling and becomes the group result; there
// are no restarts, the engine treats any worker failure as fatal.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	firstErr error
}

// NewGroup derives the group context from the parent; cancelling the
// parent cancels every worker.
func NewGroup(parent context.Context) *Group {
	ctx, cancel := context.WithCancel(parent)
	return &Group{ctx: ctx, cancel: cancel}
}

// Go starts a named worker. The name prefixes the worker's error so the
// failing chunk is identifiable; context errors pass through unwrapped.
func (g *Group) Go(name string, run func(ctx context.Context) error) {
	if run == nil {
		g.record(fmt.Errorf("worker %s: runner is required", name))
		return
	}
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		err := run(g.ctx)
		if err == nil {
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			g.record(err)
			return
		}
		g.record(fmt.Errorf("worker %s: %w", name, err))
	}()
}

func (g *Group) record(err error) {
	g.mu.Lock()
	if g.firstErr == nil {
		g.firstErr = err
	}
	g.mu.Unlock()
	g.cancel()
}

// Wait blocks until every worker returned, then reports the first error.
// A cancelled parent context surfaces as that context's error.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.firstErr != nil {
		return g.firstErr
	}
	return nil
}
