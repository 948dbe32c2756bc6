package workflow

import (
	"context"
	"sync"
)

// Gate serializes mutating calls per key. Acquire fails with ErrInFlight
// while another holder has the key.
type Gate interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// LocalGate is an in-process Gate.
type LocalGate struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocalGate() *LocalGate {
	return &LocalGate{held: make(map[string]struct{})}
}

func (g *LocalGate) Acquire(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[key]; busy {
		return nil, ErrInFlight
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
