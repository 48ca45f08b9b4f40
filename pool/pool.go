// Package pool owns the execution contexts of a fixed set of long-lived workers.
package pool

import (
	"sync"
	"sync/atomic"
)

// Group tracks a bounded set of worker goroutines and joins them on shutdown.
// The zero value is ready to use. A Group must not be copied after first use.
type Group struct {
	wg      sync.WaitGroup
	live    atomic.Int64
	started atomic.Int64
}

// Go starts fn in a new goroutine owned by the group, passing it the worker id.
// Panics raised by fn are not recovered: a worker dying abnormally is fatal.
func (g *Group) Go(id int, fn func(id int)) {
	g.wg.Add(1)
	g.live.Add(1)
	g.started.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.live.Add(-1)
		fn(id)
	}()
}

// Wait blocks until every goroutine started with Go has returned.
func (g *Group) Wait() { g.wg.Wait() }

// Live returns the number of started goroutines that have not yet returned.
func (g *Group) Live() int { return int(g.live.Load()) }

// Started returns the number of goroutines ever started with Go.
func (g *Group) Started() int { return int(g.started.Load()) }
