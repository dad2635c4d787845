package model

import (
	"context"
	"fmt"
	"sync"
)

// Ticket identifies one load request.
type Ticket uint64

// Result is delivered exactly once per request.
type Result struct {
	Ticket Ticket
	Path   string
	Model  *Model
	Err    error
}

// Async runs loads on goroutines. Results land on a buffered channel that the
// frame loop empties with Drain, so the loop never waits on a load.
type Async struct {
	loader  Loader
	ctx     context.Context
	cancel  context.CancelFunc
	results chan Result

	mu   sync.Mutex
	next Ticket
	wg   sync.WaitGroup
}

// NewAsync wraps loader. Cancelling ctx aborts loads that have not finished.
func NewAsync(ctx context.Context, loader Loader) *Async {
	ctx, cancel := context.WithCancel(ctx)
	return &Async{
		loader:  loader,
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan Result, 32),
	}
}

// Request starts loading path and returns its ticket.
func (a *Async) Request(path string) Ticket {
	a.mu.Lock()
	a.next++
	t := a.next
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		res := Result{Ticket: t, Path: path}
		func() {
			defer func() {
				if r := recover(); r != nil {
					res.Err = fmt.Errorf("model: load %s: panic: %v", path, r)
				}
			}()
			res.Model, res.Err = a.loader.Load(a.ctx, path)
		}()
		a.results <- res
	}()
	return t
}

// Drain returns every result that is ready without blocking.
func (a *Async) Drain() []Result {
	var out []Result
	for {
		select {
		case r := <-a.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// Results exposes the channel for callers that want to block, such as tools.
func (a *Async) Results() <-chan Result {
	return a.results
}

// Close cancels outstanding loads and waits for their goroutines.
// Results still buffered after Close are discarded.
func (a *Async) Close() {
	a.cancel()
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	for {
		select {
		case <-a.results:
		case <-done:
			return
		}
	}
}
