package search

import (
	"context"
	"errors"
	"log"
	"sync"

	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
)

// Controller is what bus requests drive; *Service implements it
type Controller interface {
	Start(ctx context.Context, req domain.SearchRequest) (*Task, error)
	Stop()
}

// request is one queued search or stop request
type request struct {
	stop   bool
	search domain.SearchRequest
}

// requestQueue is unbounded so bus handlers never block the dispatcher
type requestQueue struct {
	mu      sync.Mutex
	pending []request
	wake    chan struct{}
}

func (q *requestQueue) push(r request) {
	q.mu.Lock()
	q.pending = append(q.pending, r)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *requestQueue) drain() []request {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.pending
	q.pending = nil
	return p
}

// Listen connects ctrl to request events on the bus. Requests are applied in
// arrival order by one worker goroutine, so a stop that follows a start always
// finds that run. The returned function unsubscribes and waits for the worker.
func Listen(ctx context.Context, bus eventbus.EventBus, ctrl Controller) func() {
	q := &requestQueue{wake: make(chan struct{}, 1)}

	unsubStart := bus.Subscribe(eventbus.EventSearchRequested, func(e eventbus.DomainEvent) {
		q.push(request{search: e.(eventbus.SearchRequestedEvent).Request})
	})
	unsubStop := bus.Subscribe(eventbus.EventStopRequested, func(eventbus.DomainEvent) {
		q.push(request{stop: true})
	})

	quit := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-q.wake:
				for _, r := range q.drain() {
					if r.stop {
						ctrl.Stop()
						continue
					}
					start(ctx, bus, ctrl, r.search)
				}
			case <-quit:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubStart()
			unsubStop()
			close(quit)
			wg.Wait()
		})
	}
}

func start(ctx context.Context, bus eventbus.EventBus, ctrl Controller, req domain.SearchRequest) {
	_, err := ctrl.Start(ctx, req)
	if err == nil {
		return
	}
	var fae *FolderAccessError
	if errors.As(err, &fae) {
		// already reported through the notifier
		return
	}
	log.Printf("Search request rejected: %v", err)
	bus.Publish(eventbus.SearchRejectedEvent{Request: req, Reason: err.Error(), Err: err})
}
