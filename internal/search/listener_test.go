package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/testutil"
)

type eventLog struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (l *eventLog) handle(e eventbus.DomainEvent) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func (l *eventLog) last() eventbus.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return nil
	}
	return l.events[len(l.events)-1]
}

func (l *eventLog) types() []eventbus.EventType {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]eventbus.EventType, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type()
	}
	return out
}

func subscribeAll(bus eventbus.EventBus, l *eventLog) {
	for _, et := range eventbus.SearchEvents {
		bus.Subscribe(et, l.handle)
	}
}

func TestListenRunsRequestedSearch(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteXLSX(t, dir, "a.xlsx", testutil.SheetData{Name: "Data", Cells: map[string]any{"C3": "needle"}})

	bus := eventbus.New()
	defer bus.Close()
	events := &eventLog{}
	subscribeAll(bus, events)

	svc := NewService(NewBusNotifier(bus))
	defer svc.Shutdown()
	stop := Listen(context.Background(), bus, svc)
	defer stop()

	bus.Publish(eventbus.SearchRequestedEvent{Request: domain.SearchRequest{Folder: dir, Query: "needle"}})

	require.Eventually(t, func() bool {
		_, ok := events.last().(eventbus.SearchCompletedEvent)
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []eventbus.EventType{
		eventbus.EventSearchStarted,
		eventbus.EventMatchFound,
		eventbus.EventSearchProgress,
		eventbus.EventSearchCompleted,
	}, events.types())
	done := events.last().(eventbus.SearchCompletedEvent)
	assert.Equal(t, 1, done.Matches)
}

func TestListenPublishesRejection(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	events := &eventLog{}
	subscribeAll(bus, events)

	svc := NewService(NewBusNotifier(bus))
	stop := Listen(context.Background(), bus, svc)
	defer stop()

	bus.Publish(eventbus.SearchRequestedEvent{Request: domain.SearchRequest{Folder: t.TempDir()}})

	require.Eventually(t, func() bool { return events.last() != nil }, 5*time.Second, 10*time.Millisecond)
	rejected, ok := events.last().(eventbus.SearchRejectedEvent)
	require.True(t, ok)
	var ire *InvalidRequestError
	assert.ErrorAs(t, rejected.Err, &ire)
	assert.True(t, ire.MissingQuery)
}

func TestListenMissingFolderPublishesFailureOnce(t *testing.T) {
	bus := eventbus.New()
	events := &eventLog{}
	subscribeAll(bus, events)

	svc := NewService(NewBusNotifier(bus))
	stop := Listen(context.Background(), bus, svc)
	defer stop()

	bus.Publish(eventbus.SearchRequestedEvent{Request: domain.SearchRequest{Folder: "/does/not/exist", Query: "x"}})
	require.Eventually(t, func() bool { return events.last() != nil }, 5*time.Second, 10*time.Millisecond)
	bus.Close()

	assert.Equal(t, []eventbus.EventType{eventbus.EventSearchFailed}, events.types())
	assert.Equal(t, domain.StateFailed, svc.State())
}

// blockingController records calls; Start blocks until release is closed
type blockingController struct {
	mu      sync.Mutex
	calls   []string
	release chan struct{}
}

func (c *blockingController) record(call string) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	c.mu.Unlock()
}

func (c *blockingController) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *blockingController) Start(context.Context, domain.SearchRequest) (*Task, error) {
	c.record("start")
	<-c.release
	c.record("started")
	return nil, errors.New("fake")
}

func (c *blockingController) Stop() { c.record("stop") }

func TestListenAppliesStopAfterPendingStart(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	ctrl := &blockingController{release: make(chan struct{})}
	stop := Listen(context.Background(), bus, ctrl)
	defer stop()

	// registered after Listen, so it runs once the stop has been queued
	stopQueued := make(chan struct{})
	bus.Subscribe(eventbus.EventStopRequested, func(eventbus.DomainEvent) { close(stopQueued) })

	bus.Publish(eventbus.SearchRequestedEvent{Request: domain.SearchRequest{Folder: "/d", Query: "x"}})
	bus.Publish(eventbus.StopRequestedEvent{})

	select {
	case <-stopQueued:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatcher blocked behind a pending start")
	}
	assert.NotContains(t, ctrl.Calls(), "stop")

	close(ctrl.release)
	require.Eventually(t, func() bool { return len(ctrl.Calls()) == 3 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"start", "started", "stop"}, ctrl.Calls())
}

func TestListenStopIsIdempotent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	stop := Listen(context.Background(), bus, NewService(NewBusNotifier(bus)))
	stop()
	assert.NotPanics(t, stop)
}
