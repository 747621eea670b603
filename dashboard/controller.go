package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gitlab.com/lologarithm/cydonia/reading"
	"gitlab.com/lologarithm/cydonia/sensor"
)

// Fetcher loads the readings of one location.
type Fetcher interface {
	Fetch(ctx context.Context, location reading.ID) ([]reading.Reading, error)
}

// Controller owns the dashboard State. It runs fetches, applies their
// results and hands a fresh View to every subscriber after each change.
//
// Only one fetch counts at a time: starting a new one cancels the previous
// fetch and any result it still produces is ignored.
type Controller struct {
	fetcher Fetcher
	catalog sensor.Catalog
	now     func() time.Time

	notifylock *sync.Mutex // keeps views delivered in the order they were made

	datalock *sync.Mutex
	state    State
	cancel   context.CancelFunc
	subs     map[int]func(View)
	nextSub  int

	inflight sync.WaitGroup
}

// NewController starts with no location selected and no data.
func NewController(f Fetcher, c sensor.Catalog) *Controller {
	return &Controller{
		fetcher:    f,
		catalog:    c,
		now:        time.Now,
		notifylock: &sync.Mutex{},
		datalock:   &sync.Mutex{},
		subs:       map[int]func(View){},
	}
}

// Catalog returns the catalog the views are derived with.
func (c *Controller) Catalog() sensor.Catalog {
	return c.catalog
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.datalock.Lock()
	defer c.datalock.Unlock()
	return c.state
}

// View derives the current view.
func (c *Controller) View() View {
	return Derive(c.State(), c.catalog)
}

// Subscribe registers fn to receive every new View. fn must not block for long
// and must not call back into SetLocation or Refresh synchronously.
func (c *Controller) Subscribe(fn func(View)) (unsubscribe func()) {
	c.datalock.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.datalock.Unlock()
	return func() {
		c.datalock.Lock()
		delete(c.subs, id)
		c.datalock.Unlock()
	}
}

// WithView calls fn with the current view while no subscriber is being
// notified, so a view handed to fn is never newer than the next one a
// subscriber registered inside fn receives.
func (c *Controller) WithView(fn func(View)) {
	c.notifylock.Lock()
	defer c.notifylock.Unlock()
	fn(c.View())
}

// SetLocation switches to a site and fetches its data.
func (c *Controller) SetLocation(ctx context.Context, location reading.ID) {
	c.startFetch(ctx, &location)
}

// Refresh fetches the current site again.
func (c *Controller) Refresh(ctx context.Context) {
	c.startFetch(ctx, nil)
}

// Run refreshes every interval until ctx is done. A non-positive interval
// returns immediately.
func (c *Controller) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Refresh(ctx)
		}
	}
}

// Wait blocks until no fetch is running.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Dispatch applies a single event and notifies subscribers.
func (c *Controller) Dispatch(e Event) {
	c.update(func(s State) []Event { return []Event{e} })
}

func (c *Controller) startFetch(parent context.Context, location *reading.ID) {
	var (
		ctx    context.Context
		cancel context.CancelFunc
		gen    uint64
		loc    reading.ID
	)
	c.update(func(s State) []Event {
		if c.cancel != nil {
			c.cancel()
		}
		ctx, cancel = context.WithCancel(parent)
		c.cancel = cancel

		evs := make([]Event, 0, 2)
		loc = s.Location
		if location != nil {
			loc = *location
			evs = append(evs, LocationChanged{Location: loc})
		}
		gen = s.Generation + 1
		return append(evs, FetchStarted{Generation: gen})
	})

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		defer cancel()
		readings, err := c.fetcher.Fetch(ctx, loc)
		if err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				log.Printf("Fetch %d for location %q cancelled", gen, loc)
			} else {
				log.Printf("[Error] Fetch %d for location %q failed: %s", gen, loc, err)
			}
			c.Dispatch(FetchFailed{Generation: gen, Location: loc, Message: err.Error()})
			return
		}
		c.Dispatch(FetchSucceeded{Generation: gen, Snapshot: reading.NewSnapshot(loc, c.now(), readings)})
	}()
}

// update runs next under the data lock, reduces the events it returns and
// then tells subscribers about the new view.
func (c *Controller) update(next func(State) []Event) {
	c.notifylock.Lock()
	defer c.notifylock.Unlock()

	c.datalock.Lock()
	before := c.state
	for _, e := range next(c.state) {
		c.state = Reduce(c.state, e)
	}
	after := c.state
	subs := make([]func(View), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.datalock.Unlock()

	if sameState(before, after) {
		return
	}
	v := Derive(after, c.catalog)
	for _, fn := range subs {
		fn(v)
	}
}

// sameState compares everything but the readings themselves; a new snapshot
// always carries a new fetch time.
func sameState(a, b State) bool {
	return a.Location == b.Location &&
		a.Loading == b.Loading &&
		a.Err == b.Err &&
		a.Generation == b.Generation &&
		a.Snapshot.FetchedAt.Equal(b.Snapshot.FetchedAt) &&
		a.Snapshot.Location == b.Snapshot.Location &&
		a.Snapshot.Len() == b.Snapshot.Len()
}
