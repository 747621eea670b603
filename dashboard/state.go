// Package dashboard holds the dashboard's state machine and the views derived
// from it.
package dashboard

import (
	"gitlab.com/lologarithm/cydonia/reading"
)

// State is everything the dashboard knows at one moment.
type State struct {
	Location   reading.ID
	Loading    bool
	Err        string
	Snapshot   reading.Snapshot
	Generation uint64 // id of the fetch whose result is awaited
}

// Event is a state transition. Use Reduce to apply one.
type Event interface {
	apply(State) State
}

// LocationChanged selects a different site.
type LocationChanged struct {
	Location reading.ID
}

// FetchStarted marks a new fetch as the one whose result counts.
type FetchStarted struct {
	Generation uint64
}

// FetchSucceeded delivers a new snapshot.
type FetchSucceeded struct {
	Generation uint64
	Snapshot   reading.Snapshot
}

// FetchFailed reports a fetch that produced no data.
type FetchFailed struct {
	Generation uint64
	Location   reading.ID
	Message    string
}

// Reduce applies e to s and returns the new state. s is not modified.
func Reduce(s State, e Event) State {
	return e.apply(s)
}

func (e LocationChanged) apply(s State) State {
	s.Location = e.Location
	return s
}

func (e FetchStarted) apply(s State) State {
	s.Generation = e.Generation
	s.Loading = true
	s.Err = ""
	return s
}

// Results from an older fetch, or for a site no longer selected, are dropped.
func (e FetchSucceeded) apply(s State) State {
	if e.Generation != s.Generation || e.Snapshot.Location != s.Location {
		return s
	}
	s.Snapshot = e.Snapshot
	s.Loading = false
	s.Err = ""
	return s
}

// The previous snapshot stays in place on failure.
func (e FetchFailed) apply(s State) State {
	if e.Generation != s.Generation || e.Location != s.Location {
		return s
	}
	s.Loading = false
	s.Err = e.Message
	return s
}
