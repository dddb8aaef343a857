package store

import (
	"sort"
	"sync"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// EventStore holds blood drive events. Events are immutable once added.
type EventStore struct {
	mu     sync.Mutex
	events []model.BloodDriveEvent
}

func NewEventStore() *EventStore {
	return &EventStore{}
}

// Add registers a new blood drive event
func (e *EventStore) Add(event model.BloodDriveEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
}

// List returns all events sorted by date ascending (soonest first)
func (e *EventStore) List() []model.BloodDriveEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.BloodDriveEvent, len(e.events))
	copy(out, e.events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
