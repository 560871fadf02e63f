package session

import (
	"log"
	"sync"

	"github.com/themeaningofmeaning/garmin-fit-analyzer/internal/store"
)

// Field names a piece of shared UI state.
type Field string

const (
	FieldWindow           Field = "window"
	FieldSessionID        Field = "session_id"
	FieldImportInProgress Field = "import_in_progress"
)

// Subscriber is notified after a field changes.
type Subscriber func()

// State holds the values every screen shares: the active query window,
// the last import batch, and whether an import is running. Subscribers
// are notified in registration order; a panicking subscriber is logged
// and never blocks the rest.
type State struct {
	mu sync.Mutex

	window           store.Window
	sessionID        int64
	importInProgress bool

	nextID      int
	subscribers map[Field][]subscription
}

type subscription struct {
	id int
	fn Subscriber
}

func NewState() *State {
	return &State{
		window:      store.WindowMonth,
		subscribers: make(map[Field][]subscription),
	}
}

// Subscribe registers fn for changes to field and returns an ID for
// Unsubscribe.
func (s *State) Subscribe(field Field, fn Subscriber) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.subscribers[field] = append(s.subscribers[field], subscription{id: s.nextID, fn: fn})
	return s.nextID
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (s *State) Unsubscribe(field Field, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscribers[field]
	for i, sub := range subs {
		if sub.id == id {
			s.subscribers[field] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

func (s *State) Window() store.Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

func (s *State) SetWindow(w store.Window) {
	s.mu.Lock()
	changed := s.window != w
	s.window = w
	subs := s.snapshot(FieldWindow)
	s.mu.Unlock()

	if changed {
		notify(subs)
	}
}

func (s *State) SessionID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

func (s *State) SetSessionID(id int64) {
	s.mu.Lock()
	changed := s.sessionID != id
	s.sessionID = id
	subs := s.snapshot(FieldSessionID)
	s.mu.Unlock()

	if changed {
		notify(subs)
	}
}

func (s *State) ImportInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.importInProgress
}

func (s *State) SetImportInProgress(v bool) {
	s.mu.Lock()
	changed := s.importInProgress != v
	s.importInProgress = v
	subs := s.snapshot(FieldImportInProgress)
	s.mu.Unlock()

	if changed {
		notify(subs)
	}
}

// FinishImport records the end of an import batch as one update per
// field, so subscribers see a consistent final state.
func (s *State) FinishImport(sessionID int64) {
	s.mu.Lock()
	sessionChanged := sessionID != 0 && s.sessionID != sessionID
	if sessionChanged {
		s.sessionID = sessionID
	}
	progressChanged := s.importInProgress
	s.importInProgress = false
	sessionSubs := s.snapshot(FieldSessionID)
	progressSubs := s.snapshot(FieldImportInProgress)
	s.mu.Unlock()

	if sessionChanged {
		notify(sessionSubs)
	}
	if progressChanged {
		notify(progressSubs)
	}
}

// snapshot copies the subscriber list so callbacks run outside the
// lock and may themselves subscribe.
func (s *State) snapshot(field Field) []subscription {
	subs := s.subscribers[field]
	out := make([]subscription, len(subs))
	copy(out, subs)
	return out
}

func notify(subs []subscription) {
	for _, sub := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("state subscriber panicked: %v", r)
				}
			}()
			sub.fn()
		}()
	}
}
