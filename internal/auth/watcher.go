package auth

import (
	"sync"

	"jobi-server/pkg/models"
)

// Watcher fans session changes out to registered observers. Subscribe
// returns an unsubscribe handle so observers release their registration on
// teardown instead of leaking callbacks.
type Watcher struct {
	mu        sync.Mutex
	nextID    int
	callbacks map[int]func(*models.User)
}

// NewWatcher creates a new session watcher
func NewWatcher() *Watcher {
	return &Watcher{
		callbacks: make(map[int]func(*models.User)),
	}
}

// Subscribe registers fn to receive session changes. The returned function
// cancels the subscription and is safe to call more than once.
func (w *Watcher) Subscribe(fn func(*models.User)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.callbacks[id] = fn

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.callbacks, id)
	}
}

// notify delivers the session change to every subscriber
func (w *Watcher) notify(user *models.User) {
	w.mu.Lock()
	subscribers := make([]func(*models.User), 0, len(w.callbacks))
	for _, fn := range w.callbacks {
		subscribers = append(subscribers, fn)
	}
	w.mu.Unlock()

	for _, fn := range subscribers {
		fn(user)
	}
}
