// Package notify delivers change notifications when the active key
// binding configuration is replaced.
//
// Observers subscribe to a Notifier and are called with a Change each time
// a new snapshot is loaded, a watched file triggers a reload, or a reload
// fails. Delivery is synchronous by default; WithAsync moves it to a
// buffered background goroutine.
package notify

import (
	"sort"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeLoad indicates a snapshot was loaded explicitly.
	ChangeLoad ChangeType = iota

	// ChangeReload indicates a snapshot was reloaded from watched files.
	ChangeReload

	// ChangeFailed indicates a reload was attempted and rejected. The
	// previous snapshot stays active.
	ChangeFailed
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeLoad:
		return "load"
	case ChangeReload:
		return "reload"
	case ChangeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Type is the type of change.
	Type ChangeType

	// Snapshot is the ID of the snapshot now active.
	Snapshot string

	// Previous is the ID of the replaced snapshot. Empty for the first load.
	Previous string

	// Source identifies where the change came from, e.g. a file path.
	Source string

	// Err is set for ChangeFailed.
	Err error
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	observers map[uint64]Observer
	nextID    uint64

	// Whether to notify synchronously or asynchronously
	async  bool
	buffer chan Change

	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		observers: make(map[uint64]Observer),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes. Observers are called in
// subscription order.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.observers)
}

// Notify sends a change notification to all observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliverChange(change)
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}

// deliverChange sends a change to all observers.
func (n *Notifier) deliverChange(change Change) {
	n.mu.RLock()
	ids := make([]uint64, 0, len(n.observers))
	for id := range n.observers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	observers := make([]Observer, len(ids))
	for i, id := range ids {
		observers[i] = n.observers[id]
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

// processAsync handles asynchronous notification delivery.
func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliverChange(change)
		case <-n.done:
			// Drain remaining buffered changes
			for {
				select {
				case change := <-n.buffer:
					n.deliverChange(change)
				default:
					return
				}
			}
		}
	}
}
