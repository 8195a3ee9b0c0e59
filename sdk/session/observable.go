package session

import "sync"

// Observable holds a value and notifies subscribers of every value published
// to it. Subscribers see values in the order they were published, and a new
// subscriber immediately receives the current value.
//
// Subscriber callbacks run synchronously on the publishing goroutine. They may
// read the value or unsubscribe but must not publish to or subscribe to the
// same Observable.
type Observable[T any] struct {
	value       T
	subscribers []*subscriber[T]
	// mu guards value and subscribers
	mu sync.Mutex
	// deliveryMu serializes deliveries so that ordering holds across
	// concurrent publishers
	deliveryMu sync.Mutex
}

type subscriber[T any] struct {
	fn func(T)
}

// NewObservable returns an Observable holding the specified initial value.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value: initial,
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Subscribe registers fn, calls it with the current value and returns a
// function that cancels the subscription. Cancelling more than once is
// harmless.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.deliveryMu.Lock()
	defer o.deliveryMu.Unlock()
	s := &subscriber[T]{fn: fn}
	o.mu.Lock()
	o.subscribers = append(o.subscribers, s)
	current := o.value
	o.mu.Unlock()
	fn(current)
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		for i, sub := range o.subscribers {
			if sub == s {
				o.subscribers = append(o.subscribers[:i], o.subscribers[i+1:]...)
				return
			}
		}
	}
}

// publish sets the value and delivers it to every subscriber. A value equal to
// the current one is still delivered.
func (o *Observable[T]) publish(value T) {
	o.deliveryMu.Lock()
	defer o.deliveryMu.Unlock()
	o.mu.Lock()
	o.value = value
	subscribers := make([]*subscriber[T], len(o.subscribers))
	copy(subscribers, o.subscribers)
	o.mu.Unlock()
	for _, s := range subscribers {
		s.fn(value)
	}
}
