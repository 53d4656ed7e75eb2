package page

import "sync"

// Subscription is a handle to a registered listener.
type Subscription interface {
	// Unsubscribe removes the listener. It is safe to call more than once.
	Unsubscribe()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

// Unsubscribe implements Subscription.
func (f SubscriptionFunc) Unsubscribe() { f() }

// Subscriptions groups handles so they can be released together.
type Subscriptions []Subscription

// Unsubscribe releases every handle in reverse registration order.
func (s Subscriptions) Unsubscribe() {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != nil {
			s[i].Unsubscribe()
		}
	}
}

// Dispatcher fans events out to subscribed listeners.
//
// Contract:
//   - Concurrency: safe for concurrent Subscribe, Dispatch and Unsubscribe.
//   - Ordering: listeners run in subscription order on the dispatching goroutine.
//   - Ownership: listeners are invoked outside the internal lock and may
//     subscribe or unsubscribe re-entrantly.
type Dispatcher[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener[T]
}

type listener[T any] struct {
	id uint64
	fn func(T)
}

// Subscribe registers fn and returns its handle. A nil fn is ignored and
// yields a no-op handle.
func (d *Dispatcher[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return SubscriptionFunc(func() {})
	}

	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.listeners = append(d.listeners, listener[T]{id: id, fn: fn})
	d.mu.Unlock()

	var once sync.Once
	return SubscriptionFunc(func() {
		once.Do(func() { d.remove(id) })
	})
}

// Dispatch delivers v to every current listener.
func (d *Dispatcher[T]) Dispatch(v T) {
	d.mu.Lock()
	snapshot := make([]listener[T], len(d.listeners))
	copy(snapshot, d.listeners)
	d.mu.Unlock()

	for _, l := range snapshot {
		l.fn(v)
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

func (d *Dispatcher[T]) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}
