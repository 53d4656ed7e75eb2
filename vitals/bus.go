package vitals

import (
	"github.com/jonwraymond/pagetel/page"
)

// Bus is an in-process Source. Hosts publish browser reports into it.
type Bus struct {
	dispatchers map[Kind]*page.Dispatcher[Metric]
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	b := &Bus{dispatchers: make(map[Kind]*page.Dispatcher[Metric], len(instruments))}
	for _, k := range Kinds() {
		b.dispatchers[k] = &page.Dispatcher[Metric]{}
	}
	return b
}

// Subscribe implements Source. Unknown kinds yield a no-op handle.
func (b *Bus) Subscribe(kind Kind, fn func(Metric)) page.Subscription {
	d, ok := b.dispatchers[kind]
	if !ok {
		return page.SubscriptionFunc(func() {})
	}
	return d.Subscribe(fn)
}

// Publish delivers m to the listeners of m.Name.
func (b *Bus) Publish(m Metric) error {
	d, ok := b.dispatchers[m.Name]
	if !ok {
		return ErrUnknownKind
	}
	d.Dispatch(m)
	return nil
}

// Listeners returns the number of listeners for kind.
func (b *Bus) Listeners(kind Kind) int {
	if d, ok := b.dispatchers[kind]; ok {
		return d.Len()
	}
	return 0
}
