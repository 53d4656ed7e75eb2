//go:build js && wasm

package browser

import (
	"sync/atomic"
	"syscall/js"

	"github.com/jonwraymond/pagetel/page"
	"github.com/jonwraymond/pagetel/vitals"
)

// VitalsSource subscribes to the web-vitals library loaded on the page.
type VitalsSource struct {
	lib js.Value
}

// NewVitalsSource uses the global webVitals object. ok is false when the
// library is not loaded.
func NewVitalsSource() (src VitalsSource, ok bool) {
	lib := js.Global().Get("webVitals")
	return VitalsSource{lib: lib}, present(lib)
}

// Subscribe implements vitals.Source. The library cannot drop a callback, so
// the handle only stops delivery.
func (s VitalsSource) Subscribe(kind vitals.Kind, fn func(vitals.Metric)) page.Subscription {
	register := s.lib.Get("on" + string(kind))
	if register.Type() != js.TypeFunction {
		return page.SubscriptionFunc(func() {})
	}

	var active atomic.Bool
	active.Store(true)
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 || !active.Load() {
			return nil
		}
		m := args[0]
		fn(vitals.Metric{
			Name:           kind,
			Value:          m.Get("value").Float(),
			ID:             stringOf(m.Get("id")),
			Delta:          m.Get("delta").Float(),
			Rating:         vitals.Rating(stringOf(m.Get("rating"))),
			NavigationType: vitals.NavigationType(stringOf(m.Get("navigationType"))),
		})
		return nil
	})
	register.Invoke(cb)

	return page.SubscriptionFunc(func() { active.Store(false) })
}
