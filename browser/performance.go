//go:build js && wasm

package browser

import (
	"context"
	"fmt"
	"syscall/js"
	"time"

	"github.com/jonwraymond/pagetel/instrument"
	"github.com/jonwraymond/pagetel/page"
)

// NavigationTiming reads the navigation entry of the performance timeline.
// ok is false when the browser has none.
func NavigationTiming() (nt instrument.NavigationTiming, ok bool) {
	perf := js.Global().Get("performance")
	if !present(perf) || perf.Get("getEntriesByType").Type() != js.TypeFunction {
		return nt, false
	}
	entries := perf.Call("getEntriesByType", "navigation")
	if entries.Length() == 0 {
		return nt, false
	}
	e := entries.Index(0)
	origin := perf.Get("timeOrigin").Float()

	at := func(name string) time.Time {
		v := e.Get(name)
		if v.Type() != js.TypeNumber || v.Float() == 0 {
			return time.Time{}
		}
		return epochMillis(origin + v.Float())
	}

	return instrument.NavigationTiming{
		URL:                        stringOf(e.Get("name")),
		FetchStart:                 at("fetchStart"),
		DomainLookupStart:          at("domainLookupStart"),
		DomainLookupEnd:            at("domainLookupEnd"),
		ConnectStart:               at("connectStart"),
		ConnectEnd:                 at("connectEnd"),
		RequestStart:               at("requestStart"),
		ResponseStart:              at("responseStart"),
		ResponseEnd:                at("responseEnd"),
		DOMInteractive:             at("domInteractive"),
		DOMContentLoadedEventStart: at("domContentLoadedEventStart"),
		DOMContentLoadedEventEnd:   at("domContentLoadedEventEnd"),
		DOMComplete:                at("domComplete"),
		LoadEventStart:             at("loadEventStart"),
		LoadEventEnd:               at("loadEventEnd"),
	}, true
}

func epochMillis(ms float64) time.Time {
	return time.UnixMicro(int64(ms * 1000))
}

// ObserveLongTasks records every long task reported by the browser.
func ObserveLongTasks(in *instrument.Instrumentation) page.Subscription {
	ctor := js.Global().Get("PerformanceObserver")
	if ctor.Type() != js.TypeFunction {
		return page.SubscriptionFunc(func() {})
	}

	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries := args[0].Call("getEntries")
		for i := 0; i < entries.Length(); i++ {
			d := entries.Index(i).Get("duration").Float()
			in.LongTask(context.Background(), time.Duration(d*float64(time.Millisecond)))
		}
		return nil
	})
	obs := ctor.New(cb)
	opts := js.Global().Get("Object").New()
	opts.Set("type", "longtask")
	opts.Set("buffered", true)
	obs.Call("observe", opts)

	return page.SubscriptionFunc(func() {
		obs.Call("disconnect")
		cb.Release()
	})
}

// ObserveInteractions starts and ends one span per user event of the given
// types on the document.
func ObserveInteractions(in *instrument.Instrumentation, t *page.Tracker, types ...string) page.Subscription {
	if len(types) == 0 {
		types = []string{"click", "submit"}
	}
	doc := js.Global().Get("document")

	subs := make(page.Subscriptions, 0, len(types))
	for _, typ := range types {
		subs = append(subs, listen(doc, typ, func(ev js.Value) {
			target := ev.Get("target")
			_, span := in.Interaction(context.Background(), instrument.Interaction{
				EventType: typ,
				Target:    stringOf(target.Get("tagName")),
				XPath:     xpath(target),
				URL:       t.Location().Href,
			})
			span.End()
		}))
	}
	return subs
}

// xpath locates el by id when it has one, otherwise by its position among
// same-tag siblings up to the nearest ancestor with an id.
func xpath(el js.Value) string {
	path := ""
	for present(el) && el.Get("nodeType").Int() == 1 {
		if id := stringOf(el.Get("id")); id != "" {
			return fmt.Sprintf(`//*[@id="%s"]`, id) + path
		}
		tag := stringOf(el.Get("tagName"))
		idx := 1
		for sib := el.Get("previousElementSibling"); present(sib); sib = sib.Get("previousElementSibling") {
			if stringOf(sib.Get("tagName")) == tag {
				idx++
			}
		}
		path = fmt.Sprintf("/%s[%d]", tag, idx) + path
		el = el.Get("parentElement")
	}
	return path
}
