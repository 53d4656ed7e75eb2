//go:build js && wasm

package browser

import (
	"syscall/js"

	"github.com/jonwraymond/pagetel/page"
)

// Page reads the current page description from window.
func Page() (page.Page, error) {
	global := js.Global()
	nav := global.Get("navigator")

	loc, err := page.ParseLocation(global.Get("location").Get("href").String())
	if err != nil {
		return page.Page{}, err
	}

	return page.Page{
		UserAgent: stringOf(nav.Get("userAgent")),
		Location:  loc,
		Navigator: navigator(nav),
	}, nil
}

func navigator(nav js.Value) page.Navigator {
	n := page.Navigator{Language: stringOf(nav.Get("language"))}

	data := nav.Get("userAgentData")
	if !present(data) {
		return n
	}
	n.Platform = stringOf(data.Get("platform"))
	mobile := data.Get("mobile").Truthy()
	n.Mobile = &mobile

	brands := data.Get("brands")
	if present(brands) {
		for i := 0; i < brands.Length(); i++ {
			b := brands.Index(i)
			n.Brands = append(n.Brands, stringOf(b.Get("brand"))+" "+stringOf(b.Get("version")))
		}
	}
	return n
}

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

func stringOf(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// listen adds fn as a listener for event on target and returns a handle that
// removes it.
func listen(target js.Value, event string, fn func(js.Value)) page.Subscription {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, cb)
	return page.SubscriptionFunc(func() {
		target.Call("removeEventListener", event, cb)
		cb.Release()
	})
}

// TrackNavigation updates t on history and hash navigations.
func TrackNavigation(t *page.Tracker) page.Subscription {
	win := js.Global()
	update := func(js.Value) {
		_ = t.Navigate(win.Get("location").Get("href").String())
	}
	return page.Subscriptions{
		listen(win, "popstate", update),
		listen(win, "hashchange", update),
	}
}

// OnHide calls fn when the page is hidden or unloaded.
func OnHide(fn func()) page.Subscription {
	win := js.Global()
	return page.Subscriptions{
		listen(win.Get("document"), "visibilitychange", func(js.Value) {
			if win.Get("document").Get("visibilityState").String() == "hidden" {
				fn()
			}
		}),
		listen(win, "pagehide", func(js.Value) { fn() }),
	}
}
