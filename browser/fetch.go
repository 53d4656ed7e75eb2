//go:build js && wasm

package browser

import (
	"context"
	"errors"
	"syscall/js"

	"github.com/jonwraymond/pagetel/instrument"
	"github.com/jonwraymond/pagetel/page"
)

// InstrumentFetch replaces window.fetch with a wrapper that gives every
// request a client span and trace context headers. Requests to the collector
// paths, including the exporters' own, go straight to the original fetch.
// Closing the subscription restores it.
func InstrumentFetch(in *instrument.Instrumentation) page.Subscription {
	win := js.Global()
	orig := win.Get("fetch")
	if orig.Type() != js.TypeFunction {
		return page.SubscriptionFunc(func() {})
	}

	wrapped := js.FuncOf(func(_ js.Value, args []js.Value) any {
		req, ok := newRequest(args)
		if !ok {
			return orig.Call("apply", win, jsArgs(args))
		}

		span, headers, ok := in.StartFetch(context.Background(), instrument.Fetch{
			Method: stringOf(req.Get("method")),
			URL:    stringOf(req.Get("url")),
		})
		if !ok {
			return orig.Call("call", win, req)
		}
		h := req.Get("headers")
		for k, v := range headers {
			h.Call("set", k, v)
		}

		promise := orig.Call("call", win, req)
		var onOK, onErr js.Func
		settle := func() {
			onOK.Release()
			onErr.Release()
		}
		onOK = js.FuncOf(func(_ js.Value, args []js.Value) any {
			defer settle()
			status := 0
			if len(args) > 0 {
				status = intOf(args[0].Get("status"))
			}
			instrument.EndFetch(span, status, nil)
			return nil
		})
		onErr = js.FuncOf(func(_ js.Value, args []js.Value) any {
			defer settle()
			msg := "fetch failed"
			if len(args) > 0 {
				if s := stringOf(args[0].Get("message")); s != "" {
					msg = s
				}
			}
			instrument.EndFetch(span, 0, errors.New(msg))
			return nil
		})
		promise.Call("then", onOK, onErr)
		return promise
	})
	win.Set("fetch", wrapped)

	return page.SubscriptionFunc(func() {
		win.Set("fetch", orig)
		wrapped.Release()
	})
}

// newRequest builds a Request from fetch arguments so method, URL and
// headers are read the same way for string, URL and Request inputs. ok is
// false when the arguments are rejected; the original fetch then reports the
// error to the caller.
func newRequest(args []js.Value) (req js.Value, ok bool) {
	if len(args) == 0 {
		return js.Undefined(), false
	}
	defer func() {
		if recover() != nil {
			req, ok = js.Undefined(), false
		}
	}()
	return js.Global().Get("Request").New(jsArgs(args)...), true
}

func jsArgs(args []js.Value) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
