//go:build js && wasm

package browser

import (
	"syscall/js"

	"github.com/jonwraymond/pagetel/errreport"
	"github.com/jonwraymond/pagetel/page"
)

// opaque stands in for thrown values with no usable text.
type opaque struct{}

// ErrorTarget delivers window error events.
type ErrorTarget struct{}

// OnError implements errreport.Target.
func (ErrorTarget) OnError(fn func(errreport.ErrorEvent)) page.Subscription {
	return listen(js.Global(), "error", func(ev js.Value) {
		fn(errreport.ErrorEvent{
			Message:  stringOf(ev.Get("message")),
			Error:    thrownValue(ev.Get("error")),
			Filename: stringOf(ev.Get("filename")),
			Line:     intOf(ev.Get("lineno")),
			Column:   intOf(ev.Get("colno")),
		})
	})
}

// thrownValue converts a thrown script value into the Go value Classify
// expects.
func thrownValue(v js.Value) any {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil
	case js.TypeString:
		return v.String()
	case js.TypeObject:
		global := js.Global()
		if v.InstanceOf(global.Get("Error")) {
			return &errreport.Exception{
				Name:    stringOf(v.Get("name")),
				Message: stringOf(v.Get("message")),
				Stack:   stringOf(v.Get("stack")),
			}
		}
		// new String("...") is thrown as an object wrapper.
		if v.InstanceOf(global.Get("String")) {
			return v.Call("toString").String()
		}
		return opaque{}
	default:
		return opaque{}
	}
}

func intOf(v js.Value) int {
	if v.Type() != js.TypeNumber {
		return 0
	}
	return v.Int()
}
