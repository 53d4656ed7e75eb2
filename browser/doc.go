//go:build js && wasm

// Package browser binds a session to a real browser page through
// syscall/js. It reads the navigator and location, forwards window error
// events and web-vitals callbacks, and feeds navigation timing, long tasks,
// user interactions, fetch calls and history navigations to the
// instrumentation.
//
// The web-vitals library is expected as the global webVitals object.
package browser
