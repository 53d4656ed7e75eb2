// Package page models the host page that telemetry is collected for.
//
// A Page carries what the browser would expose to a script at startup: the
// user-agent string, the current location and navigator hints (platform,
// brands, language). Tracker keeps the location current across navigations
// so that records emitted later carry the URL at emission time.
//
// Dispatcher is the subscription primitive used by the event sources in
// vitals and errreport. Subscribing returns a Subscription handle; the
// startup sequence never unsubscribes, tests do.
package page
