// Package errreport turns uncaught page errors into structured log records.
//
// Classify normalizes an arbitrary thrown value into a Thrown variant. The
// Reporter emits one ERROR record per event on the "logs" logger scope,
// carrying the exception attributes and the page URL at emission time.
package errreport
