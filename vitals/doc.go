// Package vitals records Core Web Vitals as metric observations.
//
// A Recorder owns one instrument per vital under the "web-vitals" meter
// scope and subscribes to a Source that delivers vital reports. Bus is the
// in-process Source used by hosts that forward browser callbacks.
package vitals
