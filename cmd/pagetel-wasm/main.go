//go:build js && wasm

// Package main is the browser entry point. Identity is injected at build
// time:
//
//	GOOS=js GOARCH=wasm go build -ldflags "-X main.appName=storefront -X main.appVersion=1.4.0 -X main.buildMode=production -X main.apiKey=..." ./cmd/pagetel-wasm
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonwraymond/pagetel/browser"
	"github.com/jonwraymond/pagetel/config"
	"github.com/jonwraymond/pagetel/observe"
	"github.com/jonwraymond/pagetel/session"
)

var (
	appName    string
	appVersion string
	buildMode  string
	apiKey     string
)

func main() {
	ctx := context.Background()

	env, err := config.FromMap(map[string]string{
		config.VarAppName:    appName,
		config.VarAppVersion: appVersion,
		config.VarBuildMode:  buildMode,
		config.VarAPIKey:     apiKey,
	})
	if err != nil {
		fail(err)
	}

	pg, err := browser.Page()
	if err != nil {
		fail(err)
	}

	opts := []session.Option{session.WithErrorTarget(browser.ErrorTarget{})}
	if src, ok := browser.NewVitalsSource(); ok {
		opts = append(opts, session.WithVitalsSource(src))
	}

	s, err := session.Start(ctx, env, pg, opts...)
	if err != nil {
		fail(err)
	}

	in := s.Instrumentation()
	if nt, ok := browser.NavigationTiming(); ok {
		in.DocumentLoad(ctx, nt)
	}
	browser.InstrumentFetch(in)
	browser.TrackNavigation(s.Tracker())
	browser.ObserveLongTasks(in)
	browser.ObserveInteractions(in, s.Tracker())
	// Exports wait on fetch, which cannot resolve while a JS callback is
	// still running, so the flush runs on its own goroutine.
	browser.OnHide(func() {
		go func() {
			flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := s.Flush(flushCtx); err != nil {
				s.Logger().Warn(flushCtx, "flush on hide failed", observe.Field{Key: "error", Value: err.Error()})
			}
		}()
	})

	select {}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "pagetel:", err)
	os.Exit(1)
}
