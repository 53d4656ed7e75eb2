package instrument_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/pagetel/instrument"
)

func TestStartFetch_PropagatesClientSpan(t *testing.T) {
	p := newProviders(t)
	in, err := instrument.Register(p)
	require.NoError(t, err)

	ctx, parent := in.Interaction(context.Background(), instrument.Interaction{EventType: "click"})
	span, headers, ok := in.StartFetch(ctx, instrument.Fetch{Method: "post", URL: "https://shop.example.com/api/cart"})
	require.True(t, ok)
	instrument.EndFetch(span, http.StatusCreated, nil)
	parent.End()

	sc := span.SpanContext()
	require.Contains(t, headers["traceparent"], sc.TraceID().String())
	require.Contains(t, headers["traceparent"], sc.SpanID().String())

	ended := p.Spans.Ended()
	require.Len(t, ended, 2)
	fetch := ended[0]
	require.Equal(t, "POST", fetch.Name())
	require.Equal(t, trace.SpanKindClient, fetch.SpanKind())
	require.Equal(t, parent.SpanContext().SpanID(), fetch.Parent().SpanID())

	attrs := spanAttrs(fetch)
	require.Equal(t, "POST", attrs["http.request.method"])
	require.Equal(t, "https://shop.example.com/api/cart", attrs["url.full"])
	require.Equal(t, "shop.example.com", attrs["server.address"])
	require.Equal(t, "201", attrs["http.response.status_code"])
	require.Equal(t, codes.Unset, fetch.Status().Code)
}

func TestStartFetch_SkipsCollectorPaths(t *testing.T) {
	p := newProviders(t)
	in, err := instrument.Register(p)
	require.NoError(t, err)

	for _, u := range []string{"https://shop.example.com/otlp/v1/traces", "/otlp/v1/logs"} {
		span, headers, ok := in.StartFetch(context.Background(), instrument.Fetch{Method: "POST", URL: u})
		require.False(t, ok, u)
		require.Nil(t, span)
		require.Empty(t, headers)
	}
	require.Empty(t, p.Spans.Started())
}

func TestEndFetch_Failures(t *testing.T) {
	p := newProviders(t)
	in, err := instrument.Register(p)
	require.NoError(t, err)

	span, _, ok := in.StartFetch(context.Background(), instrument.Fetch{URL: "/api/missing"})
	require.True(t, ok)
	instrument.EndFetch(span, http.StatusNotFound, nil)

	span, _, ok = in.StartFetch(context.Background(), instrument.Fetch{URL: "/api/down"})
	require.True(t, ok)
	instrument.EndFetch(span, 0, errors.New("network error"))

	ended := p.Spans.Ended()
	require.Len(t, ended, 2)
	require.Equal(t, "GET", ended[0].Name())
	require.Equal(t, codes.Error, ended[0].Status().Code)
	require.Equal(t, codes.Error, ended[1].Status().Code)
	require.Equal(t, "network error", ended[1].Status().Description)
	require.Len(t, ended[1].Events(), 1)
	require.NotContains(t, spanAttrs(ended[1]), "http.response.status_code")
}

func TestTransport_SkipsCollectorPaths(t *testing.T) {
	h, srv := newHeaderServer(t)
	p := newProviders(t)
	in, err := instrument.Register(p)
	require.NoError(t, err)

	get(t, in.Client(nil), context.Background(), srv.URL+"/otlp/v1/traces")
	require.Empty(t, h.last())
	require.Empty(t, p.Spans.Ended())
}
