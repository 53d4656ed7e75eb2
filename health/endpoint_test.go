package health

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	coltracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"google.golang.org/protobuf/proto"

	"github.com/jonwraymond/pagetel/observe"
)

type probe struct {
	mu    sync.Mutex
	paths []string
	auth  []string
}

func newCollector(t *testing.T, status int) (*probe, observe.Transport) {
	t.Helper()
	p := &probe{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.URL.Path == "/otlp/v1/traces" {
			if err := proto.Unmarshal(body, &coltracepb.ExportTraceServiceRequest{}); err != nil {
				t.Errorf("undecodable traces request: %v", err)
			}
		}
		p.mu.Lock()
		p.paths = append(p.paths, r.URL.Path)
		p.auth = append(p.auth, r.Header.Get("Authorization"))
		p.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	tr, err := observe.NewTransport(srv.URL, "abc123")
	if err != nil {
		t.Fatalf("NewTransport() error = %v", err)
	}
	return p, tr
}

func TestForTransport_Healthy(t *testing.T) {
	p, tr := newCollector(t, http.StatusOK)

	agg := ForTransport(tr, nil)
	results := agg.CheckAll(context.Background())

	if Overall(results) != StatusHealthy {
		t.Fatalf("Overall() = %v, results %+v", Overall(results), results)
	}
	for _, name := range []string{"traces", "metrics", "logs"} {
		r, ok := results[name]
		if !ok {
			t.Fatalf("missing result for %s", name)
		}
		if r.Details["status_code"] != http.StatusOK {
			t.Errorf("%s status_code = %v", name, r.Details["status_code"])
		}
		if r.Details["endpoint"] != tr.Endpoint(observe.Signal(name)) {
			t.Errorf("%s endpoint = %v", name, r.Details["endpoint"])
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.paths) != 3 {
		t.Fatalf("expected 3 requests, got %v", p.paths)
	}
	for _, a := range p.auth {
		if a != "Bearer abc123" {
			t.Errorf("Authorization = %q", a)
		}
	}
}

func TestEndpointChecker_Statuses(t *testing.T) {
	tests := []struct {
		code    int
		status  Status
		wantErr error
	}{
		{http.StatusAccepted, StatusHealthy, nil},
		{http.StatusUnauthorized, StatusUnhealthy, ErrUnauthorized},
		{http.StatusForbidden, StatusUnhealthy, ErrUnauthorized},
		{http.StatusNotFound, StatusUnhealthy, ErrUnexpectedStatus},
		{http.StatusTooManyRequests, StatusDegraded, ErrUnexpectedStatus},
		{http.StatusBadRequest, StatusDegraded, ErrUnexpectedStatus},
		{http.StatusInternalServerError, StatusUnhealthy, ErrUnexpectedStatus},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			_, tr := newCollector(t, tt.code)
			r := NewEndpointChecker(tr, observe.SignalTraces, nil).Check(context.Background())
			if r.Status != tt.status {
				t.Errorf("Status = %v, want %v", r.Status, tt.status)
			}
			if tt.wantErr == nil && r.Error != nil {
				t.Errorf("unexpected error: %v", r.Error)
			}
			if tt.wantErr != nil && !errors.Is(r.Error, tt.wantErr) {
				t.Errorf("Error = %v, want %v", r.Error, tt.wantErr)
			}
		})
	}
}

func TestEndpointChecker_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := srv.URL
	srv.Close()

	tr, err := observe.NewTransport(origin, "")
	if err != nil {
		t.Fatalf("NewTransport() error = %v", err)
	}
	r := NewEndpointChecker(tr, observe.SignalLogs, nil).Check(context.Background())
	if r.Status != StatusUnhealthy || r.Error == nil {
		t.Fatalf("expected unhealthy result with error, got %+v", r)
	}
	if r.Message != "collector unreachable" {
		t.Errorf("Message = %q", r.Message)
	}
}
