package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAggregator_RegisterOrder(t *testing.T) {
	agg := NewAggregator(0)
	if agg.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", agg.timeout, DefaultTimeout)
	}

	for _, name := range []string{"traces", "metrics", "traces"} {
		agg.Register(NewCheckerFunc(name, func(context.Context) Result { return Healthy("ok") }))
	}

	names := agg.Names()
	if len(names) != 2 || names[0] != "traces" || names[1] != "metrics" {
		t.Fatalf("Names() = %v", names)
	}
}

func TestAggregator_Check(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register(NewCheckerFunc("logs", func(context.Context) Result { return Degraded("slow", nil) }))

	r, err := agg.Check(context.Background(), "logs")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if r.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", r.Status)
	}
	if r.Timestamp.IsZero() {
		t.Error("expected timestamp")
	}

	if _, err := agg.Check(context.Background(), "missing"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("expected ErrCheckerNotFound, got %v", err)
	}
}

func TestAggregator_CheckAll(t *testing.T) {
	agg := NewAggregator(time.Second)
	agg.Register(NewCheckerFunc("traces", func(context.Context) Result { return Healthy("ok") }))
	agg.Register(NewCheckerFunc("logs", func(context.Context) Result { return Unhealthy("down", errors.New("refused")) }))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["traces"].Status != StatusHealthy || results["logs"].Status != StatusUnhealthy {
		t.Errorf("unexpected results: %+v", results)
	}
	if Overall(results) != StatusUnhealthy {
		t.Errorf("Overall() = %v, want unhealthy", Overall(results))
	}
}

func TestAggregator_Timeout(t *testing.T) {
	agg := NewAggregator(20 * time.Millisecond)
	release := make(chan struct{})
	defer close(release)
	agg.Register(NewCheckerFunc("stuck", func(context.Context) Result {
		<-release
		return Healthy("late")
	}))

	results := agg.CheckAll(context.Background())
	r := results["stuck"]
	if r.Status != StatusUnhealthy || !errors.Is(r.Error, ErrCheckTimeout) {
		t.Fatalf("expected timeout result, got %+v", r)
	}
}

func TestOverall(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"empty", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"degraded wins", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := map[string]Result{}
			for i, s := range tt.statuses {
				results[string(rune('a'+i))] = Result{Status: s}
			}
			if got := Overall(results); got != tt.want {
				t.Errorf("Overall() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus_String(t *testing.T) {
	tests := map[Status]string{
		StatusHealthy:   "healthy",
		StatusDegraded:  "degraded",
		StatusUnhealthy: "unhealthy",
		Status(99):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
