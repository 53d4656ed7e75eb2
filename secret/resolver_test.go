package secret

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type stubProvider struct {
	name   string
	values map[string]string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := s.values[ref]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func mapLookup(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParseRef(t *testing.T) {
	provider, ref, ok := ParseRef("secretref:file:/run/secrets/key")
	if !ok {
		t.Fatalf("expected reference to parse")
	}
	if provider != "file" || ref != "/run/secrets/key" {
		t.Fatalf("unexpected values: %q %q", provider, ref)
	}

	for _, v := range []string{"abc123", "secretref:", "secretref:file", "secretref::x", "secretref:file:"} {
		if _, _, ok := ParseRef(v); ok {
			t.Fatalf("expected %q not to parse", v)
		}
	}
}

func TestResolver_PlainValue(t *testing.T) {
	r := NewResolver(mapLookup(nil))
	got, err := r.Resolve(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "abc123" {
		t.Fatalf("Resolve() = %q, want %q", got, "abc123")
	}
}

func TestResolver_FullRef(t *testing.T) {
	r := NewResolver(mapLookup(nil), &stubProvider{name: "stub", values: map[string]string{"alpha": "one"}})

	got, err := r.Resolve(context.Background(), "secretref:stub:alpha")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "one" {
		t.Fatalf("Resolve() = %q, want %q", got, "one")
	}
}

func TestResolver_InlineRefs(t *testing.T) {
	r := NewResolver(mapLookup(nil), &stubProvider{name: "stub", values: map[string]string{"a": "one", "b": "two"}})

	got, err := r.Resolve(context.Background(), "x secretref:stub:a y secretref:stub:b")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "x one y two" {
		t.Fatalf("Resolve() = %q", got)
	}
}

func TestResolver_Errors(t *testing.T) {
	r := NewResolver(mapLookup(nil), &stubProvider{name: "stub", values: map[string]string{"empty": ""}})

	tests := []struct {
		value string
		want  error
	}{
		{"secretref:vault:key", ErrUnknownProvider},
		{"secretref:stub:missing", ErrNotFound},
		{"secretref:stub:empty", ErrEmpty},
		{"${NOPE}", ErrMissingVariable},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.value)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tt.value, err, tt.want)
			}
		})
	}
}

func TestResolver_ExpandsPlaceholders(t *testing.T) {
	r := NewResolver(mapLookup(map[string]string{"X": "y", "DIR": "/run/secrets"}),
		&stubProvider{name: "stub", values: map[string]string{"/run/secrets/key": "k1"}})

	got, err := r.Resolve(context.Background(), "$$${X}")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "$y" {
		t.Fatalf("Resolve() = %q, want %q", got, "$y")
	}

	got, err = r.Resolve(context.Background(), "secretref:stub:${DIR}/key")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "k1" {
		t.Fatalf("Resolve() = %q, want %q", got, "k1")
	}
}

func TestResolver_MissingVariablesNamed(t *testing.T) {
	r := NewResolver(mapLookup(map[string]string{"PRESENT": "ok"}))

	_, err := r.Resolve(context.Background(), "${PRESENT} ${B_MISSING} ${A_MISSING} ${A_MISSING}")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.HasSuffix(err.Error(), "A_MISSING, B_MISSING") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefault_EnvAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	r := Default(mapLookup(map[string]string{"CI_KEY": "fromenv"}))

	tests := []struct{ value, want string }{
		{"secretref:env:CI_KEY", "fromenv"},
		{"secretref:file:" + path, "fromfile"},
	}
	for _, tt := range tests {
		value, want := tt.value, tt.want
		got, err := r.Resolve(context.Background(), value)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", value, err)
		}
		if got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", value, got, want)
		}
	}

	_, err := r.Resolve(context.Background(), "secretref:file:"+filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestErrorsDoNotLeakValues(t *testing.T) {
	r := NewResolver(mapLookup(map[string]string{"K": "supersecret"}),
		&stubProvider{name: "stub", values: map[string]string{}})

	_, err := r.Resolve(context.Background(), "secretref:stub:${K}")
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Contains(err.Error(), "supersecret") {
		t.Fatalf("error leaks resolved value: %v", err)
	}
}
