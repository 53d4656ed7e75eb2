package errreport

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type stringer struct{ s string }

func (s stringer) String() string { return s.s }

type panicError struct{}

func (panicError) Error() string { panic("broken Error method") }

type panicStringer struct{}

func (panicStringer) String() string { panic("broken String method") }

type stackError struct{}

func (stackError) Error() string      { return "disk full" }
func (stackError) StackTrace() string { return "main.write\n\tmain.go:10" }

func TestClassify(t *testing.T) {
	var nilException *Exception

	tests := []struct {
		name string
		in   any
		want Thrown
	}{
		{
			name: "named exception",
			in:   &Exception{Name: "TypeError", Message: "boom", Stack: "at f (app.js:1:1)"},
			want: Structured{Name: "TypeError", Message: "boom", Stack: "at f (app.js:1:1)"},
		},
		{
			name: "plain go error",
			in:   errors.New("plain"),
			want: Structured{Name: "*errors.errorString", Message: "plain"},
		},
		{
			name: "wrapped error",
			in:   fmt.Errorf("ctx: %w", errors.New("inner")),
			want: Structured{Name: "*fmt.wrapError", Message: "ctx: inner"},
		},
		{
			name: "error with stack",
			in:   stackError{},
			want: Structured{Name: "errreport.stackError", Message: "disk full", Stack: "main.write\n\tmain.go:10"},
		},
		{name: "string", in: "oops", want: StringLike{Value: "oops"}},
		{name: "empty string", in: "", want: StringLike{Value: ""}},
		{name: "stringer", in: stringer{"boxed"}, want: StringLike{Value: "boxed"}},
		{name: "nil", in: nil, want: Opaque{}},
		{name: "number", in: 42, want: Opaque{}},
		{name: "object", in: map[string]any{"code": 7}, want: Opaque{}},
		{name: "panicking error", in: panicError{}, want: Opaque{}},
		{name: "panicking stringer", in: panicStringer{}, want: Opaque{}},
		{name: "nil exception pointer", in: nilException, want: Opaque{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				require.Equal(t, tc.want, Classify(tc.in))
			})
		})
	}
}

func TestExceptionAttributes(t *testing.T) {
	keys := func(t Thrown) []string {
		var out []string
		for _, kv := range exceptionAttributes(t) {
			out = append(out, kv.Key)
		}
		return out
	}

	require.Equal(t,
		[]string{"exception.type", "exception.message", "exception.stacktrace"},
		keys(Structured{Name: "TypeError", Message: "boom", Stack: "s"}))
	require.Equal(t,
		[]string{"exception.type", "exception.message"},
		keys(Structured{Name: "TypeError", Message: "boom"}))
	require.Equal(t, []string{"exception.message"}, keys(StringLike{Value: "oops"}))
	require.Empty(t, keys(Opaque{}))
}

func TestException_Error(t *testing.T) {
	e := &Exception{Name: "RangeError", Message: "out of range"}
	require.Equal(t, "out of range", e.Error())
	require.Equal(t, "RangeError", e.ErrorName())
}
