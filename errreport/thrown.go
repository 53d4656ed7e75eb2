package errreport

import "fmt"

// Thrown is the normalized form of a thrown value. It is one of Structured,
// StringLike or Opaque.
type Thrown interface {
	thrown()
}

// Structured is an error value with a name, a message and an optional stack.
type Structured struct {
	Name    string
	Message string
	Stack   string
}

// StringLike is a string or a value with a string form. It carries a
// message but no type or stack.
type StringLike struct {
	Value string
}

// Opaque is anything else. No exception attributes are derived from it.
type Opaque struct{}

func (Structured) thrown() {}
func (StringLike) thrown() {}
func (Opaque) thrown()     {}

// Named is implemented by errors that carry their own type name.
type Named interface {
	ErrorName() string
}

// StackTracer is implemented by errors that carry a stack trace.
type StackTracer interface {
	StackTrace() string
}

// Classify normalizes v. It never panics: a value whose Error or String
// method panics is classified as Opaque.
func Classify(v any) (t Thrown) {
	defer func() {
		if recover() != nil {
			t = Opaque{}
		}
	}()

	switch x := v.(type) {
	case nil:
		return Opaque{}
	case error:
		s := Structured{Message: x.Error()}
		if n, ok := x.(Named); ok {
			s.Name = n.ErrorName()
		} else {
			s.Name = fmt.Sprintf("%T", x)
		}
		if st, ok := x.(StackTracer); ok {
			s.Stack = st.StackTrace()
		}
		return s
	case string:
		return StringLike{Value: x}
	case fmt.Stringer:
		return StringLike{Value: x.String()}
	default:
		return Opaque{}
	}
}

// Exception is a named error with an optional stack, the Go form of a
// script error object.
type Exception struct {
	Name    string
	Message string
	Stack   string
}

// Error returns the message.
func (e *Exception) Error() string { return e.Message }

// ErrorName implements Named.
func (e *Exception) ErrorName() string { return e.Name }

// StackTrace implements StackTracer.
func (e *Exception) StackTrace() string { return e.Stack }
