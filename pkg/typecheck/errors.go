package typecheck

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrTypeMismatch is matched by every *MismatchError via errors.Is.
	ErrTypeMismatch = errors.New("type mismatch")

	ErrEmptyPrefix     = errors.New("prefix must not be empty")
	ErrNilTag          = errors.New("tag must not be nil")
	ErrTooManyDefaults = errors.New("more defaults than parameters")
	ErrEmptyParamName  = errors.New("parameter name must not be empty")
	ErrDuplicateParam  = errors.New("duplicate parameter name")
	ErrNotFunc         = errors.New("value is not a function")
	ErrArity           = errors.New("parameter name count does not match function arity")
	ErrStaticConflict  = errors.New("declared parameter type contradicts its prefix")
)

// Mismatch records one binding whose value does not satisfy its expected tag.
type Mismatch struct {
	Index    int
	Name     string
	Expected Tag
	Actual   reflect.Type
	Value    any
}

// String renders the mismatch as a single report line.
func (m Mismatch) String() string {
	return fmt.Sprintf("Arg(%d) %s: Expected %s, got %s with value %s",
		m.Index, m.Name, m.Expected, typeName(m.Actual), valueString(m.Value))
}

// ActualType names the runtime type of the offending value ("nil" for nil).
func (m Mismatch) ActualType() string {
	return typeName(m.Actual)
}

// MismatchError is returned when at least one argument fails its check. The
// wrapped callable has not been invoked when this error is produced.
type MismatchError struct {
	Func       string
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	b.WriteString("type mismatch calling ")
	b.WriteString(e.Func)
	b.WriteString(":")
	for _, m := range e.Mismatches {
		b.WriteString("\n")
		b.WriteString(m.String())
	}
	return b.String()
}

// Is makes errors.Is(err, ErrTypeMismatch) hold.
func (e *MismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

func valueString(v any) string {
	if v == nil {
		return "<nil>"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
