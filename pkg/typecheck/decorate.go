package typecheck

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var errorType = reflect.TypeFor[error]()

// Decorate wraps a Go function with argument checking using the default
// registry. names gives the parameter names in order, since Go cannot recover
// them at runtime. The returned function has the same type as fn.
//
// Parameters with a concrete static type are checked once, here: a prefix that
// contradicts the declared type fails with ErrStaticConflict. Interface typed
// parameters are checked on every call against their dynamic value. When fn's
// last result is an error a mismatch is returned through it; otherwise the
// wrapper panics with the *MismatchError.
func Decorate[F any](fn F, names ...string) (F, error) {
	return DecorateWith(DefaultRegistry, fn, names...)
}

// MustDecorate is like Decorate but panics if fn cannot be decorated
func MustDecorate[F any](fn F, names ...string) F {
	wrapped, err := Decorate(fn, names...)
	if err != nil {
		panic(fmt.Sprintf("typecheck: %v", err))
	}
	return wrapped
}

// DecorateWith is Decorate against an explicit registry
func DecorateWith[F any](r *Registry, fn F, names ...string) (F, error) {
	var zero F

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return zero, ErrNotFunc
	}

	t := v.Type()
	sig := Signature{Name: FuncName(fn), Params: names}
	if len(names) != t.NumIn() {
		return zero, fmt.Errorf("%s: %w: %d names for %d parameters", sig.Name, ErrArity, len(names), t.NumIn())
	}
	if err := sig.Validate(); err != nil {
		return zero, err
	}

	for i, name := range names {
		in := t.In(i)
		if in.Kind() == reflect.Interface {
			continue
		}
		if tag := r.Expected(name); !tag.MatchType(in) {
			return zero, fmt.Errorf("%s: %w: %s is %s but its prefix expects %s",
				sig.Name, ErrStaticConflict, name, in, tag)
		}
	}

	returnsErr := t.NumOut() > 0 && t.Out(t.NumOut()-1) == errorType

	wrapped := reflect.MakeFunc(t, func(in []reflect.Value) []reflect.Value {
		args := make([]any, len(in))
		for i, arg := range in {
			args[i] = arg.Interface()
		}

		if err := r.Check(sig, args, nil); err != nil {
			if !returnsErr {
				panic(err)
			}
			out := make([]reflect.Value, t.NumOut())
			for i := range out {
				out[i] = reflect.Zero(t.Out(i))
			}
			out[len(out)-1] = reflect.ValueOf(&err).Elem()
			return out
		}

		if t.IsVariadic() {
			return v.CallSlice(in)
		}
		return v.Call(in)
	})

	return wrapped.Interface().(F), nil
}

// FuncName returns the short name of a function value: "helloWorld" for
// "github.com/acme/app/views.helloWorld" and "Show" for a method value.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}

	name := strings.TrimSuffix(f.Name(), "-fm")
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
