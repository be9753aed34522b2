package typecheck

import "reflect"

// Func is a dynamically called function: positional arguments plus ordered
// keyword arguments in, one result out.
type Func func(args []any, kwargs Kwargs) (any, error)

// Call invokes f with positional arguments only
func (f Func) Call(args ...any) (any, error) {
	return f(args, nil)
}

// Mismatches returns a record for every bound binding whose value does not
// satisfy its expected tag.
func Mismatches(bindings []Binding) []Mismatch {
	var mismatches []Mismatch
	for _, b := range bindings {
		if !b.Bound || IsUnchecked(b.Expected) {
			continue
		}
		actual := reflect.TypeOf(b.Value)
		if b.Expected.MatchType(actual) {
			continue
		}
		mismatches = append(mismatches, Mismatch{
			Index:    b.Index,
			Name:     b.Name,
			Expected: b.Expected,
			Actual:   actual,
			Value:    b.Value,
		})
	}
	return mismatches
}

// Check binds the arguments and returns a *MismatchError listing every
// argument whose runtime type differs from the type its name implies.
func (r *Registry) Check(sig Signature, args []any, kwargs Kwargs) error {
	bindings, err := r.Bind(sig, args, kwargs)
	if err != nil {
		return err
	}

	mismatches := Mismatches(bindings)
	recordCheck(displayName(sig.Name), mismatches)
	if len(mismatches) == 0 {
		return nil
	}

	r.log().Debug("rejected call",
		"func", displayName(sig.Name),
		"mismatches", len(mismatches))

	return &MismatchError{Func: displayName(sig.Name), Mismatches: mismatches}
}

// Wrap returns a Func that checks every call against sig before invoking fn
// with the original arguments. Errors returned by fn pass through untouched.
func (r *Registry) Wrap(sig Signature, fn Func) (Func, error) {
	if fn == nil {
		return nil, ErrNotFunc
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	return func(args []any, kwargs Kwargs) (any, error) {
		if err := r.Check(sig, args, kwargs); err != nil {
			return nil, err
		}
		return fn(args, kwargs)
	}, nil
}

// Check validates a call against the default registry
func Check(sig Signature, args []any, kwargs Kwargs) error {
	return DefaultRegistry.Check(sig, args, kwargs)
}

// Wrap wraps fn using the default registry
func Wrap(sig Signature, fn Func) (Func, error) {
	return DefaultRegistry.Wrap(sig, fn)
}

func displayName(name string) string {
	if name == "" {
		return "<anonymous>"
	}
	return name
}
