package typecheck

// Kwarg is a keyword argument. Go has no keyword arguments, so callers pass
// them as an ordered list and the order is preserved in reports.
type Kwarg struct {
	Name  string
	Value any
}

// KW builds a keyword argument
func KW(name string, value any) Kwarg {
	return Kwarg{Name: name, Value: value}
}

// Kwargs is an ordered keyword argument list
type Kwargs []Kwarg

// Get returns the value of the first keyword argument called name.
func (k Kwargs) Get(name string) (any, bool) {
	for _, kw := range k {
		if kw.Name == name {
			return kw.Value, true
		}
	}
	return nil, false
}

// Binding is the value a parameter resolves to for one call.
type Binding struct {
	Index    int
	Name     string
	Value    any
	Bound    bool
	Expected Tag
}

// Bind resolves every declared parameter against the call's arguments, then
// appends one binding per keyword argument in call order.
//
// A declared parameter takes its positional value, else its keyword value,
// else its declared default; with none of these it stays unbound and is not
// checked. Keyword arguments are bound a second time after the declared
// parameters even when their name is declared, so a keyword argument for a
// declared parameter is checked twice. Positional values beyond the declared
// parameters are not checked.
func (r *Registry) Bind(sig Signature, args []any, kwargs Kwargs) ([]Binding, error) {
	params, err := r.Describe(sig)
	if err != nil {
		return nil, err
	}

	bindings := make([]Binding, 0, len(params)+len(kwargs))
	for _, p := range params {
		b := Binding{Index: p.Index, Name: p.Name, Expected: p.Expected}
		if p.Index < len(args) {
			b.Value, b.Bound = args[p.Index], true
		} else if v, ok := kwargs.Get(p.Name); ok {
			b.Value, b.Bound = v, true
		} else if p.HasDefault {
			b.Value, b.Bound = p.Default, true
		}
		bindings = append(bindings, b)
	}

	for i, kw := range kwargs {
		bindings = append(bindings, Binding{
			Index:    len(params) + i,
			Name:     kw.Name,
			Value:    kw.Value,
			Bound:    true,
			Expected: r.Expected(kw.Name),
		})
	}
	return bindings, nil
}
