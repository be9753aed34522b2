package typecheck

import "fmt"

// Signature lists what a callable declares: its parameter names in order and
// the defaults of its trailing parameters.
type Signature struct {
	Name     string
	Params   []string
	Defaults []any
}

// Param describes one declared parameter
type Param struct {
	Index      int
	Name       string
	Default    any
	HasDefault bool
	Expected   Tag
}

// Validate checks the signature is well formed
func (s Signature) Validate() error {
	if len(s.Defaults) > len(s.Params) {
		return fmt.Errorf("%s: %w: %d defaults for %d parameters", s.Name, ErrTooManyDefaults, len(s.Defaults), len(s.Params))
	}

	seen := make(map[string]struct{}, len(s.Params))
	for i, name := range s.Params {
		if name == "" {
			return fmt.Errorf("%s: %w at position %d", s.Name, ErrEmptyParamName, i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%s: %w: %s", s.Name, ErrDuplicateParam, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// defaultFor returns the declared default for the parameter at index i.
func (s Signature) defaultFor(i int) (any, bool) {
	offset := len(s.Params) - len(s.Defaults)
	if i < offset || i >= len(s.Params) {
		return nil, false
	}
	return s.Defaults[i-offset], true
}

// Describe resolves one descriptor per declared parameter.
func (r *Registry) Describe(sig Signature) ([]Param, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	params := make([]Param, len(sig.Params))
	for i, name := range sig.Params {
		def, ok := sig.defaultFor(i)
		params[i] = Param{
			Index:      i,
			Name:       name,
			Default:    def,
			HasDefault: ok,
			Expected:   r.Expected(name),
		}
	}
	return params, nil
}
