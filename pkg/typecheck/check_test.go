package typecheck

import (
	"errors"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fruitSig mirrors fn(fCount, sName, dctTest, iThing, untyped, fApple, **kwargs)
var fruitSig = Signature{
	Name:   "fruit",
	Params: []string{"fCount", "sName", "dctTest", "iThing", "untyped", "fApple"},
}

func recordingFunc(calls *int) Func {
	return func(args []any, kwargs Kwargs) (any, error) {
		*calls++
		return len(args) + len(kwargs), nil
	}
}

func TestWrap_RejectsMismatchBeforeCalling(t *testing.T) {
	r := NewRegistry(WithLogger(slogt.New(t)))
	calls := 0

	fn, err := r.Wrap(fruitSig, recordingFunc(&calls))
	require.NoError(t, err)

	_, err = fn(
		[]any{1.0, "banana", map[string]string{"hell": "world"}, "s", "whatevs"},
		Kwargs{KW("fApple", 1.2)},
	)

	require.Error(t, err)
	assert.Equal(t, 0, calls)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	var mismatchErr *MismatchError
	require.True(t, errors.As(err, &mismatchErr))
	require.Len(t, mismatchErr.Mismatches, 1)

	m := mismatchErr.Mismatches[0]
	assert.Equal(t, 3, m.Index)
	assert.Equal(t, "iThing", m.Name)
	assert.Equal(t, Integer, m.Expected)
	assert.Equal(t, "s", m.Value)

	assert.Equal(t,
		"type mismatch calling fruit:\nArg(3) iThing: Expected integer, got string with value s",
		err.Error())
}

func TestWrap_ForwardsWellTypedCall(t *testing.T) {
	r := NewRegistry()
	calls := 0

	fn, err := r.Wrap(fruitSig, recordingFunc(&calls))
	require.NoError(t, err)

	result, err := fn(
		[]any{1.0, "banana", map[string]string{"hell": "world"}, 1, 1},
		Kwargs{KW("fApple", 1.2)},
	)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 6, result)
}

func TestWrap_PropagatesCallableError(t *testing.T) {
	boom := errors.New("boom")
	fn, err := NewRegistry().Wrap(Signature{Name: "explode", Params: []string{"iCount"}},
		func(args []any, kwargs Kwargs) (any, error) {
			return nil, boom
		})
	require.NoError(t, err)

	_, err = fn.Call(3)
	assert.Same(t, boom, err)
}

func TestWrap_InvalidSignature(t *testing.T) {
	r := NewRegistry()
	noop := func(args []any, kwargs Kwargs) (any, error) { return nil, nil }

	_, err := r.Wrap(Signature{Params: []string{"a"}, Defaults: []any{1, 2}}, noop)
	assert.ErrorIs(t, err, ErrTooManyDefaults)

	_, err = r.Wrap(Signature{Params: []string{"iA", "iA"}}, noop)
	assert.ErrorIs(t, err, ErrDuplicateParam)

	_, err = r.Wrap(Signature{Params: []string{""}}, noop)
	assert.ErrorIs(t, err, ErrEmptyParamName)

	_, err = r.Wrap(Signature{}, nil)
	assert.ErrorIs(t, err, ErrNotFunc)
}

func TestCheck_RegisteredPrefixesAcceptMatchingValues(t *testing.T) {
	r := NewRegistry()

	values := map[string]any{
		"iValue":   42,
		"sValue":   "text",
		"bValue":   false,
		"fValue":   2.5,
		"arrValue": []string{"a"},
		"dctValue": map[string]int{},
		"setValue": map[int]struct{}{},
		"objValue": &struct{}{},
		"fnValue":  func() {},
		"clsValue": errorType,
		"aValue":   nil,
	}

	for name, value := range values {
		t.Run(name, func(t *testing.T) {
			sig := Signature{Name: "accept", Params: []string{name}}
			assert.NoError(t, r.Check(sig, []any{value}, nil))
		})
	}
}

func TestCheck_UncheckedNamesAcceptAnything(t *testing.T) {
	r := NewRegistry()
	sig := Signature{Name: "loose", Params: []string{"untyped", "Upper", "_x", "aThing", "zzValue"}}

	assert.NoError(t, r.Check(sig, []any{nil, 1, "s", 2.0, []int{}}, nil))
	assert.NoError(t, r.Check(sig, []any{"s", nil, nil, nil, nil}, nil))
}

func TestCheck_MismatchReportsEveryOffender(t *testing.T) {
	r := NewRegistry()
	sig := Signature{Name: "many", Params: []string{"iA", "fB", "sC"}}

	err := r.Check(sig, []any{"x", 1, nil}, nil)
	require.Error(t, err)

	assert.Equal(t, "type mismatch calling many:\n"+
		"Arg(0) iA: Expected integer, got string with value x\n"+
		"Arg(1) fB: Expected float, got int with value 1\n"+
		"Arg(2) sC: Expected string, got nil with value <nil>",
		err.Error())
}

func TestCheck_DefaultValueIsValidated(t *testing.T) {
	r := NewRegistry()
	sig := Signature{Name: "withDefault", Params: []string{"sName", "iLimit"}, Defaults: []any{"ten"}}

	err := r.Check(sig, []any{"bob"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Arg(1) iLimit: Expected integer, got string with value ten")

	// a positional override replaces the default
	assert.NoError(t, r.Check(sig, []any{"bob", 10}, nil))
}

func TestCheck_UnboundParamIsSkipped(t *testing.T) {
	r := NewRegistry()
	sig := Signature{Name: "partial", Params: []string{"sName", "iLimit"}}

	assert.NoError(t, r.Check(sig, []any{"bob"}, nil))
}

func TestCheck_KeywordMismatchWithGoodPositionals(t *testing.T) {
	r := NewRegistry()

	err := r.Check(fruitSig,
		[]any{1.0, "banana", map[string]string{}, 1, nil},
		Kwargs{KW("fApple", 1.2), KW("iExtra", "nope")},
	)
	require.Error(t, err)

	var mismatchErr *MismatchError
	require.ErrorAs(t, err, &mismatchErr)
	require.Len(t, mismatchErr.Mismatches, 1)
	assert.Equal(t, "iExtra", mismatchErr.Mismatches[0].Name)
	assert.Equal(t, 7, mismatchErr.Mismatches[0].Index)
}

// A keyword argument naming a declared parameter is bound twice: once as the
// declared parameter and once as a keyword argument. Both bindings are checked.
func TestCheck_DeclaredKeywordIsCheckedTwice(t *testing.T) {
	r := NewRegistry()
	sig := Signature{Name: "twice", Params: []string{"sName", "iLimit"}, Defaults: []any{5}}

	err := r.Check(sig, []any{"bob"}, Kwargs{KW("iLimit", "lots")})
	require.Error(t, err)

	var mismatchErr *MismatchError
	require.ErrorAs(t, err, &mismatchErr)
	require.Len(t, mismatchErr.Mismatches, 2)
	assert.Equal(t, 1, mismatchErr.Mismatches[0].Index)
	assert.Equal(t, 2, mismatchErr.Mismatches[1].Index)

	// the well-typed default is not checked once a keyword overrides it
	assert.NoError(t, r.Check(sig, []any{"bob"}, Kwargs{KW("iLimit", 7)}))
}

func TestCheck_ExtraPositionalsAreForwardedUnchecked(t *testing.T) {
	r := NewRegistry()
	calls := 0
	fn, err := r.Wrap(Signature{Name: "variadic", Params: []string{"iFirst"}}, recordingFunc(&calls))
	require.NoError(t, err)

	result, err := fn.Call(1, "extra", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result)
}

func TestBind_Order(t *testing.T) {
	r := NewRegistry()
	sig := Signature{Params: []string{"iA", "sB", "fC"}, Defaults: []any{0.5}}

	bindings, err := r.Bind(sig, []any{1}, Kwargs{KW("zz", true), KW("sB", "b")})
	require.NoError(t, err)
	require.Len(t, bindings, 5)

	assert.Equal(t, Binding{Index: 0, Name: "iA", Value: 1, Bound: true, Expected: Integer}, bindings[0])
	assert.Equal(t, Binding{Index: 1, Name: "sB", Value: "b", Bound: true, Expected: Text}, bindings[1])
	assert.Equal(t, Binding{Index: 2, Name: "fC", Value: 0.5, Bound: true, Expected: Float}, bindings[2])
	assert.Equal(t, Binding{Index: 3, Name: "zz", Value: true, Bound: true, Expected: Unchecked}, bindings[3])
	assert.Equal(t, Binding{Index: 4, Name: "sB", Value: "b", Bound: true, Expected: Text}, bindings[4])
}

func TestDescribe(t *testing.T) {
	params, err := NewRegistry().Describe(Signature{Params: []string{"iA", "untyped", "fC"}, Defaults: []any{nil, 1.5}})
	require.NoError(t, err)

	assert.Equal(t, []Param{
		{Index: 0, Name: "iA", Expected: Integer},
		{Index: 1, Name: "untyped", HasDefault: true, Expected: Unchecked},
		{Index: 2, Name: "fC", Default: 1.5, HasDefault: true, Expected: Float},
	}, params)
}

func TestCheck_Metrics(t *testing.T) {
	r := NewRegistry()
	sig := Signature{Name: "metricsProbe", Params: []string{"iValue"}}

	okBefore := testutil.ToFloat64(callsTotal.WithLabelValues("metricsProbe", "ok"))
	badBefore := testutil.ToFloat64(callsTotal.WithLabelValues("metricsProbe", "mismatch"))

	require.NoError(t, r.Check(sig, []any{1}, nil))
	require.Error(t, r.Check(sig, []any{"1"}, nil))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(callsTotal.WithLabelValues("metricsProbe", "ok")))
	assert.Equal(t, badBefore+1, testutil.ToFloat64(callsTotal.WithLabelValues("metricsProbe", "mismatch")))
}
