package typecheck

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describeFruit(fCount float64, sName string, objExtra any) (string, error) {
	return fmt.Sprintf("%s x%.1f", sName, fCount), nil
}

func sumAll(iBase int, arrRest ...any) int {
	total := iBase
	for _, v := range arrRest {
		if n, ok := v.(int); ok {
			total += n
		}
	}
	return total
}

func TestDecorate_PreservesSignature(t *testing.T) {
	wrapped, err := Decorate(describeFruit, "fCount", "sName", "objExtra")
	require.NoError(t, err)

	out, err := wrapped(2, "apple", &struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "apple x2.0", out)
}

func TestDecorate_InterfaceMismatchReturnsError(t *testing.T) {
	wrapped, err := Decorate(describeFruit, "fCount", "sName", "objExtra")
	require.NoError(t, err)

	out, err := wrapped(2, "apple", "not an object")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.Contains(t, err.Error(), "type mismatch calling describeFruit:")
	assert.Contains(t, err.Error(), "Arg(2) objExtra: Expected object, got string with value not an object")
}

func TestDecorate_PanicsWithoutErrorResult(t *testing.T) {
	r := NewRegistry()
	show := func(sLabel string, aAny any, iCount any) string { return sLabel }

	wrapped, err := DecorateWith(r, show, "sLabel", "aAny", "iCount")
	require.NoError(t, err)

	assert.Equal(t, "x", wrapped("x", nil, 3))

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)

		err, ok := recovered.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrTypeMismatch)
	}()
	wrapped("x", nil, "three")
}

func TestDecorate_Variadic(t *testing.T) {
	wrapped, err := Decorate(sumAll, "iBase", "arrRest")
	require.NoError(t, err)

	assert.Equal(t, 6, wrapped(1, 2, 3))
	assert.Equal(t, 1, wrapped(1))
}

func TestDecorate_StaticConflict(t *testing.T) {
	_, err := Decorate(func(iCount float64) {}, "iCount")
	assert.ErrorIs(t, err, ErrStaticConflict)
	assert.Contains(t, err.Error(), "iCount is float64 but its prefix expects integer")
}

func TestDecorate_Arity(t *testing.T) {
	_, err := Decorate(describeFruit, "fCount")
	assert.ErrorIs(t, err, ErrArity)
}

func TestDecorate_NotFunc(t *testing.T) {
	_, err := Decorate(42, "iValue")
	assert.ErrorIs(t, err, ErrNotFunc)

	var nilFunc func(int)
	_, err = Decorate(nilFunc, "iValue")
	assert.ErrorIs(t, err, ErrNotFunc)
}

func TestMustDecorate_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustDecorate(func(sName int) {}, "sName")
	})
}

type greeter struct{}

func (greeter) Greet(sName string) string { return "hi " + sName }

func TestFuncName(t *testing.T) {
	assert.Equal(t, "describeFruit", FuncName(describeFruit))
	assert.Equal(t, "sumAll", FuncName(sumAll))
	assert.Equal(t, "Greet", FuncName(greeter{}.Greet))
	assert.Equal(t, "", FuncName(nil))
	assert.Equal(t, "", FuncName("nope"))
}
