package typecheck

import (
	"reflect"
	"strconv"
)

// Tag describes the runtime type a parameter is expected to carry.
type Tag interface {
	// String returns the name used in mismatch reports.
	String() string

	// MatchType reports whether a value of runtime type t satisfies the tag.
	// t is nil for an untyped nil value.
	MatchType(t reflect.Type) bool
}

// Kind is the closed set of built-in type categories.
type Kind uint8

const (
	// Unchecked is the sentinel tag: parameters carrying it are never checked.
	Unchecked Kind = iota
	Integer
	Text
	Boolean
	Float
	Sequence
	Mapping
	Set
	Object
	Callable
	Class

	// Nil and Other only ever describe actual values.
	Nil
	Other
)

var kindNames = [...]string{
	Unchecked: "unchecked",
	Integer:   "integer",
	Text:      "string",
	Boolean:   "boolean",
	Float:     "float",
	Sequence:  "sequence",
	Mapping:   "mapping",
	Set:       "set",
	Object:    "object",
	Callable:  "callable",
	Class:     "class",
	Nil:       "nil",
	Other:     "other",
}

// String returns the kind name
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// MatchType reports whether t classifies as k. Unchecked matches everything.
func (k Kind) MatchType(t reflect.Type) bool {
	if k == Unchecked {
		return true
	}
	return KindOfType(t) == k
}

var reflectTypeIface = reflect.TypeFor[reflect.Type]()

// KindOf classifies a runtime value.
func KindOf(v any) Kind {
	return KindOfType(reflect.TypeOf(v))
}

// KindOfType classifies a runtime type. Integers are never widened to floats,
// and a map whose element type is struct{} is treated as a set.
func KindOfType(t reflect.Type) Kind {
	if t == nil {
		return Nil
	}
	if t.Kind() != reflect.Interface && t.Implements(reflectTypeIface) {
		return Class
	}

	switch t.Kind() {
	case reflect.Bool:
		return Boolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Integer
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		return Text
	case reflect.Slice, reflect.Array:
		return Sequence
	case reflect.Map:
		if elem := t.Elem(); elem.Kind() == reflect.Struct && elem.NumField() == 0 {
			return Set
		}
		return Mapping
	case reflect.Func:
		return Callable
	case reflect.Struct, reflect.Pointer:
		return Object
	default:
		return Other
	}
}

// exactType matches a single Go type, or any implementation when the type is an interface.
type exactType struct {
	t reflect.Type
}

// TypeOf returns a tag that only accepts values of exactly type T.
// When T is an interface type, any non-nil implementation is accepted.
func TypeOf[T any]() Tag {
	return exactType{t: reflect.TypeFor[T]()}
}

func (e exactType) String() string {
	return e.t.String()
}

func (e exactType) MatchType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if e.t.Kind() == reflect.Interface {
		return t.Implements(e.t)
	}
	return t == e.t
}

// IsUnchecked reports whether tag disables checking.
func IsUnchecked(tag Tag) bool {
	k, ok := tag.(Kind)
	return tag == nil || (ok && k == Unchecked)
}
