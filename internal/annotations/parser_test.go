package annotations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAnnotation(t *testing.T) {
	tests := []struct {
		comment  string
		expected bool
	}{
		{"//viewcheck::view", true},
		{"// viewcheck::typecheck", true},
		{"  //viewcheck::view /x", true},
		{"// helloWorld says hello", false},
		{"//axon::route GET /", false},
		{"viewcheck::view", false},
		{"//go:generate viewcheck", false},
	}

	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAnnotation(tt.comment))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ParsedAnnotation
	}{
		{
			name:     "bare view",
			input:    "//viewcheck::view",
			expected: ParsedAnnotation{Type: ViewAnnotation},
		},
		{
			name:     "view with path",
			input:    "//viewcheck::view /",
			expected: ParsedAnnotation{Type: ViewAnnotation, Path: "/"},
		},
		{
			name:     "view with placeholder path and method",
			input:    "// viewcheck::view /users/{id:int} -Method=post",
			expected: ParsedAnnotation{Type: ViewAnnotation, Path: "/users/{id:int}", Method: "POST"},
		},
		{
			name:     "view with quoted name",
			input:    `//viewcheck::view -Name="hellWorld" -Method=GET`,
			expected: ParsedAnnotation{Type: ViewAnnotation, Name: "hellWorld", Method: "GET"},
		},
		{
			name:     "typecheck",
			input:    "//viewcheck::typecheck",
			expected: ParsedAnnotation{Type: TypecheckAnnotation},
		},
		{
			name:     "typecheck with name",
			input:    "//viewcheck::typecheck -Name=CheckedSum",
			expected: ParsedAnnotation{Type: TypecheckAnnotation, Name: "CheckedSum"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)

			tt.expected.Raw = parsed.Raw
			assert.Equal(t, tt.expected, *parsed)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"not an annotation", "// plain comment", ErrNotAnnotation},
		{"unknown type", "//viewcheck::route", ErrUnknownType},
		{"unknown parameter", "//viewcheck::view -Global=true", ErrUnknownParameter},
		{"typecheck has no method", "//viewcheck::typecheck -Method=GET", ErrUnknownParameter},
		{"duplicate parameter", "//viewcheck::view -Name=a -Name=b", ErrDuplicate},
		{"missing value", "//viewcheck::view -Name", ErrMissingValue},
		{"empty value", `//viewcheck::view -Name=""`, ErrMissingValue},
		{"bad method", "//viewcheck::view -Method=FETCH", ErrInvalidMethod},
		{"typecheck has no path", "//viewcheck::typecheck /x", ErrUnexpectedPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)

			var perr *ParseError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := ParseAt("//viewcheck::view = oops", SourceLocation{File: "views.go", Line: 12, Column: 1})
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "views.go", perr.Location().File)
	assert.Equal(t, 12, perr.Location().Line)
	assert.Contains(t, err.Error(), "views.go:12:")
	assert.Contains(t, err.Error(), "syntax error")
}

func TestParseError_Location(t *testing.T) {
	_, err := ParseAt("//viewcheck::view -Bogus=x", SourceLocation{File: "a.go", Line: 3, Column: 1})

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 19, perr.Loc.Column)
}

func TestAnnotationType_String(t *testing.T) {
	assert.Equal(t, "view", ViewAnnotation.String())
	assert.Equal(t, "typecheck", TypecheckAnnotation.String())
	assert.Equal(t, "unknown", AnnotationType(9).String())

	_, err := ParseAnnotationType("middleware")
	assert.Error(t, err)
}
