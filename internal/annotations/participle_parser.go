package annotations

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// annotationAST is the raw parse tree of one annotation comment
type annotationAST struct {
	Type   string      `parser:"Comment 'viewcheck' Separator @Ident"`
	Path   *string     `parser:"@Path?"`
	Params []*paramAST `parser:"@@*"`
}

// paramAST is a -Key or -Key=Value parameter
type paramAST struct {
	Pos   lexer.Position
	Key   string    `parser:"Dash @Ident"`
	Value *valueAST `parser:"( Equals @@ )?"`
}

type valueAST struct {
	String *string `parser:"  @String"`
	Ident  *string `parser:"| @Ident"`
}

func (v *valueAST) raw() string {
	if v.String != nil {
		return *v.String
	}
	return *v.Ident
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//`},
	{Name: "Separator", Pattern: `::`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Path", Pattern: `/[^\s]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// ParticipleParser parses annotation comments with alecthomas/participle
type ParticipleParser struct {
	parser *participle.Parser[annotationAST]
}

// NewParticipleParser creates a new parser using participle
func NewParticipleParser() *ParticipleParser {
	return &ParticipleParser{
		parser: participle.MustBuild[annotationAST](
			participle.Lexer(annotationLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
		),
	}
}

// parameters accepted per annotation type
var allowedParams = map[AnnotationType]map[string]bool{
	ViewAnnotation:      {"Method": true, "Name": true},
	TypecheckAnnotation: {"Name": true},
}

var httpMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// ParseAnnotation parses and validates one annotation comment
func (p *ParticipleParser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	raw := strings.TrimSpace(comment)
	if !IsAnnotation(raw) {
		return nil, &ParseError{Loc: location, Raw: raw, Msg: ErrNotAnnotation.Error(), Err: ErrNotAnnotation}
	}

	ast, err := p.parser.ParseString(location.File, raw)
	if err != nil {
		return nil, syntaxError(raw, location, err)
	}

	annotationType, err := ParseAnnotationType(ast.Type)
	if err != nil {
		return nil, &ParseError{
			Loc:  location,
			Raw:  raw,
			Msg:  err.Error(),
			Hint: "use //viewcheck::view or //viewcheck::typecheck",
			Err:  ErrUnknownType,
		}
	}

	parsed := &ParsedAnnotation{Type: annotationType, Location: location, Raw: raw}

	if ast.Path != nil {
		if annotationType != ViewAnnotation {
			return nil, &ParseError{Loc: location, Raw: raw, Msg: fmt.Sprintf("%s %s", annotationType, ErrUnexpectedPath), Err: ErrUnexpectedPath}
		}
		parsed.Path = *ast.Path
	}

	seen := make(map[string]bool, len(ast.Params))
	for _, param := range ast.Params {
		loc := location
		loc.Column += param.Pos.Column - 1

		if !allowedParams[annotationType][param.Key] {
			return nil, &ParseError{
				Loc: loc,
				Raw: raw,
				Msg: fmt.Sprintf("%s '%s' for %s annotation", ErrUnknownParameter, param.Key, annotationType),
				Err: ErrUnknownParameter,
			}
		}
		if seen[param.Key] {
			return nil, &ParseError{Loc: loc, Raw: raw, Msg: fmt.Sprintf("%s '%s'", ErrDuplicate, param.Key), Err: ErrDuplicate}
		}
		seen[param.Key] = true

		if param.Value == nil || param.Value.raw() == "" {
			return nil, &ParseError{
				Loc:  loc,
				Raw:  raw,
				Msg:  fmt.Sprintf("'%s' %s", param.Key, ErrMissingValue),
				Hint: fmt.Sprintf("write -%s=<value>", param.Key),
				Err:  ErrMissingValue,
			}
		}

		switch param.Key {
		case "Method":
			method := strings.ToUpper(param.Value.raw())
			if !httpMethods[method] {
				return nil, &ParseError{Loc: loc, Raw: raw, Msg: fmt.Sprintf("%s '%s'", ErrInvalidMethod, param.Value.raw()), Err: ErrInvalidMethod}
			}
			parsed.Method = method
		case "Name":
			parsed.Name = param.Value.raw()
		}
	}

	return parsed, nil
}

func syntaxError(raw string, location SourceLocation, err error) *ParseError {
	perr := &ParseError{Loc: location, Raw: raw, Msg: "syntax error: " + err.Error()}

	var pe participle.Error
	if errors.As(err, &pe) {
		perr.Msg = "syntax error: " + pe.Message()
		perr.Loc.Column += pe.Position().Column - 1
	}
	return perr
}
