package annotations

import "fmt"

// Namespace prefixes every annotation: //viewcheck::<kind>
const Namespace = "viewcheck"

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	// ViewAnnotation registers a func(views.RequestContext) error as a route
	ViewAnnotation AnnotationType = iota
	// TypecheckAnnotation generates a type-checked wrapper for a function
	TypecheckAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ViewAnnotation:
		return "view"
	case TypecheckAnnotation:
		return "typecheck"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "view":
		return ViewAnnotation, nil
	case "typecheck":
		return TypecheckAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String formats the location as file:line:column
func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// ParsedAnnotation is one validated annotation comment
type ParsedAnnotation struct {
	Type     AnnotationType
	Path     string // explicit route pattern, views only
	Method   string // upper-cased HTTP method, views only
	Name     string // overrides the function name
	Location SourceLocation
	Raw      string
}
