package annotations

import "strings"

var defaultParser = NewParticipleParser()

// IsAnnotation reports whether comment is a //viewcheck:: annotation
func IsAnnotation(comment string) bool {
	content, ok := strings.CutPrefix(strings.TrimSpace(comment), "//")
	if !ok {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(content), Namespace+"::")
}

// Parse parses a single annotation comment without location information
func Parse(comment string) (*ParsedAnnotation, error) {
	return defaultParser.ParseAnnotation(comment, SourceLocation{})
}

// ParseAt parses a single annotation comment found at location
func ParseAt(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	return defaultParser.ParseAnnotation(comment, location)
}
