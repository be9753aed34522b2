package views

import (
	"regexp"
	"strings"
)

var (
	firstCapRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCapRe   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	paramRe    = regexp.MustCompile(`\{([^:}]+)(:[^}]+)?\}`)
)

// DeriveRoute converts a camelCase view name to a dashed URL segment:
// helloWorld -> hello-world, getHTTPResponse -> get-http-response.
func DeriveRoute(name string) string {
	s := firstCapRe.ReplaceAllString(name, "${1}-${2}")
	return strings.ToLower(allCapRe.ReplaceAllString(s, "${1}-${2}"))
}

// RouterPath converts {name} and {name:type} placeholders to the :name form
// understood by echo, gin and fiber.
func RouterPath(pattern string) string {
	return paramRe.ReplaceAllString(pattern, ":$1")
}
