package typecheck

// ExtractPrefix returns the leading run of lowercase ASCII letters in a
// parameter name. "fCount" yields "f", "untyped" yields "untyped" and a name
// starting with anything else yields "".
func ExtractPrefix(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] < 'a' || name[i] > 'z' {
			return name[:i]
		}
	}
	return name
}
