package cli

// Config holds the configuration for one generator run
type Config struct {
	// Directories are package directories or Go-style "dir/..." patterns
	Directories []string

	// App namespaces the generated views. When empty every package registers
	// on views.Default; otherwise each package gets its own Views mapper.
	App string
}
