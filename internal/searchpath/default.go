package searchpath

import "sync"

var (
	defaultOnce sync.Once
	defaultPath *SearchPath
)

// Default returns the process-wide search path, seeded from DefaultEnv on
// first use. All mutation of the shared path goes through the returned value.
func Default() *SearchPath {
	defaultOnce.Do(func() {
		defaultPath = FromEnv(DefaultEnv)
	})
	return defaultPath
}

// Register appends paths to the process-wide search path.
func Register(paths ...string) []Registration {
	return Default().Register(paths...)
}
