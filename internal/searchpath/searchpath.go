// Package searchpath keeps an ordered list of locations consulted when
// resolving modules by name, the Go-side equivalent of an interpreter's
// module search path.
//
// A SearchPath only grows: entries are appended, never removed or reordered,
// and a path already present (by exact string equality) is not appended again.
package searchpath

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panurus/nbkit/internal/output"
)

// DefaultEnv is the environment variable the process-wide search path is
// seeded from and exported through.
const DefaultEnv = "PYTHONPATH"

// Registration reports what Register did with one path.
type Registration struct {
	Path  string `json:"path"`
	Added bool   `json:"added"`
}

// Status returns the status word for the registration.
func (r Registration) Status() string {
	if r.Added {
		return output.StatusAdded
	}
	return output.StatusPresent
}

// SearchPath is an append-only, duplicate-free list of paths. The zero value
// is an empty search path ready to use. It is safe for concurrent use.
type SearchPath struct {
	mu      sync.Mutex
	entries []string

	// Out receives the added/already-present notices. Nil means output.Stdout().
	Out io.Writer
}

// New returns a search path holding entries in order. Entries are kept as
// given, including duplicates already present in the input.
func New(entries ...string) *SearchPath {
	sp := &SearchPath{}
	sp.entries = append(sp.entries, entries...)
	return sp
}

// FromEnv seeds a search path from a list-separated environment variable.
// Empty elements are dropped.
func FromEnv(name string) *SearchPath {
	var entries []string
	for _, p := range filepath.SplitList(os.Getenv(name)) {
		if p != "" {
			entries = append(entries, p)
		}
	}
	return New(entries...)
}

// Register appends each path that is not already present, in order, and
// prints one notice per path. A single path and a one-element list behave the
// same. Additions last for the lifetime of the SearchPath only.
func (sp *SearchPath) Register(paths ...string) []Registration {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	out := sp.Out
	if out == nil {
		out = output.Stdout()
	}

	results := make([]Registration, 0, len(paths))
	for _, p := range paths {
		if sp.containsLocked(p) {
			fmt.Fprintf(out, "%s is already on the search path\n", p)
			results = append(results, Registration{Path: p})
			continue
		}
		sp.entries = append(sp.entries, p)
		fmt.Fprintf(out, "%s added to the search path. It will be dropped when this process exits.\n", p)
		results = append(results, Registration{Path: p, Added: true})
	}

	return results
}

// Contains reports whether p is on the search path. Comparison is exact;
// paths are not cleaned or resolved.
func (sp *SearchPath) Contains(p string) bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.containsLocked(p)
}

func (sp *SearchPath) containsLocked(p string) bool {
	for _, e := range sp.entries {
		if e == p {
			return true
		}
	}
	return false
}

// Entries returns a copy of the entries in order.
func (sp *SearchPath) Entries() []string {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return append([]string(nil), sp.entries...)
}

// Len returns the number of entries.
func (sp *SearchPath) Len() int {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return len(sp.entries)
}

// String joins the entries with the OS list separator.
func (sp *SearchPath) String() string {
	return strings.Join(sp.Entries(), string(os.PathListSeparator))
}

// Environ returns the search path as a NAME=value environment entry.
func (sp *SearchPath) Environ(name string) string {
	return name + "=" + sp.String()
}
