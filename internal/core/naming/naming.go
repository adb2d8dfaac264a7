// Package naming turns free-form identifiers into safe archive entry names
// and resolves collisions between them
package naming

import (
	"regexp"
	"strconv"
	"strings"
)

// Fallback is used when an identifier sanitizes to nothing
const Fallback = "qrcode"

var (
	unsafeRun = regexp.MustCompile(`[^a-z0-9_-]`)
	underRun  = regexp.MustCompile(`_+`)
)

// Sanitize lowercases s, maps every char outside [a-z0-9_-] to '_',
// collapses underscore runs and trims them from both ends.
// The result always matches ^[a-z0-9_-]+$ and Sanitize is idempotent
func Sanitize(s string) string {
	s = strings.ToLower(s)
	s = unsafeRun.ReplaceAllString(s, "_")
	s = underRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return Fallback
	}
	return s
}

// Positional is the fallback base name for the index-th row, 1-based
func Positional(index int) string { return Fallback + "_" + strconv.Itoa(index) }

// Registry hands out unique file names. The first claimant of a base keeps it,
// later ones get base_2, base_3 and so on, skipping names already taken.
// Not safe for concurrent use; one registry belongs to one archive
type Registry struct {
	taken map[string]struct{}
	next  map[string]int
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{taken: map[string]struct{}{}, next: map[string]int{}}
}

// Claim sanitizes base and returns a unique "name.ext"
func (r *Registry) Claim(base, ext string) string {
	base = Sanitize(base)
	ext = strings.TrimPrefix(ext, ".")

	name := join(base, ext)
	if _, ok := r.taken[name]; !ok {
		r.taken[name] = struct{}{}
		return name
	}
	n := r.next[name]
	if n < 2 {
		n = 2
	}
	for {
		cand := join(base+"_"+strconv.Itoa(n), ext)
		n++
		if _, ok := r.taken[cand]; !ok {
			r.taken[cand] = struct{}{}
			r.next[name] = n
			return cand
		}
	}
}

// Len reports how many names were claimed
func (r *Registry) Len() int { return len(r.taken) }

func join(base, ext string) string {
	if ext == "" {
		return base
	}
	return base + "." + ext
}
