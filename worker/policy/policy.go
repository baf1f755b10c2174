// Package policy holds the error policy a running job consults before each
// file. The controller may change it at any time; the runner sees the change
// from its next iteration on.
package policy

import (
	"strings"
	"sync/atomic"
)

type extensionSet map[string]struct{}

// ErrorPolicy is safe for concurrent use. Reads never lock: the skip set is
// replaced wholesale on every change.
type ErrorPolicy struct {
	skipAll atomic.Bool
	skip    atomic.Pointer[extensionSet]
}

func New() *ErrorPolicy {
	p := &ErrorPolicy{}
	empty := extensionSet{}
	p.skip.Store(&empty)
	return p
}

// SkipExtension makes every later file with ext count as skipped.
func (p *ErrorPolicy) SkipExtension(ext string) {
	ext = normalize(ext)
	if ext == "" {
		return
	}
	for {
		old := p.skip.Load()
		if _, ok := (*old)[ext]; ok {
			return
		}
		next := make(extensionSet, len(*old)+1)
		for k := range *old {
			next[k] = struct{}{}
		}
		next[ext] = struct{}{}
		if p.skip.CompareAndSwap(old, &next) {
			return
		}
	}
}

func (p *ErrorPolicy) SetSkipAll(v bool) {
	p.skipAll.Store(v)
}

func (p *ErrorPolicy) SkipAll() bool {
	return p.skipAll.Load()
}

func (p *ErrorPolicy) Skips(ext string) bool {
	_, ok := (*p.skip.Load())[normalize(ext)]
	return ok
}

// Extensions returns the current skip set.
func (p *ErrorPolicy) Extensions() []string {
	set := *p.skip.Load()
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}

func normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
