package status

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

type kind uint8

const (
	kindInt kind = iota
	kindFloat
	kindText
)

type entry struct {
	key  string
	kind kind
	i    *atomic.Int64
	f    *Float
	s    *Text
}

// Registry hands out metric pointers once; writers keep the pointer and store atomically
// Keys are reported in registration order
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	index   map[string]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Int returns the integer metric for key, creating it on first use
func (r *Registry) Int(key string) *atomic.Int64 {
	e := r.lookup(key, kindInt)
	return e.i
}

// Float returns the float metric for key, creating it on first use
func (r *Registry) Float(key string) *Float {
	e := r.lookup(key, kindFloat)
	return e.f
}

// Text returns the string metric for key, creating it on first use
func (r *Registry) Text(key string) *Text {
	e := r.lookup(key, kindText)
	return e.s
}

func (r *Registry) lookup(key string, k kind) entry {
	r.mu.RLock()
	if idx, ok := r.index[key]; ok {
		e := r.entries[idx]
		r.mu.RUnlock()
		if e.kind != k {
			panic(fmt.Sprintf("status: metric %q registered with a different kind", key))
		}
		return e
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.index[key]; ok {
		return r.entries[idx]
	}

	e := entry{key: key, kind: k}
	switch k {
	case kindInt:
		e.i = new(atomic.Int64)
	case kindFloat:
		e.f = new(Float)
	case kindText:
		e.s = new(Text)
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, e)
	return e
}

// Len returns the number of registered metrics
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Line formats every metric as "key=value" joined by spaces
func (r *Registry) Line() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	for i, e := range r.entries {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(e.key)
		b.WriteByte('=')
		switch e.kind {
		case kindInt:
			b.WriteString(strconv.FormatInt(e.i.Load(), 10))
		case kindFloat:
			b.WriteString(strconv.FormatFloat(e.f.Get(), 'f', 1, 64))
		case kindText:
			b.WriteString(e.s.Get())
		}
	}
	return b.String()
}
