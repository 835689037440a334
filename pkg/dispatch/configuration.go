package dispatch

import (
	"strings"
	"sync"
)

// Configuration maps error type identifiers to handler refs and carries the
// default refs used when a type has no mapping of its own.
//
// Blank type identifiers and refs are never admitted; the mutating methods
// report false instead of failing. All sets keep insertion order.
// A Configuration is safe for concurrent use.
type Configuration struct {
	mu         sync.RWMutex
	defaults   refSet
	handlerMap map[string]*refSet
	typeOrder  []string
}

// NewConfiguration returns an empty Configuration.
func NewConfiguration() *Configuration {
	return &Configuration{handlerMap: make(map[string]*refSet)}
}

// AddDefaultHandler admits ref to the default handlers.
// It returns false when ref is blank or already present.
func (c *Configuration) AddDefaultHandler(ref string) bool {
	if isBlank(ref) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaults.add(ref)
}

// AddDefaultHandlers admits every non-blank ref and reports whether the
// default set changed.
func (c *Configuration) AddDefaultHandlers(refs ...string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := false
	for _, ref := range refs {
		if isBlank(ref) {
			continue
		}
		if c.defaults.add(ref) {
			changed = true
		}
	}
	return changed
}

// AddExceptionHandler maps typeID to ref. It returns false when either value
// is blank or the pair is already mapped.
func (c *Configuration) AddExceptionHandler(typeID, ref string) bool {
	if isBlank(typeID) || isBlank(ref) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addPair(typeID, ref)
}

// AddHandlerExceptions maps ref to each of typeIDs, one pair at a time.
// This is the direction declarative sources describe handlers in.
func (c *Configuration) AddHandlerExceptions(ref string, typeIDs ...string) bool {
	if isBlank(ref) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := false
	for _, typeID := range typeIDs {
		if isBlank(typeID) {
			continue
		}
		if c.addPair(typeID, ref) {
			changed = true
		}
	}
	return changed
}

func (c *Configuration) addPair(typeID, ref string) bool {
	if c.handlerMap == nil {
		c.handlerMap = make(map[string]*refSet)
	}
	set, ok := c.handlerMap[typeID]
	if !ok {
		set = &refSet{}
		c.handlerMap[typeID] = set
		c.typeOrder = append(c.typeOrder, typeID)
	}
	return set.add(ref)
}

// DefaultHandlers returns the default refs.
func (c *Configuration) DefaultHandlers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults.list()
}

// ExceptionHandlers returns the refs mapped to typeID, falling back to the
// default refs when there are none.
func (c *Configuration) ExceptionHandlers(typeID string) []string {
	return c.ExceptionHandlersFor(typeID, true)
}

// ExceptionHandlersFor returns the refs mapped to typeID. When nothing is
// mapped it returns the default refs if useDefault is set, and an empty slice
// otherwise.
func (c *Configuration) ExceptionHandlersFor(typeID string, useDefault bool) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if set, ok := c.handlerMap[typeID]; ok && set.len() > 0 {
		return set.list()
	}
	if useDefault {
		return c.defaults.list()
	}
	return []string{}
}

// AllHandlers returns every ref referenced anywhere in the configuration,
// deduplicated: mapped refs in type order first, then defaults.
func (c *Configuration) AllHandlers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var all refSet
	for _, typeID := range c.typeOrder {
		for _, ref := range c.handlerMap[typeID].list() {
			all.add(ref)
		}
	}
	for _, ref := range c.defaults.list() {
		all.add(ref)
	}
	return all.list()
}

// TypeIDs returns the type identifiers that have at least one mapped ref.
func (c *Configuration) TypeIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.typeOrder))
	out = append(out, c.typeOrder...)
	return out
}

// RemoveHandlerReferences removes every given ref from the defaults and from
// every type mapping. Types left without refs are dropped. It reports whether
// anything was removed.
func (c *Configuration) RemoveHandlerReferences(refs ...string) bool {
	if len(refs) == 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := false
	for _, ref := range refs {
		if c.defaults.remove(ref) {
			removed = true
		}
		for _, set := range c.handlerMap {
			if set.remove(ref) {
				removed = true
			}
		}
	}
	if removed {
		c.pruneEmptyTypes()
	}
	return removed
}

func (c *Configuration) pruneEmptyTypes() {
	kept := c.typeOrder[:0]
	for _, typeID := range c.typeOrder {
		if c.handlerMap[typeID].len() == 0 {
			delete(c.handlerMap, typeID)
			continue
		}
		kept = append(kept, typeID)
	}
	c.typeOrder = kept
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// refSet is an insertion-ordered set of strings. The zero value is empty.
type refSet struct {
	order []string
	index map[string]struct{}
}

func (s *refSet) add(ref string) bool {
	if _, ok := s.index[ref]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	s.index[ref] = struct{}{}
	s.order = append(s.order, ref)
	return true
}

func (s *refSet) remove(ref string) bool {
	if _, ok := s.index[ref]; !ok {
		return false
	}
	delete(s.index, ref)
	for i, existing := range s.order {
		if existing == ref {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *refSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *refSet) list() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
