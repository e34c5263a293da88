// Package selection holds the set of teams, tournaments and nations the user picked.
package selection

import "sync"

// Store is an insertion-ordered set of entity names.
// Iteration order is stable across renders; duplicates are impossible.
type Store struct {
	index     map[string]int
	names     []string
	listeners []func([]string)
	mu        sync.RWMutex
}

// NewStore creates a store seeded with names, skipping duplicates.
func NewStore(names ...string) *Store {
	s := &Store{index: make(map[string]int)}
	for _, name := range names {
		s.insert(name)
	}
	return s
}

// OnChange registers fn to be called with a snapshot after every effective mutation.
// Listeners run synchronously on the mutating goroutine, outside the lock.
func (s *Store) OnChange(fn func(snapshot []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Toggle removes name if present, otherwise appends it. It reports whether
// name is selected afterwards.
func (s *Store) Toggle(name string) bool {
	s.mu.Lock()
	var selected bool
	if _, ok := s.index[name]; ok {
		s.remove(name)
	} else {
		s.insert(name)
		selected = true
	}
	s.mu.Unlock()

	s.notify()
	return selected
}

// Add selects name. It reports whether the set changed.
func (s *Store) Add(name string) bool {
	s.mu.Lock()
	changed := s.insert(name)
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return changed
}

// Remove deselects name. It reports whether the set changed.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	changed := s.remove(name)
	s.mu.Unlock()

	if changed {
		s.notify()
	}
	return changed
}

// Clear deselects everything.
func (s *Store) Clear() {
	s.mu.Lock()
	changed := len(s.names) > 0
	s.names = nil
	s.index = make(map[string]int)
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Contains reports whether name is selected.
func (s *Store) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[name]
	return ok
}

// Len is the number of selected entities.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Snapshot returns a copy of the selection in insertion order.
func (s *Store) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.names...)
}

func (s *Store) insert(name string) bool {
	if _, ok := s.index[name]; ok {
		return false
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	return true
}

func (s *Store) remove(name string) bool {
	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.names = append(s.names[:i], s.names[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.names); j++ {
		s.index[s.names[j]] = j
	}
	return true
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := append([]func([]string){}, s.listeners...)
	snapshot := append([]string(nil), s.names...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
