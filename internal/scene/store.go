package scene

import (
	"errors"
	"fmt"
	"slices"
)

var ErrNotFound = errors.New("element not found")

// Scene owns the canonical element list. It is not safe for concurrent use;
// callers serialize access (the stream hub runs one goroutine per room).
type Scene struct {
	elements map[string]*Element
	order    []string

	nextSub     int
	subscribers map[int]func(*Element)
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		elements:    make(map[string]*Element),
		subscribers: make(map[int]func(*Element)),
	}
}

// Add inserts el on top of the z-order. An element with the same id is
// replaced in place and its version moves past the one it replaces.
func (s *Scene) Add(el *Element) {
	if cur, ok := s.elements[el.ID]; ok {
		el.Version = max(el.Version, cur.Version+1)
	} else {
		s.order = append(s.order, el.ID)
	}
	s.elements[el.ID] = el
	s.notify(el)
}

// Get returns a non-deleted element.
func (s *Scene) Get(id string) (*Element, bool) {
	el, ok := s.elements[id]
	if !ok || el.IsDeleted {
		return nil, false
	}
	return el, true
}

// Lookup returns an element whether or not it is deleted.
func (s *Scene) Lookup(id string) (*Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

// Mutate applies fn to a copy of the element and stores the copy under the
// next version. Previously returned pointers keep their old contents, so
// caches keyed on (id, version) never see a torn element.
func (s *Scene) Mutate(id string, fn func(*Element)) (*Element, error) {
	cur, ok := s.elements[id]
	if !ok {
		return nil, fmt.Errorf("mutate %s: %w", id, ErrNotFound)
	}
	next := cur.Clone()
	fn(next)
	next.ID = cur.ID
	next.Version = cur.Version + 1
	s.elements[id] = next
	s.notify(next)
	return next, nil
}

// Delete marks the element deleted. It stays in the arena so history and
// reverse references can still resolve it.
func (s *Scene) Delete(id string) error {
	_, err := s.Mutate(id, func(el *Element) { el.IsDeleted = true })
	return err
}

// Elements returns every element in z-order, deleted ones included.
func (s *Scene) Elements() []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

// NonDeleted returns live elements in z-order, optionally filtered by kind.
func (s *Scene) NonDeleted(kinds ...Kind) []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		el := s.elements[id]
		if el.IsDeleted {
			continue
		}
		if len(kinds) > 0 && !slices.Contains(kinds, el.Kind()) {
			continue
		}
		out = append(out, el)
	}
	return out
}

// Len counts every element, deleted ones included.
func (s *Scene) Len() int { return len(s.order) }

// Subscribe registers fn to be called with every added or mutated element.
// The returned func removes the subscription.
func (s *Scene) Subscribe(fn func(*Element)) func() {
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

func (s *Scene) notify(el *Element) {
	for _, fn := range s.subscribers {
		fn(el)
	}
}
