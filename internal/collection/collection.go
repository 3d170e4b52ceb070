// Package collection holds the ordered link collection: the single source of
// truth for record order and identity.
package collection

import (
	"slices"

	"linkdeck/internal/model"

	"github.com/rs/zerolog"
)

// Op names a mutating operation.
type Op string

const (
	OpAppend  Op = "append"
	OpPrepend Op = "prepend"
	OpInsert  Op = "insert"
	OpRemove  Op = "remove"
	OpMove    Op = "move"
	OpSwap    Op = "swap"
	OpReplace Op = "replace"
	OpUpdate  Op = "update"
)

// Change is delivered to observers after a mutation has been applied.
// Index and To describe the operation's arguments after clamping; To is only
// meaningful for move and swap. Links is a copy of the new order.
type Change struct {
	Op    Op
	Index int
	To    int
	Links []model.Link
}

// Store owns an ordered sequence of links. Every index-based operation
// rejects out-of-range indices as a no-op, and each mutator reports whether
// the collection changed. Observers are notified synchronously after every
// applied mutation, never for no-ops.
//
// A Store is not safe for concurrent use.
type Store struct {
	links []model.Link
	ids   IDAllocator
	log   zerolog.Logger

	observers  map[int]func(Change)
	nextObsKey int
}

type Option func(*Store)

// WithIDAllocator overrides the default UUID allocator.
func WithIDAllocator(a IDAllocator) Option {
	return func(s *Store) {
		if a != nil {
			s.ids = a
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New builds a Store from initial field values; each entry gets a fresh id.
func New(initial []model.LinkValues, opts ...Option) *Store {
	s := &Store{
		ids:       NewUUIDAllocator(),
		log:       zerolog.Nop(),
		observers: map[int]func(Change){},
	}
	for _, o := range opts {
		o(s)
	}
	s.links = s.build(initial)
	return s
}

func (s *Store) build(values []model.LinkValues) []model.Link {
	out := make([]model.Link, 0, len(values))
	for _, v := range values {
		out = append(out, s.newLink(v))
	}
	return out
}

func (s *Store) newLink(v model.LinkValues) model.Link {
	return model.Link{ID: s.ids.NewID(), Title: v.Title, URL: v.URL}
}

func (s *Store) valid(i int) bool { return i >= 0 && i < len(s.links) }

// Subscribe registers fn for change notifications and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	key := s.nextObsKey
	s.nextObsKey++
	s.observers[key] = fn
	return func() { delete(s.observers, key) }
}

func (s *Store) notify(op Op, index, to int) {
	s.log.Debug().
		Str("op", string(op)).
		Int("index", index).
		Int("to", to).
		Int("len", len(s.links)).
		Msg("collection changed")
	if len(s.observers) == 0 {
		return
	}
	// Observers may subscribe/unsubscribe while being notified; iterate a stable copy
	// in registration order.
	keys := make([]int, 0, len(s.observers))
	for k := range s.observers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fn, ok := s.observers[k]
		if !ok {
			continue
		}
		fn(Change{Op: op, Index: index, To: to, Links: s.Links()})
	}
}

func (s *Store) Len() int { return len(s.links) }

// At returns the link at index.
func (s *Store) At(index int) (model.Link, bool) {
	if !s.valid(index) {
		return model.Link{}, false
	}
	return s.links[index], true
}

// IndexOf returns the current index of id, or -1.
func (s *Store) IndexOf(id string) int {
	for i := range s.links {
		if s.links[i].ID == id {
			return i
		}
	}
	return -1
}

// Links returns a copy of the current order.
func (s *Store) Links() []model.Link {
	return append([]model.Link(nil), s.links...)
}

func (s *Store) IDs() []string {
	out := make([]string, len(s.links))
	for i := range s.links {
		out[i] = s.links[i].ID
	}
	return out
}

// Snapshot returns the field values in order, identifiers stripped.
func (s *Store) Snapshot() []model.LinkValues {
	out := make([]model.LinkValues, len(s.links))
	for i := range s.links {
		out[i] = s.links[i].Values()
	}
	return out
}

func (s *Store) Append(v model.LinkValues) bool {
	s.links = append(s.links, s.newLink(v))
	s.notify(OpAppend, len(s.links)-1, -1)
	return true
}

func (s *Store) Prepend(v model.LinkValues) bool {
	s.links = append([]model.Link{s.newLink(v)}, s.links...)
	s.notify(OpPrepend, 0, -1)
	return true
}

// Insert places a new link at index, clamped to [0, Len()].
func (s *Store) Insert(index int, v model.LinkValues) bool {
	if index < 0 {
		index = 0
	}
	if index > len(s.links) {
		index = len(s.links)
	}
	s.links = append(s.links, model.Link{})
	copy(s.links[index+1:], s.links[index:])
	s.links[index] = s.newLink(v)
	s.notify(OpInsert, index, -1)
	return true
}

func (s *Store) Remove(index int) bool {
	if !s.valid(index) {
		return false
	}
	s.links = append(s.links[:index], s.links[index+1:]...)
	s.notify(OpRemove, index, -1)
	return true
}

// Move relocates the link at from to to; the links between shift by one.
func (s *Store) Move(from, to int) bool {
	if !s.valid(from) || !s.valid(to) || from == to {
		return false
	}
	moved := s.links[from]
	if from < to {
		copy(s.links[from:to], s.links[from+1:to+1])
	} else {
		copy(s.links[to+1:from+1], s.links[to:from])
	}
	s.links[to] = moved
	s.notify(OpMove, from, to)
	return true
}

func (s *Store) Swap(i, j int) bool {
	if !s.valid(i) || !s.valid(j) || i == j {
		return false
	}
	s.links[i], s.links[j] = s.links[j], s.links[i]
	s.notify(OpSwap, i, j)
	return true
}

// Replace discards every link and rebuilds the collection from values. Each
// entry receives a newly allocated id, even when its values match a previous link.
func (s *Store) Replace(values []model.LinkValues) bool {
	s.links = s.build(values)
	s.notify(OpReplace, 0, -1)
	return true
}

// Update overwrites the fields set in p on the link at index. An empty patch
// is a no-op.
func (s *Store) Update(index int, p model.Patch) bool {
	if !s.valid(index) || p.Empty() {
		return false
	}
	s.links[index] = p.Apply(s.links[index])
	s.notify(OpUpdate, index, -1)
	return true
}
