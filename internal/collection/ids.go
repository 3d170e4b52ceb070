package collection

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// IDAllocator issues record identifiers. An allocator never returns the same
// identifier twice over its lifetime.
type IDAllocator interface {
	NewID() string
}

// UUIDAllocator issues "link-<uuid v7>" identifiers. It keeps no state:
// v7 values embed a millisecond clock and 74 random bits.
type UUIDAllocator struct{}

func NewUUIDAllocator() *UUIDAllocator {
	return &UUIDAllocator{}
}

func (a *UUIDAllocator) NewID() string {
	return "link-" + newUUID()
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 only fails when the random source does; fall back to a v4 or the clock.
		if v4, err := uuid.NewRandom(); err == nil {
			return v4.String()
		}
		return fmt.Sprintf("t%d", time.Now().UnixNano())
	}
	return id.String()
}

// SequenceAllocator issues "<prefix>-1", "<prefix>-2", ... in order.
// Useful for scripts and tests where readable ids matter.
type SequenceAllocator struct {
	Prefix string
	next   int
}

func (a *SequenceAllocator) NewID() string {
	a.next++
	prefix := a.Prefix
	if prefix == "" {
		prefix = "link"
	}
	return prefix + "-" + strconv.Itoa(a.next)
}
