// Package reorder turns drag gestures into moves on a collection.Store.
//
// The gesture source reports three signals: a drag started on an index, the
// candidate order it would currently display (record ids, repeatedly while the
// pointer moves), and the drag ended. The Controller follows the dragged record
// by identity and commits one Store.Move per tick in which its position changed.
package reorder

import (
	"linkdeck/internal/collection"

	"github.com/rs/zerolog"
)

// Outcome reports what a candidate order did.
type Outcome int

const (
	// Ignored: no drag was active.
	Ignored Outcome = iota
	// Unchanged: the dragged record is already at the candidate position.
	Unchanged
	// Moved: a move was committed to the store.
	Moved
	// Cancelled: the dragged record could not be located; the drag was dropped.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Unchanged:
		return "unchanged"
	case Moved:
		return "moved"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Controller is Idle until DragStart and Dragging(activeIndex) until DragEnd
// or a cancellation.
type Controller struct {
	store *collection.Store
	log   zerolog.Logger

	dragging  bool
	draggedID string
	active    int

	// committing is set while the controller's own Move is applied so the
	// store notification is not mistaken for an external edit.
	committing  bool
	unsubscribe func()
}

type Option func(*Controller)

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New attaches a controller to s. Call Close to detach it.
func New(s *collection.Store, opts ...Option) *Controller {
	c := &Controller{store: s, log: zerolog.Nop(), active: -1}
	for _, o := range opts {
		o(c)
	}
	c.unsubscribe = s.Subscribe(c.onStoreChange)
	return c
}

func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.reset()
}

func (c *Controller) Dragging() bool { return c.dragging }

// ActiveIndex is the dragged record's current index; ok is false when idle.
func (c *Controller) ActiveIndex() (index int, ok bool) {
	if !c.dragging {
		return -1, false
	}
	return c.active, true
}

// DraggedID is the identity of the dragged record, or "" when idle.
func (c *Controller) DraggedID() string {
	if !c.dragging {
		return ""
	}
	return c.draggedID
}

// Dimmed reports whether the row at index should render as inactive: true for
// every row but the dragged one while a drag is in progress.
func (c *Controller) Dimmed(index int) bool {
	return c.dragging && index != c.active
}

// DragStart begins a drag of the record at index. An out-of-range index leaves
// the controller idle; starting while already dragging restarts on index.
func (c *Controller) DragStart(index int) bool {
	l, ok := c.store.At(index)
	if !ok {
		c.log.Debug().Int("index", index).Msg("drag start ignored: index out of range")
		c.reset()
		return false
	}
	c.dragging = true
	c.draggedID = l.ID
	c.active = index
	c.log.Debug().Int("index", index).Str("id", l.ID).Msg("drag start")
	return true
}

// CandidateOrder reconciles the gesture source's current order with the store.
// Ids the store does not know are skipped when computing the dragged record's
// position, so stale or partial candidates still resolve as long as the dragged
// record is present.
func (c *Controller) CandidateOrder(ids []string) Outcome {
	if !c.dragging {
		return Ignored
	}
	if c.store.IndexOf(c.draggedID) < 0 {
		c.cancel("dragged record no longer in collection")
		return Cancelled
	}

	p := -1
	pos := 0
	for _, id := range ids {
		if id == c.draggedID {
			p = pos
			break
		}
		if c.store.IndexOf(id) >= 0 {
			pos++
		}
	}
	if p < 0 {
		c.cancel("dragged record missing from candidate order")
		return Cancelled
	}
	if p >= c.store.Len() {
		p = c.store.Len() - 1
	}
	if p == c.active {
		return Unchanged
	}

	from := c.active
	c.committing = true
	moved := c.store.Move(from, p)
	c.committing = false
	if !moved {
		c.cancel("move rejected by collection")
		return Cancelled
	}
	c.active = p
	c.log.Debug().Int("from", from).Int("to", p).Str("id", c.draggedID).Msg("drag move")
	return Moved
}

// DragEnd returns to idle. Without a preceding DragStart it does nothing.
func (c *Controller) DragEnd() {
	if !c.dragging {
		return
	}
	c.log.Debug().Int("index", c.active).Str("id", c.draggedID).Msg("drag end")
	c.reset()
}

// onStoreChange cancels the drag when an edit made outside the controller
// removes the dragged record or shifts it away from the active index.
func (c *Controller) onStoreChange(ch collection.Change) {
	if !c.dragging || c.committing {
		return
	}
	idx := -1
	for i := range ch.Links {
		if ch.Links[i].ID == c.draggedID {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		c.cancel("dragged record removed by " + string(ch.Op))
	case idx != c.active:
		c.cancel("dragged record shifted by " + string(ch.Op))
	}
}

func (c *Controller) cancel(reason string) {
	c.log.Warn().
		Str("id", c.draggedID).
		Int("activeIndex", c.active).
		Str("reason", reason).
		Msg("drag cancelled")
	c.reset()
}

func (c *Controller) reset() {
	c.dragging = false
	c.draggedID = ""
	c.active = -1
}
