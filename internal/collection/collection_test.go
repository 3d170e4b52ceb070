package collection

import (
	"testing"

	"linkdeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(titles ...string) []model.LinkValues {
	out := make([]model.LinkValues, 0, len(titles))
	for _, t := range titles {
		out = append(out, model.LinkValues{Title: t, URL: "https://" + t + ".example"})
	}
	return out
}

func newTestStore(titles ...string) *Store {
	return New(values(titles...), WithIDAllocator(&SequenceAllocator{}))
}

func titles(s *Store) []string {
	out := make([]string, 0, s.Len())
	for _, l := range s.Links() {
		out = append(out, l.Title)
	}
	return out
}

// pairs maps id -> title/url so identity stability can be compared across operations.
func pairs(s *Store) map[string]model.LinkValues {
	out := map[string]model.LinkValues{}
	for _, l := range s.Links() {
		out[l.ID] = l.Values()
	}
	return out
}

func TestNew_AssignsDistinctIDs(t *testing.T) {
	s := New(values("A", "B", "A"))
	ids := s.IDs()
	require.Len(t, ids, 3)
	seen := map[string]bool{}
	for _, id := range ids {
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestAppendPrependInsert(t *testing.T) {
	s := newTestStore("A", "B")

	require.True(t, s.Append(model.LinkValues{Title: "C"}))
	assert.Equal(t, []string{"A", "B", "C"}, titles(s))

	require.True(t, s.Prepend(model.LinkValues{Title: "Z"}))
	assert.Equal(t, []string{"Z", "A", "B", "C"}, titles(s))

	require.True(t, s.Insert(2, model.LinkValues{Title: "M"}))
	assert.Equal(t, []string{"Z", "A", "M", "B", "C"}, titles(s))

	t.Run("InsertAtLenAppends", func(t *testing.T) {
		s := newTestStore("A", "B")
		s.Insert(2, model.LinkValues{Title: "C"})
		assert.Equal(t, []string{"A", "B", "C"}, titles(s))
	})

	t.Run("InsertClampsIndex", func(t *testing.T) {
		s := newTestStore("A", "B")
		s.Insert(99, model.LinkValues{Title: "END"})
		s.Insert(-5, model.LinkValues{Title: "START"})
		assert.Equal(t, []string{"START", "A", "B", "END"}, titles(s))
	})

	t.Run("InsertIntoEmpty", func(t *testing.T) {
		s := newTestStore()
		s.Insert(2, model.LinkValues{Title: "Indice 2"})
		assert.Equal(t, []string{"Indice 2"}, titles(s))
	})
}

func TestRemove(t *testing.T) {
	s := newTestStore("A", "B", "C")
	require.True(t, s.Remove(1))
	assert.Equal(t, []string{"A", "C"}, titles(s))

	t.Run("OutOfRangeIsNoop", func(t *testing.T) {
		s := newTestStore("A", "B", "C")
		before := s.Links()
		assert.False(t, s.Remove(99))
		assert.False(t, s.Remove(-1))
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, before, s.Links())
	})
}

func TestMove(t *testing.T) {
	s := newTestStore("A", "B", "C", "D", "E")
	aID := s.IDs()[0]

	require.True(t, s.Move(0, 3))
	assert.Equal(t, []string{"B", "C", "D", "A", "E"}, titles(s))
	assert.Equal(t, 3, s.IndexOf(aID))

	require.True(t, s.Move(3, 0))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, titles(s))

	require.True(t, s.Move(4, 1))
	assert.Equal(t, []string{"A", "E", "B", "C", "D"}, titles(s))

	t.Run("SameIndexIsNoop", func(t *testing.T) {
		s := newTestStore("A", "B", "C")
		before := s.Links()
		for i := 0; i < s.Len(); i++ {
			assert.False(t, s.Move(i, i))
		}
		assert.Equal(t, before, s.Links())
	})

	t.Run("OutOfRangeIsNoop", func(t *testing.T) {
		s := newTestStore("A", "B", "C")
		before := s.Links()
		assert.False(t, s.Move(0, 3))
		assert.False(t, s.Move(-1, 0))
		assert.False(t, s.Move(5, 1))
		assert.Equal(t, before, s.Links())
	})
}

func TestSwap(t *testing.T) {
	s := newTestStore("A", "B", "C")
	cID := s.IDs()[2]
	require.True(t, s.Swap(1, 0))
	assert.Equal(t, []string{"B", "A", "C"}, titles(s))
	assert.Equal(t, cID, s.IDs()[2])

	assert.False(t, s.Swap(0, 3))
	assert.False(t, s.Swap(1, 1))
	assert.Equal(t, []string{"B", "A", "C"}, titles(s))
}

func TestReplace_AllocatesFreshIDs(t *testing.T) {
	s := newTestStore("X", "Y")
	before := pairs(s)

	require.True(t, s.Replace([]model.LinkValues{{Title: "X", URL: "Y"}}))
	require.Equal(t, 1, s.Len())
	l, _ := s.At(0)
	assert.Equal(t, "X", l.Title)
	assert.Equal(t, "Y", l.URL)
	_, reused := before[l.ID]
	assert.False(t, reused, "replace reused id %q", l.ID)

	require.True(t, s.Replace(nil))
	assert.Equal(t, 0, s.Len())
}

func TestUpdate(t *testing.T) {
	s := newTestStore("A", "B")
	id := s.IDs()[1]

	title := "Updated"
	require.True(t, s.Update(1, model.Patch{Title: &title}))
	l, _ := s.At(1)
	assert.Equal(t, id, l.ID)
	assert.Equal(t, "Updated", l.Title)
	assert.Equal(t, "https://B.example", l.URL, "url must be untouched by a title-only patch")

	require.True(t, s.Update(0, model.FullPatch(model.LinkValues{Title: "T", URL: "U"})))
	l, _ = s.At(0)
	assert.Equal(t, model.LinkValues{Title: "T", URL: "U"}, l.Values())

	assert.False(t, s.Update(2, model.Patch{Title: &title}))
	assert.False(t, s.Update(0, model.Patch{}))
}

func TestIdentityStability_UnderMoveSwapUpdate(t *testing.T) {
	s := newTestStore("A", "B", "C", "D")
	before := pairs(s)

	s.Move(0, 2)
	s.Swap(1, 3)
	s.Move(3, 0)
	s.Swap(0, 0)
	s.Move(1, 9)

	assert.Equal(t, before, pairs(s))

	// An update only changes its target.
	target := s.IDs()[2]
	url := "changed"
	s.Update(2, model.Patch{URL: &url})
	after := pairs(s)
	for id, v := range before {
		if id == target {
			assert.Equal(t, "changed", after[id].URL)
			continue
		}
		assert.Equal(t, v, after[id])
	}
}

func TestLengthInvariant(t *testing.T) {
	s := newTestStore("A", "B", "C")
	steps := []struct {
		name string
		do   func() bool
		diff int
	}{
		{"append", func() bool { return s.Append(model.LinkValues{}) }, 1},
		{"prepend", func() bool { return s.Prepend(model.LinkValues{}) }, 1},
		{"insert", func() bool { return s.Insert(1, model.LinkValues{}) }, 1},
		{"remove", func() bool { return s.Remove(0) }, -1},
		{"remove out of range", func() bool { return s.Remove(99) }, 0},
		{"move", func() bool { return s.Move(0, 1) }, 0},
		{"swap", func() bool { return s.Swap(0, 1) }, 0},
		{"update", func() bool { return s.Update(0, model.FullPatch(model.LinkValues{Title: "x"})) }, 0},
	}
	for _, st := range steps {
		n := s.Len()
		st.do()
		assert.Equal(t, n+st.diff, s.Len(), st.name)
	}
	s.Replace(values("P", "Q"))
	assert.Equal(t, 2, s.Len())
}

func TestSubscribe_NotifiesAfterMutation(t *testing.T) {
	s := newTestStore("A", "B", "C")
	var got []Change
	unsubscribe := s.Subscribe(func(c Change) {
		// The mutation must already be visible from inside the callback.
		assert.Equal(t, len(c.Links), s.Len())
		got = append(got, c)
	})

	s.Move(0, 2)
	s.Remove(99) // no-op: no notification
	s.Swap(0, 1)
	require.Len(t, got, 2)
	assert.Equal(t, OpMove, got[0].Op)
	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, 2, got[0].To)
	assert.Equal(t, "A", got[0].Links[2].Title)
	assert.Equal(t, OpSwap, got[1].Op)

	unsubscribe()
	s.Append(model.LinkValues{})
	assert.Len(t, got, 2)
}

func TestLinks_ReturnsCopy(t *testing.T) {
	s := newTestStore("A")
	ls := s.Links()
	ls[0].Title = "mutated"
	l, _ := s.At(0)
	assert.Equal(t, "A", l.Title)
}

func TestSnapshot_StripsIDs(t *testing.T) {
	s := newTestStore("A", "B")
	assert.Equal(t, values("A", "B"), s.Snapshot())
}
