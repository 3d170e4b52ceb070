package script

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"linkdeck/internal/collection"
	"linkdeck/internal/model"
	"linkdeck/internal/reorder"
	"linkdeck/internal/submit"

	"github.com/rs/zerolog"
)

// Runner applies events to one Store and its drag Controller, strictly in order.
type Runner struct {
	Store      *collection.Store
	Controller *reorder.Controller
	Binding    collection.Binding
	// Sink receives snapshots for "submit" events; nil only exports.
	Sink submit.Sink
	// NewLink fills omitted values of append/prepend/insert.
	NewLink model.LinkValues
	Log     zerolog.Logger
}

// NewRunner wires a Controller and Binding to s.
func NewRunner(s *collection.Store, sink submit.Sink, newLink model.LinkValues, log zerolog.Logger) *Runner {
	return &Runner{
		Store:      s,
		Controller: reorder.New(s, reorder.WithLogger(log)),
		Binding:    collection.NewBinding(s),
		Sink:       sink,
		NewLink:    newLink,
		Log:        log,
	}
}

func (r *Runner) Close() {
	if r.Controller != nil {
		r.Controller.Close()
	}
}

// Step reports what one event did.
type Step struct {
	Line    int    `json:"line"`
	Event   string `json:"event"`
	Changed bool   `json:"changed"`
	Outcome string `json:"outcome,omitempty"`
}

// Run applies events until the end or the first failing submit. Index errors are
// never failures: out-of-range events are recorded as unchanged steps.
func (r *Runner) Run(ctx context.Context, events []Event) ([]Step, error) {
	steps := make([]Step, 0, len(events))
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		st, err := r.Apply(ctx, ev)
		steps = append(steps, st)
		if err != nil {
			return steps, fmt.Errorf("line %d: %w", ev.Line, err)
		}
	}
	return steps, nil
}

// Apply runs a single event.
func (r *Runner) Apply(ctx context.Context, ev Event) (Step, error) {
	st := Step{Line: ev.Line, Event: ev.String()}
	if err := ev.Validate(); err != nil {
		return st, err
	}
	var err error
	switch ev.Name {
	case CmdAppend:
		st.Changed = r.Store.Append(r.values(ev.Args))
	case CmdPrepend:
		st.Changed = r.Store.Prepend(r.values(ev.Args))
	case CmdInsert:
		st.Changed = r.Store.Insert(ev.Ints[0], r.values(ev.Args[1:]))
	case CmdRemove:
		st.Changed = r.Store.Remove(ev.Ints[0])
	case CmdMove:
		st.Changed = r.Store.Move(ev.Ints[0], ev.Ints[1])
	case CmdSwap:
		st.Changed = r.Store.Swap(ev.Ints[0], ev.Ints[1])
	case CmdReplace:
		vals := make([]model.LinkValues, 0, len(ev.Args)/2)
		for i := 0; i+1 < len(ev.Args); i += 2 {
			vals = append(vals, model.LinkValues{Title: ev.Args[i], URL: ev.Args[i+1]})
		}
		st.Changed = r.Store.Replace(vals)
	case CmdUpdate:
		st.Changed = r.Store.Update(ev.Ints[0], patchFromPairs(ev.Args[1:]))
	case CmdSet:
		st.Changed = r.Binding.SetPath(ev.Args[0], ev.Args[1])
	case CmdDragStart:
		st.Changed = r.Controller.DragStart(ev.Ints[0])
		st.Outcome = dragState(r.Controller)
	case CmdCandidate:
		out := r.Controller.CandidateOrder(r.resolveRefs(ev.Args))
		st.Changed = out == reorder.Moved
		st.Outcome = out.String()
	case CmdDragEnd:
		st.Changed = r.Controller.Dragging()
		r.Controller.DragEnd()
		st.Outcome = dragState(r.Controller)
	case CmdSubmit:
		var snap []model.LinkValues
		snap, err = submit.Submit(ctx, r.Store, r.Sink)
		st.Outcome = "submitted " + strconv.Itoa(len(snap))
	default:
		err = fmt.Errorf("unknown command %q", ev.Name)
	}
	r.Log.Debug().Int("line", ev.Line).Str("event", st.Event).Bool("changed", st.Changed).Msg("script step")
	return st, err
}

func (r *Runner) values(args []string) model.LinkValues {
	v := r.NewLink
	if len(args) > 0 {
		v.Title = args[0]
	}
	if len(args) > 1 {
		v.URL = args[1]
	}
	return v
}

// resolveRefs maps "#n" to the id currently at index n; other words are ids.
// Unresolvable "#n" references are dropped.
func (r *Runner) resolveRefs(refs []string) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if strings.HasPrefix(ref, "#") {
			n, err := strconv.Atoi(ref[1:])
			if err != nil {
				continue
			}
			if l, ok := r.Store.At(n); ok {
				out = append(out, l.ID)
			}
			continue
		}
		out = append(out, ref)
	}
	return out
}

// patchFromPairs builds a patch from field=value words; unknown fields are ignored.
func patchFromPairs(pairs []string) model.Patch {
	var p model.Patch
	for _, kv := range pairs {
		k, v, _ := strings.Cut(kv, "=")
		one, ok := model.FieldPatch(strings.ToLower(strings.TrimSpace(k)), v)
		if !ok {
			continue
		}
		if one.Title != nil {
			p.Title = one.Title
		}
		if one.URL != nil {
			p.URL = one.URL
		}
	}
	return p
}

func dragState(c *reorder.Controller) string {
	if i, ok := c.ActiveIndex(); ok {
		return "dragging " + strconv.Itoa(i)
	}
	return "idle"
}
