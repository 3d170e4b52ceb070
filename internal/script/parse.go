// Package script replays a recorded sequence of collection events (structural
// operations, drag signals, field edits and submits) one line at a time.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Command names accepted in scripts.
const (
	CmdAppend    = "append"
	CmdPrepend   = "prepend"
	CmdInsert    = "insert"
	CmdRemove    = "remove"
	CmdMove      = "move"
	CmdSwap      = "swap"
	CmdReplace   = "replace"
	CmdUpdate    = "update"
	CmdSet       = "set"
	CmdDragStart = "drag-start"
	CmdCandidate = "candidate"
	CmdDragEnd   = "drag-end"
	CmdSubmit    = "submit"
)

// Event is one parsed script line.
type Event struct {
	Line int
	Name string
	Args []string
	// Ints holds the leading integer arguments of index-based commands.
	Ints []int
}

func (e Event) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	return e.Name + " " + strings.Join(e.Args, " ")
}

type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// grammar gives each command's [min, max] argument count (max < 0 means
// unbounded) and how many leading args must be integers.
var grammar = map[string]struct {
	min, max, ints int
	usage          string
}{
	CmdAppend:    {0, 2, 0, "append [title [url]]"},
	CmdPrepend:   {0, 2, 0, "prepend [title [url]]"},
	CmdInsert:    {1, 3, 1, "insert <index> [title [url]]"},
	CmdRemove:    {1, 1, 1, "remove <index>"},
	CmdMove:      {2, 2, 2, "move <from> <to>"},
	CmdSwap:      {2, 2, 2, "swap <i> <j>"},
	CmdReplace:   {0, -1, 0, "replace [title url]..."},
	CmdUpdate:    {2, -1, 1, "update <index> field=value..."},
	CmdSet:       {2, 2, 0, "set links.<index>.<field> <value>"},
	CmdDragStart: {1, 1, 1, "drag-start <index>"},
	CmdCandidate: {0, -1, 0, "candidate <id|#index>..."},
	CmdDragEnd:   {0, 0, 0, "drag-end"},
	CmdSubmit:    {0, 0, 0, "submit"},
}

// Validate checks an event against the command grammar, so events built
// without ParseLine are safe to apply.
func (e Event) Validate() error {
	g, known := grammar[e.Name]
	if !known {
		return &ParseError{Line: e.Line, Msg: fmt.Sprintf("unknown command %q", e.Name)}
	}
	if len(e.Args) < g.min || (g.max >= 0 && len(e.Args) > g.max) || len(e.Ints) < g.ints {
		return &ParseError{Line: e.Line, Msg: "usage: " + g.usage}
	}
	if e.Name == CmdReplace && len(e.Args)%2 != 0 {
		return &ParseError{Line: e.Line, Msg: "replace takes title/url pairs"}
	}
	return nil
}

// Parse reads a whole script. Blank lines and "#" comments are skipped.
func Parse(r io.Reader) ([]Event, error) {
	var out []Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		ev, ok, err := ParseLine(line, sc.Text())
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, ev)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseLine parses one line; ok is false for blank and comment-only lines.
func ParseLine(line int, text string) (ev Event, ok bool, err error) {
	words := splitWords(stripComment(text))
	if len(words) == 0 {
		return Event{}, false, nil
	}
	name := strings.ToLower(words[0])
	g, known := grammar[name]
	if !known {
		return Event{}, false, &ParseError{Line: line, Msg: fmt.Sprintf("unknown command %q", words[0])}
	}
	args := words[1:]
	if len(args) < g.min || (g.max >= 0 && len(args) > g.max) {
		return Event{}, false, &ParseError{Line: line, Msg: "usage: " + g.usage}
	}
	if name == CmdReplace && len(args)%2 != 0 {
		return Event{}, false, &ParseError{Line: line, Msg: "replace takes title/url pairs"}
	}
	ev = Event{Line: line, Name: name, Args: args}
	for i := 0; i < g.ints; i++ {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return Event{}, false, &ParseError{Line: line, Msg: fmt.Sprintf("%s: %q is not an index", name, args[i])}
		}
		ev.Ints = append(ev.Ints, n)
	}
	if name == CmdUpdate {
		for _, kv := range args[1:] {
			if !strings.Contains(kv, "=") {
				return Event{}, false, &ParseError{Line: line, Msg: fmt.Sprintf("update: %q is not field=value", kv)}
			}
		}
	}
	return ev, true, nil
}
