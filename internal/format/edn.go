package format

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes v as EDN. Values go through their JSON encoding first so
// json tags decide the key names; keys become kebab-case keywords
// (submittedAt -> :submitted-at).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	e := ednWriter{w: bw, pretty: pretty}
	e.value(x, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

type ednWriter struct {
	w      *bufio.Writer
	pretty bool
}

func (e ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.w.WriteString("nil")
	case bool:
		e.w.WriteString(strconv.FormatBool(t))
	case json.Number:
		e.w.WriteString(t.String())
	case string:
		e.w.WriteString(strconv.Quote(t))
	case []any:
		e.seq('[', ']', len(t), depth, func(i int) { e.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq('{', '}', len(keys), depth, func(i int) {
			e.w.WriteString(keyword(keys[i]))
			e.w.WriteByte(' ')
			e.value(t[keys[i]], depth+1)
		})
	default:
		e.w.WriteString(strconv.Quote(fmt.Sprint(t)))
	}
}

// seq writes n elements between open and close; pretty output puts one
// element per line.
func (e ednWriter) seq(open, close byte, n, depth int, elem func(int)) {
	e.w.WriteByte(open)
	for i := 0; i < n; i++ {
		switch {
		case e.pretty:
			e.w.WriteByte('\n')
			e.w.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			e.w.WriteByte(' ')
		}
		elem(i)
	}
	if e.pretty && n > 0 {
		e.w.WriteByte('\n')
		e.w.WriteString(strings.Repeat("  ", depth))
	}
	e.w.WriteByte(close)
}

func keyword(k string) string {
	var b strings.Builder
	b.WriteByte(':')
	for i, r := range strings.TrimSpace(k) {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '_':
			b.WriteByte('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
