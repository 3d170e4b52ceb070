package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Names lists the supported output formats.
var Names = []string{"json", "edn", "markdown"}

// Write writes v in the requested format (json is the default).
// markdown is only available for link snapshots and submissions.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "md", "markdown":
		return WriteMarkdown(w, v)
	default:
		return fmt.Errorf("unknown format: %s (want one of %s)", format, strings.Join(Names, "|"))
	}
}

// WriteJSON writes one JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
