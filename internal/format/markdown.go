package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"linkdeck/internal/model"
)

// WriteMarkdown renders link snapshots and submissions as markdown lists.
func WriteMarkdown(w io.Writer, v any) error {
	md, err := Markdown(v)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, md)
	return err
}

// Markdown returns the markdown rendering of v.
func Markdown(v any) (string, error) {
	var b strings.Builder
	switch t := v.(type) {
	case []model.LinkValues:
		writeLinkList(&b, t)
	case []model.Link:
		vals := make([]model.LinkValues, 0, len(t))
		for _, l := range t {
			vals = append(vals, l.Values())
		}
		writeLinkList(&b, vals)
	case model.Submission:
		writeSubmission(&b, t)
	case *model.Submission:
		if t != nil {
			writeSubmission(&b, *t)
		}
	case []model.Submission:
		for i, s := range t {
			if i > 0 {
				b.WriteString("\n")
			}
			writeSubmission(&b, s)
		}
	default:
		return "", fmt.Errorf("markdown: unsupported value %T", v)
	}
	return b.String(), nil
}

func writeSubmission(b *strings.Builder, s model.Submission) {
	fmt.Fprintf(b, "## %s\n\n", s.SubmittedAt.UTC().Format(time.RFC3339))
	writeLinkList(b, s.Links)
}

func writeLinkList(b *strings.Builder, links []model.LinkValues) {
	if len(links) == 0 {
		b.WriteString("_No links._\n")
		return
	}
	for i, l := range links {
		title := strings.TrimSpace(l.Title)
		url := strings.TrimSpace(l.URL)
		switch {
		case title == "" && url == "":
			fmt.Fprintf(b, "%d. _(empty)_\n", i+1)
		case title == "":
			fmt.Fprintf(b, "%d. <%s>\n", i+1, url)
		case url == "":
			fmt.Fprintf(b, "%d. %s\n", i+1, escapeMarkdown(title))
		default:
			fmt.Fprintf(b, "%d. [%s](%s)\n", i+1, escapeMarkdown(title), url)
		}
	}
}

func escapeMarkdown(s string) string {
	r := strings.NewReplacer(`[`, `\[`, `]`, `\]`, `*`, `\*`, `_`, `\_`)
	return r.Replace(s)
}
