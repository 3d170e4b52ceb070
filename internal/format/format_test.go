package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"linkdeck/internal/model"
)

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []model.LinkValues{{Title: "A&B", URL: "https://a"}}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, want := buf.String(), `[{"title":"A&B","url":"https://a"}]`+"\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	sub := model.Submission{
		ID:          "sub-1",
		SubmittedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Links:       []model.LinkValues{{Title: "Link 01", URL: "https://link01.com.br"}},
	}
	if err := Write(&buf, sub, "edn", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{:id "sub-1" :links [{:title "Link 01" :url "https://link01.com.br"}] :submitted-at "2024-01-02T03:04:05Z"}` + "\n"
	if buf.String() != want {
		t.Fatalf("got %q\nwant %q", buf.String(), want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"n": 2, "xs": []any{}, "ok": true, "none": nil}, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "{\n  :n 2\n  :none nil\n  :ok true\n  :xs []\n}\n"
	if buf.String() != want {
		t.Fatalf("got %q\nwant %q", buf.String(), want)
	}
}

func TestWrite_Markdown(t *testing.T) {
	var buf bytes.Buffer
	links := []model.LinkValues{
		{Title: "Go [docs]", URL: "https://go.dev/doc"},
		{Title: "", URL: "https://"},
		{Title: "No url", URL: ""},
		{},
	}
	if err := Write(&buf, links, "markdown", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := strings.Join([]string{
		`1. [Go \[docs\]](https://go.dev/doc)`,
		`2. <https://>`,
		`3. No url`,
		`4. _(empty)_`,
		``,
	}, "\n")
	if buf.String() != want {
		t.Fatalf("got %q\nwant %q", buf.String(), want)
	}
}

func TestWrite_MarkdownRejectsOtherValues(t *testing.T) {
	if err := Write(&bytes.Buffer{}, map[string]string{}, "md", false); err == nil {
		t.Fatalf("expected error for unsupported markdown value")
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, 1, "yaml", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestKeyword(t *testing.T) {
	cases := map[string]string{
		"title":       ":title",
		"submittedAt": ":submitted-at",
		"new_link":    ":new-link",
	}
	for in, want := range cases {
		if got := keyword(in); got != want {
			t.Fatalf("keyword(%q)=%q, want %q", in, got, want)
		}
	}
}
