package model

import "time"

// Field names addressable through path-style bindings (links.<index>.<field>).
const (
	FieldTitle = "title"
	FieldURL   = "url"
)

// Fields lists the editable fields of a Link in display order.
var Fields = []string{FieldTitle, FieldURL}

// Link is one identity-bearing record of a collection.
// ID is assigned once at creation and never changes.
type Link struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Values strips the identifier.
func (l Link) Values() LinkValues {
	return LinkValues{Title: l.Title, URL: l.URL}
}

// Field returns the value of a named field.
func (l Link) Field(name string) (string, bool) {
	switch name {
	case FieldTitle:
		return l.Title, true
	case FieldURL:
		return l.URL, true
	default:
		return "", false
	}
}

// LinkValues is the field-value set of a Link without its identity.
// It is used for creation, replacement and snapshot export.
type LinkValues struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Patch carries partial field values for an update. Nil members are left unchanged.
type Patch struct {
	Title *string `json:"title,omitempty"`
	URL   *string `json:"url,omitempty"`
}

// FullPatch overwrites every field.
func FullPatch(v LinkValues) Patch {
	return Patch{Title: &v.Title, URL: &v.URL}
}

// FieldPatch sets a single named field. ok is false for unknown field names.
func FieldPatch(name, value string) (p Patch, ok bool) {
	switch name {
	case FieldTitle:
		return Patch{Title: &value}, true
	case FieldURL:
		return Patch{URL: &value}, true
	default:
		return Patch{}, false
	}
}

func (p Patch) Empty() bool { return p.Title == nil && p.URL == nil }

// Apply returns l with the patch applied; the ID is untouched.
func (p Patch) Apply(l Link) Link {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	return l
}

// Submission is one snapshot handed across the submission boundary.
type Submission struct {
	ID          string       `json:"id"`
	SubmittedAt time.Time    `json:"submittedAt"`
	Links       []LinkValues `json:"links"`
}
