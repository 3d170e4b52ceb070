package collection

import (
	"fmt"
	"strconv"
	"strings"

	"linkdeck/internal/model"
)

// PathRoot is the first segment of field paths (links.<index>.<field>).
const PathRoot = "links"

// Binding gives field widgets get/set access to a single field of the link
// currently at an index. It holds no state besides the Store; every call
// resolves the index against the current order.
type Binding struct {
	store *Store
}

func NewBinding(s *Store) Binding { return Binding{store: s} }

func (b Binding) Get(index int, field string) (string, bool) {
	l, ok := b.store.At(index)
	if !ok {
		return "", false
	}
	return l.Field(field)
}

// Set writes value through Store.Update. It reports false for unknown fields
// and out-of-range indices.
func (b Binding) Set(index int, field, value string) bool {
	p, ok := model.FieldPatch(field, value)
	if !ok {
		return false
	}
	return b.store.Update(index, p)
}

func (b Binding) GetPath(path string) (string, bool) {
	index, field, err := ParsePath(path)
	if err != nil {
		return "", false
	}
	return b.Get(index, field)
}

func (b Binding) SetPath(path, value string) bool {
	index, field, err := ParsePath(path)
	if err != nil {
		return false
	}
	return b.Set(index, field, value)
}

// FieldPath formats the path of a field, e.g. FieldPath(2, "url") == "links.2.url".
func FieldPath(index int, field string) string {
	return PathRoot + "." + strconv.Itoa(index) + "." + field
}

// ParsePath splits "links.<index>.<field>". The index is not range checked.
func ParsePath(path string) (index int, field string, err error) {
	parts := strings.Split(strings.TrimSpace(path), ".")
	if len(parts) != 3 || parts[0] != PathRoot {
		return 0, "", fmt.Errorf("invalid field path %q (want %s.<index>.<field>)", path, PathRoot)
	}
	index, err = strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return 0, "", fmt.Errorf("invalid index in field path %q", path)
	}
	if _, ok := (model.Link{}).Field(parts[2]); !ok {
		return 0, "", fmt.Errorf("unknown field %q in path %q", parts[2], path)
	}
	return index, parts[2], nil
}
