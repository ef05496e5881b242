package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// TagList is an ordered list of short labels persisted as comma-delimited text.
type TagList []string

const tagSeparator = ","

// ParseTagList splits raw delimited text, trimming entries and dropping empty ones.
func ParseTagList(raw string) TagList {
	out := TagList{}
	for _, part := range strings.Split(raw, tagSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Normalize trims every entry and drops empty ones, keeping order.
func (t TagList) Normalize() TagList {
	return ParseTagList(strings.Join(t, tagSeparator))
}

// String joins the tags with the storage separator.
func (t TagList) String() string {
	return strings.Join(t, tagSeparator)
}

// Value implements driver.Valuer.
func (t TagList) Value() (driver.Value, error) {
	return t.Normalize().String(), nil
}

// Scan implements sql.Scanner.
func (t *TagList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = TagList{}
	case string:
		*t = ParseTagList(v)
	case []byte:
		*t = ParseTagList(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}
	return nil
}
