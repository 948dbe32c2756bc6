package domain

import "strings"

// Draft is the mutable, not yet persisted copy of an entity's fields, keyed by field name.
type Draft map[string]string

func (d Draft) Get(field string) string {
	return d[field]
}

func (d Draft) Set(field, value string) {
	d[field] = value
}

// Blank reports whether the field is missing or only whitespace.
func (d Draft) Blank(field string) bool {
	return strings.TrimSpace(d[field]) == ""
}

// Trimmed returns the field with surrounding whitespace removed.
func (d Draft) Trimmed(field string) string {
	return strings.TrimSpace(d[field])
}

func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
