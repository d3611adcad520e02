package quote

import (
	"encoding/json"
	"strings"

	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

// IDList is a multi-valued association field (subjectivities,
// endorsements) linked to one or more quotes.
//
// The store hands these back in two shapes: a native JSON list of
// identifiers, or a single string holding a Postgres-style array
// literal ("{id1,id2}"). IDList normalizes both at decode time so
// membership comparisons always run against a plain list.
type IDList []string

// UnmarshalJSON accepts either shape and normalizes it.
func (ids *IDList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*ids = asList
		return nil
	}

	var asLiteral string
	if err := json.Unmarshal(data, &asLiteral); err != nil {
		return errors.Input("association field is neither a list nor an array literal", err)
	}
	normalized, err := NormalizeIDList(asLiteral)
	if err != nil {
		return err
	}
	*ids = normalized
	return nil
}

// Contains reports membership after normalization.
func (ids IDList) Contains(id string) bool {
	for _, have := range ids {
		if have == id {
			return true
		}
	}
	return false
}

// NormalizeIDList converts either representation of a multi-valued
// association field into a plain list of identifiers.
//
// Accepted shapes: []string, []any of strings, or a single string
// holding an array literal ("{id1,id2}", elements optionally quoted).
// Nil input normalizes to an empty list.
func NormalizeIDList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf(errors.TypeInput, "association list contains non-string element %v", item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return parseArrayLiteral(v), nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unsupported association field shape %T", raw)
	}
}

// parseArrayLiteral splits a store array literal into identifiers.
func parseArrayLiteral(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
