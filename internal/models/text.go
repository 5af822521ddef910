package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// EntityID identifies a record in the marketplace API. Most resources use
// numeric ids but a few endpoints send them as strings, so both decode to the
// same value ("1" and 1 are equal).
type EntityID string

func (id *EntityID) UnmarshalJSON(data []byte) error {
	s, err := scalarText(data)
	if err != nil {
		return fmt.Errorf("entity id: %w", err)
	}
	*id = EntityID(s)
	return nil
}

// MarshalJSON writes canonical integers as JSON numbers and everything else
// as a string, mirroring what the marketplace API sends.
func (id EntityID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(string(id)), nil
	}
	return json.Marshal(string(id))
}

func (id EntityID) String() string { return string(id) }

func (id EntityID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

// Validate refuses ids that cannot be used as a single path segment.
func (id EntityID) Validate() error {
	if id.IsZero() {
		return ErrMissingID
	}
	s := string(id)
	if s == "." || s == ".." || strings.ContainsAny(s, "/\\?#") {
		return fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return nil
}

// Text is a free-form scalar field. Numbers and booleans are kept as their
// literal text, objects collapse to their "name" member and lists are joined
// with ", ".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := looseText(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

func (t Text) String() string { return string(t) }

// Money is an optional decimal amount. Numbers and numeric strings decode,
// anything else is treated as absent.
type Money struct {
	decimal.NullDecimal
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var nd decimal.NullDecimal
	if err := nd.UnmarshalJSON(bytes.TrimSpace(data)); err != nil {
		*m = Money{}
		return nil
	}
	m.NullDecimal = nd
	return nil
}

// NewMoney returns a present amount.
func NewMoney(d decimal.Decimal) Money {
	return Money{decimal.NullDecimal{Decimal: d, Valid: true}}
}

func (m Money) String() string {
	if !m.Valid {
		return ""
	}
	return m.Decimal.StringFixed(2)
}

func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil
	case '{', '[':
		return "", fmt.Errorf("unexpected %s", string(data[:1]))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}

func looseText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", nil
	}
	switch data[0] {
	case '{':
		var obj struct {
			Name json.RawMessage `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return "", err
		}
		s, _ := scalarText(obj.Name)
		return s, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return "", err
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s, err := looseText(item); err == nil && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), nil
	}
	return scalarText(data)
}

// Count is a tally the API sends either as a number or as the list itself.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*c = Count(len(items))
		return nil
	}
	s, err := scalarText(data)
	if err != nil {
		*c = 0
		return nil
	}
	n, _ := strconv.Atoi(s)
	*c = Count(n)
	return nil
}

// MatchesQuery reports whether any field contains q, ignoring case. An empty
// query matches everything.
func MatchesQuery(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
