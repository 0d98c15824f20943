package jdb

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/iancoleman/orderedmap"
)

// Record is one JSON object within a collection. Field insertion order is
// preserved, so a record serializes back exactly the way it was written.
// Every stored record carries a positive integer "id" field assigned on
// insert.
type Record struct {
	fields *orderedmap.OrderedMap
}

// NewRecord returns an empty record.
func NewRecord() Record {
	om := orderedmap.New()
	om.SetEscapeHTML(false)
	return Record{fields: om}
}

// IsZero reports whether the record has no backing storage at all. A zero
// record is what Find returns together with ok == false.
func (r Record) IsZero() bool {
	return r.fields == nil
}

// Get returns the value of the named field.
func (r Record) Get(field string) (interface{}, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(field)
}

// Set sets the named field, appending it if it does not exist yet. A
// zero record has no storage to write to, so Set is a no-op there; use
// NewRecord for a writable record.
func (r Record) Set(field string, value interface{}) {
	if r.fields == nil {
		return
	}
	r.fields.Set(field, value)
}

// Delete removes the named field.
func (r Record) Delete(field string) {
	if r.fields != nil {
		r.fields.Delete(field)
	}
}

// Fields returns the field names in insertion order.
func (r Record) Fields() []string {
	if r.fields == nil {
		return nil
	}
	return r.fields.Keys()
}

// ID returns the record's id, or 0 if the record has none.
func (r Record) ID() int {
	v, ok := r.Get("id")
	if !ok {
		return 0
	}
	id, _ := ToInt(v)
	return id
}

// Clone returns a field-for-field copy of the record. The copy shares
// nested values but has its own field table, so adding or deleting fields
// on the clone leaves the original untouched.
func (r Record) Clone() Record {
	out := NewRecord()
	for _, field := range r.Fields() {
		v, _ := r.Get(field)
		out.Set(field, v)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("null"), nil
	}
	return json.Marshal(r.fields)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	om := orderedmap.New()
	om.SetEscapeHTML(false)
	if err := om.UnmarshalJSON(data); err != nil {
		return err
	}
	r.fields = om
	return nil
}

// recordFromValue converts a value decoded from the document into a Record.
func recordFromValue(v interface{}) (Record, bool) {
	switch m := v.(type) {
	case orderedmap.OrderedMap:
		return Record{fields: &m}, true
	case *orderedmap.OrderedMap:
		return Record{fields: m}, true
	case Record:
		return m, true
	case map[string]interface{}:
		out := NewRecord()
		for key, value := range m {
			out.Set(key, value)
		}
		return out, true
	}
	return Record{}, false
}

// recordsFromValue converts a decoded collection value into its records.
// Array elements that are not objects are skipped.
func recordsFromValue(v interface{}) []Record {
	items, ok := v.([]interface{})
	if !ok {
		if records, ok := v.([]Record); ok {
			return records
		}
		return nil
	}
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if record, ok := recordFromValue(item); ok {
			records = append(records, record)
		}
	}
	return records
}

// ToInt coerces a JSON value to an integer. Numbers are truncated, numeric
// strings are parsed, everything else reports false.
func ToInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// toString coerces a JSON scalar to its string form for substring
// filtering. Objects and arrays report false.
func toString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case json.Number:
		return s.String(), true
	case bool:
		return strconv.FormatBool(s), true
	}
	return "", false
}

// toFloat coerces a JSON value to a number for ordering comparisons.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
