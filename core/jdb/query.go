package jdb

import (
	"sort"
	"strings"
)

// Direction is a sort direction for Query.OrderBy.
type Direction string

// The two sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// DirectionFromString parses a direction, defaulting to ascending.
func DirectionFromString(s string) Direction {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

// Query is an immutable view over a snapshot of records. Every filter or
// sort operation returns a new query over a derived sequence, never
// mutating the source.
type Query struct {
	records  []Record
	singular func(string) string
}

// Get materializes the current sequence.
func (q *Query) Get() []Record {
	return q.records
}

// Find returns the first record with a matching id.
func (q *Query) Find(id int) (Record, bool) {
	for _, record := range q.records {
		if record.ID() == id {
			return record, true
		}
	}
	return Record{}, false
}

// Where keeps records whose field contains value as a case-insensitive
// substring. Records without the field never match.
func (q *Query) Where(field, value string) *Query {
	needle := strings.ToLower(value)
	var matched []Record
	for _, record := range q.records {
		v, ok := record.Get(field)
		if !ok {
			continue
		}
		s, ok := toString(v)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			matched = append(matched, record)
		}
	}
	return q.derive(matched)
}

// WhereParent keeps records whose foreign-key field for the given parent
// collection equals id.
func (q *Query) WhereParent(parent string, id int) *Query {
	field := q.singular(parent) + "_id"
	var matched []Record
	for _, record := range q.records {
		v, ok := record.Get(field)
		if !ok {
			continue
		}
		if fk, ok := ToInt(v); ok && fk == id {
			matched = append(matched, record)
		}
	}
	return q.derive(matched)
}

// OrderBy sorts by the given field. The sort is stable: records comparing
// equal keep their relative order. Values are compared numerically when
// both are numbers and lexicographically otherwise.
func (q *Query) OrderBy(field string, direction Direction) *Query {
	records := make([]Record, len(q.records))
	copy(records, q.records)
	sort.SliceStable(records, func(i, j int) bool {
		a, _ := records[i].Get(field)
		b, _ := records[j].Get(field)
		less := lessValue(a, b)
		if direction == Descending {
			return lessValue(b, a)
		}
		return less
	})
	return q.derive(records)
}

func (q *Query) derive(records []Record) *Query {
	return &Query{records: records, singular: q.singular}
}

// lessValue orders two JSON values by the natural ordering of their
// underlying type.
func lessValue(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa < fb
		}
	}
	sa, _ := toString(a)
	sb, _ := toString(b)
	return sa < sb
}
