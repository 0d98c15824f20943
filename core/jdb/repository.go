package jdb

import "fmt"

// Repository is bound to one named collection. It works on a snapshot of
// the collection's records and persists through the owning Database.
type Repository struct {
	name    string
	records []Record
	db      *Database
}

// Name returns the collection name.
func (r *Repository) Name() string {
	return r.name
}

// Get returns all records in insertion order.
func (r *Repository) Get() []Record {
	return r.records
}

// Find returns the first record with a matching id.
func (r *Repository) Find(id int) (Record, bool) {
	for _, record := range r.records {
		if record.ID() == id {
			return record, true
		}
	}
	return Record{}, false
}

// NextID returns the id the next saved record will get: one more than the
// highest id in the collection, or 1 for an empty collection. Deleted ids
// are never reused.
func (r *Repository) NextID() int {
	max := 0
	for _, record := range r.records {
		if id := record.ID(); id > max {
			max = id
		}
	}
	return max + 1
}

// Save assigns the next id, appends the record and persists. The returned
// record carries the assigned id as its first field; any id in the input
// is discarded.
func (r *Repository) Save(data Record) (Record, error) {
	record := withForcedID(r.NextID(), data)
	r.records = append(r.records, record)
	if err := r.db.Save(r.name, r.records); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Update replaces the record with the given id and persists. The path id
// always wins over any id carried in the data. It fails wrapping
// ErrNotFound if no record has the given id; callers wanting upsert
// semantics branch to Save on that case.
func (r *Repository) Update(id int, data Record) (Record, error) {
	for i, record := range r.records {
		if record.ID() != id {
			continue
		}
		updated := withForcedID(id, data)
		r.records[i] = updated
		if err := r.db.Save(r.name, r.records); err != nil {
			return Record{}, err
		}
		return updated, nil
	}
	return Record{}, fmt.Errorf("%s id %d: %w", r.name, id, ErrNotFound)
}

// Delete removes the record with the given id and persists, leaving the
// remaining records contiguous. It fails wrapping ErrNotFound if no record
// has the given id.
func (r *Repository) Delete(id int) error {
	for i, record := range r.records {
		if record.ID() != id {
			continue
		}
		r.records = append(r.records[:i], r.records[i+1:]...)
		return r.db.Save(r.name, r.records)
	}
	return fmt.Errorf("%s id %d: %w", r.name, id, ErrNotFound)
}

// Query wraps the current records in an immutable query.
func (r *Repository) Query() *Query {
	return &Query{
		records:  r.records,
		singular: r.db.singular,
	}
}

// withForcedID copies data with the id field forced to the given value and
// placed first.
func withForcedID(id int, data Record) Record {
	record := NewRecord()
	record.Set("id", id)
	for _, field := range data.Fields() {
		if field == "id" {
			continue
		}
		v, _ := data.Get(field)
		record.Set(field, v)
	}
	return record
}
