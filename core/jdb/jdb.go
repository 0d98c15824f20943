package jdb

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"github.com/iancoleman/orderedmap"

	"github.com/jsonbase-dev/jsonbase/core"
)

// embedResourcesKey is the reserved top-level key declaring which child
// collections are embedded into their parent records on read.
const embedResourcesKey = "embed-resources"

var (
	// ErrNotFound is returned for unknown collections and unknown record ids.
	ErrNotFound = errors.New("not found")

	// ErrStorage is returned when the backing file cannot be opened or locked.
	ErrStorage = errors.New("storage failure")

	// ErrFormat is returned when the backing file content is not a JSON object.
	ErrFormat = errors.New("invalid database format")
)

// Database owns the backing JSON file. It holds an advisory exclusive lock
// on the file from Open until Close, reads the full document into memory,
// and rewrites the complete document on every mutation.
type Database struct {
	path     string
	file     *os.File
	lock     *flock.Flock
	doc      *orderedmap.OrderedMap
	singular func(string) string
}

// Option configures a Database.
type Option func(*Database)

// WithSingularizer replaces the inflection function used to derive
// foreign-key field names from collection names.
func WithSingularizer(singular func(string) string) Option {
	return func(db *Database) {
		db.singular = singular
	}
}

// Open opens an existing database file and acquires the exclusive lock.
// It fails wrapping ErrStorage if the file cannot be opened or locked, and
// wrapping ErrFormat if non-empty content does not parse as a JSON object.
func Open(path string, options ...Option) (*Database, error) {
	file, err := os.OpenFile(path, os.O_RDWR, 0666)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open file %s: %v", ErrStorage, path, err)
	}
	return lockAndLoad(path, file, options)
}

// OpenOrCreate opens the database file, creating it and any missing parent
// directories first if necessary.
func OpenOrCreate(path string, options ...Option) (*Database, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return nil, fmt.Errorf("%w: cannot create directory %s: %v", ErrStorage, dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open file %s: %v", ErrStorage, path, err)
	}
	return lockAndLoad(path, file, options)
}

func lockAndLoad(path string, file *os.File, options []Option) (*Database, error) {
	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: cannot lock file %s: %v", ErrStorage, path, err)
	}

	db := &Database{
		path:     path,
		file:     file,
		lock:     lock,
		singular: core.Singular,
	}
	for _, option := range options {
		option(db)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: cannot read file %s: %v", ErrStorage, path, err)
	}

	db.doc = orderedmap.New()
	db.doc.SetEscapeHTML(false)
	if len(bytes.TrimSpace(content)) > 0 {
		if err := json.Unmarshal(content, db.doc); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
		}
	}
	return db, nil
}

// Close releases the file lock and the underlying file handle. The
// database must not be used afterwards.
func (db *Database) Close() error {
	var err error
	if db.lock != nil {
		err = db.lock.Unlock()
		db.lock = nil
	}
	if db.file != nil {
		if cerr := db.file.Close(); err == nil {
			err = cerr
		}
		db.file = nil
	}
	return err
}

// Path returns the path of the backing file.
func (db *Database) Path() string {
	return db.path
}

// Has reports whether the named collection exists and is visible.
func (db *Database) Has(name string) bool {
	if hidden(name) {
		return false
	}
	_, ok := db.doc.Get(name)
	return ok
}

// Collections returns the visible collection names in document order.
func (db *Database) Collections() []string {
	var names []string
	for _, key := range db.doc.Keys() {
		if hidden(key) {
			continue
		}
		names = append(names, key)
	}
	return names
}

// From returns a repository bound to the named collection. It fails
// wrapping ErrNotFound if the collection does not exist or is hidden.
func (db *Database) From(name string) (*Repository, error) {
	if hidden(name) {
		return nil, fmt.Errorf("collection %s: %w", name, ErrNotFound)
	}
	value, ok := db.doc.Get(name)
	if !ok {
		return nil, fmt.Errorf("collection %s: %w", name, ErrNotFound)
	}
	return &Repository{
		name:    name,
		records: recordsFromValue(value),
		db:      db,
	}, nil
}

// Save replaces the named collection and persists the whole document.
func (db *Database) Save(name string, records []Record) error {
	db.SetCollection(name, records)
	return db.Flush()
}

// SetCollection replaces the named collection in memory without persisting.
func (db *Database) SetCollection(name string, records []Record) {
	db.doc.Set(name, records)
}

// EmbedResources returns the declared parent to children embedding map,
// or an empty map if the document declares none.
func (db *Database) EmbedResources() map[string][]string {
	spec := map[string][]string{}
	value, ok := db.doc.Get(embedResourcesKey)
	if !ok {
		return spec
	}
	entry, ok := recordFromValue(value)
	if !ok {
		return spec
	}
	for _, parent := range entry.Fields() {
		v, _ := entry.Get(parent)
		items, ok := v.([]interface{})
		if !ok {
			continue
		}
		var children []string
		for _, item := range items {
			if child, ok := item.(string); ok {
				children = append(children, child)
			}
		}
		spec[parent] = children
	}
	return spec
}

// SetEmbedResources replaces the embedding declaration in memory without
// persisting. Parents are written in sorted order for a stable file.
func (db *Database) SetEmbedResources(spec map[string][]string) {
	parents := make([]string, 0, len(spec))
	for parent := range spec {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	entry := NewRecord()
	for _, parent := range parents {
		entry.Set(parent, spec[parent])
	}
	db.doc.Set(embedResourcesKey, entry)
}

// ForeignKey returns the foreign-key field name pointing at the given
// parent collection, e.g. "post_id" for the "posts" collection.
func (db *Database) ForeignKey(parent string) string {
	return db.singular(parent) + "_id"
}

// Flush serializes the entire document back to pretty-printed JSON,
// truncates the backing file and rewrites it. This is the single write
// path; all mutations funnel through here.
func (db *Database) Flush() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(db.doc); err != nil {
		return fmt.Errorf("cannot serialize database: %w", err)
	}
	if err := db.file.Truncate(0); err != nil {
		return fmt.Errorf("%w: cannot truncate %s: %v", ErrStorage, db.path, err)
	}
	if _, err := db.file.Seek(0, 0); err != nil {
		return fmt.Errorf("%w: cannot rewind %s: %v", ErrStorage, db.path, err)
	}
	if _, err := db.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: cannot write %s: %v", ErrStorage, db.path, err)
	}
	return nil
}

// hidden reports whether a collection name is reserved. Names starting
// with an underscore and the embedding declaration itself cannot be
// queried as collections.
func hidden(name string) bool {
	return strings.HasPrefix(name, "_") || name == embedResourcesKey
}
