package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jsonbase-dev/jsonbase/core"
	"github.com/jsonbase-dev/jsonbase/core/jdb"
)

// Method handles one HTTP verb. Execute receives the pre-filled response
// template and the last node of the parsed path, which is never nil.
type Method interface {
	Execute(r *http.Request, resp *Response, current *PathNode) (*Response, error)
}

// decodeBody reads the request body as a single JSON object. A missing
// body, malformed JSON or a non-object document all fail with
// ErrEmptyBody.
func decodeBody(r *http.Request) (jdb.Record, error) {
	content, err := io.ReadAll(r.Body)
	if err != nil {
		return jdb.Record{}, fmt.Errorf("cannot read body: %w", ErrEmptyBody)
	}
	if len(content) == 0 {
		return jdb.Record{}, ErrEmptyBody
	}
	var record jdb.Record
	if err := json.Unmarshal(content, &record); err != nil {
		return jdb.Record{}, fmt.Errorf("%v: %w", err, ErrEmptyBody)
	}
	return record, nil
}

// includeParent stamps the record with the foreign key for the parent
// node. The parent record must exist.
func includeParent(db *jdb.Database, record jdb.Record, parent *PathNode) error {
	repo, err := db.From(parent.Name)
	if err != nil {
		return err
	}
	if _, ok := repo.Find(parent.ID); !ok {
		return fmt.Errorf("%s id %d: %w", parent.Name, parent.ID, jdb.ErrNotFound)
	}
	record.Set(db.ForeignKey(parent.Name), parent.ID)
	return nil
}

// embedParents resolves every foreign-key field of the record into the
// referenced parent record. The field "post_id" becomes "post" carrying
// the full post object. Fields that cannot be resolved, because the
// parent collection or record does not exist, stay untouched, and a
// record already carrying the singular field keeps it as written.
func embedParents(db *jdb.Database, record jdb.Record) jdb.Record {
	out := jdb.NewRecord()
	for _, field := range record.Fields() {
		v, _ := record.Get(field)
		singular, ok := foreignKeyBase(field)
		if !ok {
			out.Set(field, v)
			continue
		}
		if _, taken := record.Get(singular); taken {
			out.Set(field, v)
			continue
		}
		id, ok := jdb.ToInt(v)
		if !ok {
			out.Set(field, v)
			continue
		}
		repo, err := db.From(core.Plural(singular))
		if err != nil {
			out.Set(field, v)
			continue
		}
		parent, found := repo.Find(id)
		if !found {
			out.Set(field, v)
			continue
		}
		out.Set(singular, parent)
	}
	return out
}

// attachChildren appends the declared child collections of the record as
// arrays, with the foreign-key field stripped off every child.
func attachChildren(db *jdb.Database, collection string, record jdb.Record) jdb.Record {
	children, ok := db.EmbedResources()[collection]
	if !ok {
		return record
	}
	out := record.Clone()
	fk := db.ForeignKey(collection)
	for _, child := range children {
		repo, err := db.From(child)
		if err != nil {
			continue
		}
		matches := []jdb.Record{}
		for _, childRecord := range repo.Query().WhereParent(collection, record.ID()).Get() {
			stripped := childRecord.Clone()
			stripped.Delete(fk)
			matches = append(matches, stripped)
		}
		out.Set(child, matches)
	}
	return out
}

// embedRecord applies both read-time enrichments: parents resolved in
// place of their foreign keys, declared children attached as arrays.
func embedRecord(db *jdb.Database, collection string, record jdb.Record) jdb.Record {
	return attachChildren(db, collection, embedParents(db, record))
}

// foreignKeyBase extracts the singular resource name from a foreign-key
// field name, so "post_id" yields "post". Plain "id" is not a foreign key.
func foreignKeyBase(field string) (string, bool) {
	base := strings.TrimSuffix(field, "_id")
	if base == field || base == "" {
		return "", false
	}
	return base, true
}

// writeJSON serializes v into the response body.
func writeJSON(resp *Response, v interface{}) (*Response, error) {
	var builder strings.Builder
	enc := json.NewEncoder(&builder)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("cannot serialize response: %w", err)
	}
	resp.Body = []byte(strings.TrimSuffix(builder.String(), "\n"))
	return resp, nil
}
