package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jsonbase-dev/jsonbase/core/jdb"
)

// Put replaces the record addressed by the path, or creates a fresh one
// when the id does not exist yet. Replacement is whole-record: fields
// missing from the body are gone afterwards. The path id always wins
// over an id carried in the body.
type Put struct {
	db *jdb.Database
}

// Execute implements Method.
func (p *Put) Execute(r *http.Request, resp *Response, current *PathNode) (*Response, error) {
	repo, err := p.db.From(current.Name)
	if err != nil {
		return nil, err
	}
	if !current.HasID {
		return nil, fmt.Errorf("%s: missing id: %w", current.Name, jdb.ErrNotFound)
	}

	record, err := decodeBody(r)
	if err != nil {
		return nil, err
	}
	if current.Parent != nil {
		if _, ok := record.Get(p.db.ForeignKey(current.Parent.Name)); !ok {
			if err := includeParent(p.db, record, current.Parent); err != nil {
				return nil, err
			}
		}
	}

	updated, err := repo.Update(current.ID, record)
	if errors.Is(err, jdb.ErrNotFound) {
		created, err := repo.Save(record)
		if err != nil {
			return nil, err
		}
		resp.StatusCode = http.StatusCreated
		return writeJSON(resp, embedParents(p.db, created))
	}
	if err != nil {
		return nil, err
	}
	return writeJSON(resp, embedParents(p.db, updated))
}
