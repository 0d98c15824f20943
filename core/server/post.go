package server

import (
	"net/http"

	"github.com/jsonbase-dev/jsonbase/core/jdb"
)

// Post creates a record in a collection. A parent node in the path
// stamps the new record with the matching foreign key; any id carried in
// the body is replaced by the next free id.
type Post struct {
	db *jdb.Database
}

// Execute implements Method.
func (p *Post) Execute(r *http.Request, resp *Response, current *PathNode) (*Response, error) {
	repo, err := p.db.From(current.Name)
	if err != nil {
		return nil, err
	}

	record, err := decodeBody(r)
	if err != nil {
		return nil, err
	}
	if current.Parent != nil {
		if err := includeParent(p.db, record, current.Parent); err != nil {
			return nil, err
		}
	}

	saved, err := repo.Save(record)
	if err != nil {
		return nil, err
	}
	resp.StatusCode = http.StatusCreated
	return writeJSON(resp, saved)
}
