package server

import (
	"fmt"
	"net/http"

	"github.com/jsonbase-dev/jsonbase/core/jdb"
)

// Delete removes the record addressed by the path. With a parent node in
// the path the record must actually belong to that parent, otherwise the
// request fails as not found.
type Delete struct {
	db *jdb.Database
}

// Execute implements Method.
func (d *Delete) Execute(r *http.Request, resp *Response, current *PathNode) (*Response, error) {
	repo, err := d.db.From(current.Name)
	if err != nil {
		return nil, err
	}
	if !current.HasID {
		return nil, fmt.Errorf("%s: missing id: %w", current.Name, jdb.ErrNotFound)
	}

	if parent := current.Parent; parent != nil {
		parentRepo, err := d.db.From(parent.Name)
		if err != nil {
			return nil, err
		}
		if _, ok := parentRepo.Find(parent.ID); !ok {
			return nil, fmt.Errorf("%s id %d: %w", parent.Name, parent.ID, jdb.ErrNotFound)
		}
		record, ok := repo.Find(current.ID)
		if !ok {
			return nil, fmt.Errorf("%s id %d: %w", current.Name, current.ID, jdb.ErrNotFound)
		}
		v, _ := record.Get(d.db.ForeignKey(parent.Name))
		if fk, ok := jdb.ToInt(v); !ok || fk != parent.ID {
			return nil, fmt.Errorf("%s id %d does not belong to %s id %d: %w",
				current.Name, current.ID, parent.Name, parent.ID, jdb.ErrNotFound)
		}
	}

	if err := repo.Delete(current.ID); err != nil {
		return nil, err
	}
	resp.StatusCode = http.StatusNoContent
	resp.Body = nil
	return resp, nil
}
