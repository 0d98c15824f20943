package server

import (
	"fmt"
	"net/http"

	"github.com/jsonbase-dev/jsonbase/core/jdb"
)

// Get answers collection listings and single-record reads. Listings
// support query-string filters plus _sort and _order; parent nodes in
// the path narrow children down by foreign key. Records are returned
// with their declared embeddings resolved.
type Get struct {
	db *jdb.Database
}

// Execute implements Method.
func (g *Get) Execute(r *http.Request, resp *Response, current *PathNode) (*Response, error) {
	repo, err := g.db.From(current.Name)
	if err != nil {
		return nil, err
	}

	query := repo.Query()
	if current.Parent != nil {
		query = query.WhereParent(current.Parent.Name, current.Parent.ID)
	}

	params := r.URL.Query()
	for key, values := range params {
		if len(key) == 0 || key[0] == '_' || len(values) == 0 {
			continue
		}
		query = query.Where(key, values[0])
	}
	if sortField := params.Get("_sort"); sortField != "" {
		query = query.OrderBy(sortField, jdb.DirectionFromString(params.Get("_order")))
	}

	if !current.HasID {
		records := []jdb.Record{}
		for _, record := range query.Get() {
			records = append(records, embedRecord(g.db, current.Name, record))
		}
		return writeJSON(resp, records)
	}

	record, ok := query.Find(current.ID)
	if !ok {
		return nil, fmt.Errorf("%s id %d: %w", current.Name, current.ID, jdb.ErrNotFound)
	}
	return writeJSON(resp, embedRecord(g.db, current.Name, record))
}
