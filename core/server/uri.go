package server

import (
	"strconv"
	"strings"
)

// PathNode is one resource reference decoded from the request path. The
// path is split into segments and paired two at a time: a collection
// name, then optionally that collection's numeric id. Each node points
// back at its ancestor, so /posts/1/comments parses to a "comments" node
// whose parent is the "posts" node with id 1.
type PathNode struct {
	Name   string
	ID     int
	HasID  bool
	Parent *PathNode
}

// ParsePath parses a request path into its node chain and returns the
// last node, or nil for a path without segments. Collection existence is
// not checked here; that is the handlers' business. A non-numeric id
// segment parses to 0, which never matches a stored record.
func ParsePath(path string) *PathNode {
	if i := strings.IndexRune(path, '?'); i >= 0 {
		path = path[:i]
	}
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	var node *PathNode
	for i := 0; i < len(segments); i += 2 {
		next := &PathNode{Name: segments[i], Parent: node}
		if i+1 < len(segments) {
			next.HasID = true
			next.ID, _ = strconv.Atoi(segments[i+1])
		}
		node = next
	}
	return node
}
