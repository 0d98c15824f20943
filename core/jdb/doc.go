/*
Package jdb implements the JSON document store.

A Database manages a single JSON file holding any number of named
collections, each an ordered array of records:

	{
	    "posts": [
	        {
	            "id": 1,
	            "title": "Lorem ipsum dolor sit amet"
	        }
	    ],
	    "comments": [
	        {
	            "id": 1,
	            "post_id": 1,
	            "comment": "Pellentesque id orci sodales"
	        }
	    ],
	    "embed-resources": {
	        "posts": ["comments"]
	    }
	}

The file is held under an advisory exclusive lock for the lifetime of the
Database handle. Every mutation rewrites the complete document, pretty
printed with a stable four-space indent, so the file stays editable by
hand between runs.

The reserved top-level key "embed-resources" declares which child
collections are automatically embedded when a parent record is fetched.
Collection names starting with an underscore are hidden and cannot be
queried.
*/
package jdb
