package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPutReplacesRecord(t *testing.T) {
	c := testClient(t, blogDocument)
	var updated map[string]interface{}
	status, err := c.RawPut("/posts/1", map[string]interface{}{"title": "rewritten"}, &updated)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), updated["id"])
	assert.Equal(t, "rewritten", updated["title"])

	// replacement is whole-record: the views field is gone
	var post map[string]interface{}
	_, err = c.RawGet("/posts/1", &post)
	assert.NoError(t, err)
	_, hasViews := post["views"]
	assert.False(t, hasViews)
}

func TestPutPathIDWinsOverBodyID(t *testing.T) {
	c := testClient(t, blogDocument)
	var updated map[string]interface{}
	_, err := c.RawPut("/posts/1", map[string]interface{}{"id": 77, "title": "x"}, &updated)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), updated["id"])
}

func TestPutUnknownIDCreates(t *testing.T) {
	c := testClient(t, blogDocument)
	var created map[string]interface{}
	status, err := c.RawPut("/posts/42", map[string]interface{}{"title": "upserted"}, &created)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	// the fresh record gets the next free id, not the path id
	assert.Equal(t, float64(4), created["id"])
}

func TestPutWithoutID(t *testing.T) {
	c := testClient(t, blogDocument)
	status, _ := c.RawPut("/posts", map[string]interface{}{"title": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPutEmptyBody(t *testing.T) {
	c := testClient(t, blogDocument)
	status, _ := c.RawPut("/posts/1", []byte{}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPutNestedKeepsForeignKey(t *testing.T) {
	c := testClient(t, blogDocument)
	var raw []byte
	status, err := c.RawPut("/posts/1/comments/2", map[string]interface{}{"comment": "edited"}, &raw)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	var comments []map[string]interface{}
	_, err = c.RawGet("/posts/1/comments", &comments)
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestPutNestedUnknownParent(t *testing.T) {
	c := testClient(t, blogDocument)
	status, _ := c.RawPut("/posts/42/comments/1", map[string]interface{}{"comment": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPutResponseEmbedsParent(t *testing.T) {
	c := testClient(t, blogDocument)
	var updated map[string]interface{}
	_, err := c.RawPut("/comments/1", map[string]interface{}{"post_id": 2, "comment": "moved"}, &updated)
	assert.NoError(t, err)

	post, ok := updated["post"].(map[string]interface{})
	if !ok {
		t.Fatalf("parent not embedded: %v", updated)
	}
	assert.Equal(t, "second post", post["title"])
}
