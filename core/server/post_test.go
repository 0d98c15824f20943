package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostCreatesRecord(t *testing.T) {
	c := testClient(t, blogDocument)
	var created map[string]interface{}
	status, err := c.RawPost("/posts", map[string]interface{}{"title": "fresh"}, &created)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(4), created["id"])
	assert.Equal(t, "fresh", created["title"])

	var post map[string]interface{}
	status, err = c.RawGet("/posts/4", &post)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "fresh", post["title"])
}

func TestPostDiscardsBodyID(t *testing.T) {
	c := testClient(t, blogDocument)
	var created map[string]interface{}
	_, err := c.RawPost("/posts", map[string]interface{}{"id": 99, "title": "sneaky"}, &created)
	assert.NoError(t, err)
	assert.Equal(t, float64(4), created["id"])
}

func TestPostEmptyBody(t *testing.T) {
	c := testClient(t, blogDocument)
	var raw []byte
	status, _ := c.RawPost("/posts", []byte{}, &raw)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPostMalformedBody(t *testing.T) {
	c := testClient(t, blogDocument)
	status, _ := c.RawPost("/posts", []byte("{not json"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPostArrayBody(t *testing.T) {
	c := testClient(t, blogDocument)
	status, _ := c.RawPost("/posts", []byte("[1, 2, 3]"), nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPostUnknownCollection(t *testing.T) {
	c := testClient(t, blogDocument)
	status, _ := c.RawPost("/unicorns", map[string]interface{}{"title": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostNestedStampsForeignKey(t *testing.T) {
	c := testClient(t, blogDocument)
	var created map[string]interface{}
	status, err := c.RawPost("/posts/2/comments", map[string]interface{}{"comment": "nested"}, &created)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(2), created["post_id"])

	var comments []map[string]interface{}
	_, err = c.RawGet("/posts/2/comments", &comments)
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestPostNestedUnknownParent(t *testing.T) {
	c := testClient(t, blogDocument)
	status, _ := c.RawPost("/posts/42/comments", map[string]interface{}{"comment": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostResponseIsNotEmbedded(t *testing.T) {
	// the creation response returns the record as stored, with the raw
	// foreign key instead of an embedded parent
	c := testClient(t, blogDocument)
	var created map[string]interface{}
	_, err := c.RawPost("/comments", map[string]interface{}{"post_id": 1, "comment": "plain"}, &created)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), created["post_id"])
	_, embedded := created["post"]
	assert.False(t, embedded)
}
