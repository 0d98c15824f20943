package server

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsonbase-dev/jsonbase/core/client"
)

func writeRoutesFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "routes.json")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStaticRouteAnswersDirectly(t *testing.T) {
	path := writeRoutesFile(t, t.TempDir(), `[
        {
            "method": "GET",
            "path": "/status",
            "response": {
                "statusCode": 200,
                "body": {"status": "ok"}
            }
        }
    ]`)
	static, err := NewStaticRoutes(path)
	assert.NoError(t, err)

	_, srv := newTestServer(t, blogDocument)
	srv.Use(static)
	c := client.NewWithHandler(srv)

	var body map[string]interface{}
	status, err := c.RawGet("/status", &body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestStaticRouteStatusCodeAndHeaders(t *testing.T) {
	path := writeRoutesFile(t, t.TempDir(), `[
        {
            "method": "POST",
            "path": "/teapot",
            "response": {
                "statusCode": 418,
                "body": "short and stout",
                "headers": {"X-Kind": "teapot"}
            }
        }
    ]`)
	static, err := NewStaticRoutes(path)
	assert.NoError(t, err)

	_, srv := newTestServer(t, blogDocument)
	srv.Use(static)

	r, _ := http.NewRequest(http.MethodPost, "/teapot", nil)
	resp := srv.Handle(r)
	assert.Equal(t, 418, resp.StatusCode)
	assert.Equal(t, "teapot", resp.Header.Get("X-Kind"))
	assert.Equal(t, `"short and stout"`, string(resp.Body))
}

func TestStaticRouteBodyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "payload.json"), []byte(`{"from": "file"}`), 0666); err != nil {
		t.Fatal(err)
	}
	path := writeRoutesFile(t, dir, `[
        {
            "method": "GET",
            "path": "/payload",
            "response": {
                "body-file": "payload.json"
            }
        }
    ]`)
	static, err := NewStaticRoutes(path)
	assert.NoError(t, err)

	_, srv := newTestServer(t, blogDocument)
	srv.Use(static)
	c := client.NewWithHandler(srv)

	var body map[string]interface{}
	status, err := c.RawGet("/payload", &body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "file", body["from"])
}

func TestStaticRouteMissPassesThrough(t *testing.T) {
	path := writeRoutesFile(t, t.TempDir(), `[
        {
            "method": "GET",
            "path": "/status",
            "response": {"body": "ok"}
        }
    ]`)
	static, err := NewStaticRoutes(path)
	assert.NoError(t, err)

	_, srv := newTestServer(t, blogDocument)
	srv.Use(static)
	c := client.NewWithHandler(srv)

	// a different method on the declared path falls through
	status, _ := c.RawDelete("/status")
	assert.Equal(t, http.StatusNotFound, status)

	// undeclared paths still reach the collections
	var posts []map[string]interface{}
	status, err = c.RawGet("/posts", &posts)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, posts, 3)
}

func TestStaticRoutesRejectInvalidFile(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not an array", `{"method": "GET"}`},
		{"missing response", `[{"method": "GET", "path": "/x"}]`},
		{"bad method", `[{"method": "YOLO", "path": "/x", "response": {}}]`},
		{"relative path", `[{"method": "GET", "path": "x", "response": {}}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeRoutesFile(t, t.TempDir(), tc.content)
			_, err := NewStaticRoutes(path)
			assert.Error(t, err)
		})
	}
}

func TestStaticRoutesMissingFile(t *testing.T) {
	_, err := NewStaticRoutes(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
