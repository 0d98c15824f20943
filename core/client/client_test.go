package client

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"
)

// echoHandler answers with a fixed status and replays selected request
// headers so tests can observe what the client sent.
type echoHandler struct {
	status int
	body   string
}

func (h echoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Echo-Authorization", r.Header.Get("Authorization"))
	w.Header().Set("X-Echo-Custom", r.Header.Get("X-Custom"))
	w.WriteHeader(h.status)
	w.Write([]byte(h.body))
}

func TestRawGetDecodesResult(t *testing.T) {
	c := NewWithHandler(echoHandler{status: http.StatusOK, body: `{"id": 1, "title": "hello"}`})

	var result map[string]interface{}
	status, err := c.RawGet("/posts/1", &result)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusOK {
		t.Fatal("unexpected status:", status)
	}
	if result["title"] != "hello" {
		t.Fatal("unexpected result:", result)
	}
}

func TestRawGetRawBytes(t *testing.T) {
	c := NewWithHandler(echoHandler{status: http.StatusOK, body: `[1,2,3]`})

	var raw []byte
	if _, err := c.RawGet("/numbers", &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw) != "[1,2,3]" {
		t.Fatal("unexpected raw body:", string(raw))
	}
}

func TestRawGetFlagsUnexpectedStatus(t *testing.T) {
	c := NewWithHandler(echoHandler{status: http.StatusNotFound, body: `{"statusCode":404,"message":"Not Found"}`})

	status, err := c.RawGet("/posts/99", nil)
	if err == nil {
		t.Fatal("expected an error for status 404")
	}
	if status != http.StatusNotFound {
		t.Fatal("unexpected status:", status)
	}
	if !strings.Contains(err.Error(), "Not Found") {
		t.Fatal("error does not carry the response body:", err)
	}
}

func TestRawPostExpectsCreated(t *testing.T) {
	c := NewWithHandler(echoHandler{status: http.StatusCreated, body: `{"id": 4}`})
	var result map[string]interface{}
	status, err := c.RawPost("/posts", map[string]interface{}{"title": "x"}, &result)
	if err != nil {
		t.Fatal(err)
	}
	if status != http.StatusCreated || result["id"] != float64(4) {
		t.Fatalf("unexpected response: %d %v", status, result)
	}
}

func TestRawDeleteExpectsNoContent(t *testing.T) {
	c := NewWithHandler(echoHandler{status: http.StatusNoContent})
	if _, err := c.RawDelete("/posts/1"); err != nil {
		t.Fatal(err)
	}

	c = NewWithHandler(echoHandler{status: http.StatusOK})
	if _, err := c.RawDelete("/posts/1"); err == nil {
		t.Fatal("expected an error for status 200")
	}
}

func TestWithHeaderDoesNotLeakBetweenClients(t *testing.T) {
	base := NewWithHandler(echoHandler{status: http.StatusOK, body: `{}`})
	derived := base.WithHeader("X-Custom", "yes")

	var raw []byte
	_, header, err := base.RawGetWithHeader("/", nil, &raw)
	if err != nil {
		t.Fatal(err)
	}
	if header.Get("X-Echo-Custom") != "" {
		t.Fatal("header leaked to the base client")
	}

	_, header, err = derived.RawGetWithHeader("/", nil, &raw)
	if err != nil {
		t.Fatal(err)
	}
	if header.Get("X-Echo-Custom") != "yes" {
		t.Fatal("derived client did not send its header")
	}
}

func TestWithBasicAuthSendsCredentials(t *testing.T) {
	c := NewWithHandler(echoHandler{status: http.StatusOK, body: `{}`}).
		WithBasicAuth("admin", "secret")

	var raw []byte
	_, header, err := c.RawGetWithHeader("/", nil, &raw)
	if err != nil {
		t.Fatal(err)
	}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret"))
	if got := header.Get("X-Echo-Authorization"); got != want {
		t.Fatalf("authorization header = %q, want %q", got, want)
	}
}
