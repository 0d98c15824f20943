/*
Package client provides easy and fast in-process access to the REST api

Instead of marshalling HTTP, the client can talk directly to an
http.Handler through recorded requests. That makes it the tool of choice
for unit tests. Pointed at a URL it talks to a running server instead.
*/
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Client provides easy access to the REST API.
type Client struct {
	handler    http.Handler
	httpClient *http.Client
	url        string
	ctx        context.Context

	defaultHeaders map[string]string
}

// NewWithHandler creates a client making pseudo-REST requests directly
// against the handler, without a network round trip.
//
// WithContext() specifies a different base context.
func NewWithHandler(handler http.Handler) Client {
	return Client{
		handler:        handler,
		defaultHeaders: map[string]string{},
	}
}

// NewWithURL creates a client making REST requests to a running server.
func NewWithURL(url string) Client {
	return Client{
		url:            url,
		httpClient:     &http.Client{Timeout: 20 * time.Second},
		defaultHeaders: map[string]string{},
	}
}

// WithHeader returns a new client with a default header added
func (c Client) WithHeader(key string, value string) Client {
	headers := map[string]string{key: value}
	for k, v := range c.defaultHeaders {
		headers[k] = v
	}
	c.defaultHeaders = headers
	return c
}

// WithBasicAuth returns a new client authenticating every request with
// the given credentials.
func (c Client) WithBasicAuth(user, password string) Client {
	credentials := base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
	return c.WithHeader("Authorization", "Basic "+credentials)
}

// WithContext returns a new client with specific request context
func (c Client) WithContext(ctx context.Context) Client {
	c.ctx = ctx
	return c
}

func (c Client) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c Client) do(r *http.Request) (status int, header http.Header, body []byte, err error) {
	for key, value := range c.defaultHeaders {
		r.Header.Add(key, value)
	}
	if c.handler != nil {
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, r)
		res := rec.Result()
		return res.StatusCode, res.Header, rec.Body.Bytes(), nil
	}
	res, err := c.httpClient.Do(r)
	if err != nil {
		return http.StatusInternalServerError, nil, nil, err
	}
	defer res.Body.Close()
	body, _ = io.ReadAll(res.Body)
	return res.StatusCode, res.Header, body, nil
}

func decodeResult(body []byte, result interface{}) error {
	if len(body) == 0 || result == nil {
		return nil
	}
	if raw, ok := result.(*[]byte); ok {
		*raw = body
		return nil
	}
	return json.Unmarshal(body, result)
}

// RawGet gets the resource from path. Expects http.StatusOK as response,
// otherwise it will flag an error. Returns the actual http status code.
//
// The path can be extended with query strings.
//
// result can be map[string]interface{} or a raw *[]byte.
// result can be nil.
func (c Client) RawGet(path string, result interface{}) (int, error) {
	status, _, err := c.RawGetWithHeader(path, nil, result)
	return status, err
}

// RawGetWithHeader gets the resource from path like RawGet, with extra
// request headers, and additionally returns the response header.
func (c Client) RawGetWithHeader(path string, header map[string]string, result interface{}) (int, http.Header, error) {
	r, _ := http.NewRequestWithContext(c.Context(), http.MethodGet, c.url+path, nil)
	for key, value := range header {
		r.Header.Add(key, value)
	}
	status, resHeader, body, err := c.do(r)
	if err != nil {
		return status, resHeader, err
	}
	if status == http.StatusNoContent {
		return status, resHeader, nil
	}
	if status != http.StatusOK {
		return status, resHeader, fmt.Errorf("handler returned wrong status code: got %v want %v. Error: %s",
			status, http.StatusOK, strings.TrimSpace(string(body)))
	}
	return status, resHeader, decodeResult(body, result)
}

// RawPost posts a resource to path. Expects http.StatusCreated as
// response, otherwise it will flag an error. Returns the actual http
// status code.
//
// body can also be a []byte, result can also be raw *[]byte.
// result can be nil.
func (c Client) RawPost(path string, body interface{}, result interface{}) (int, error) {
	j, ok := body.([]byte)
	if !ok {
		var err error
		j, err = json.Marshal(body)
		if err != nil {
			return http.StatusBadRequest, fmt.Errorf("POST to %s: %w", path, err)
		}
	}
	r, _ := http.NewRequestWithContext(c.Context(), http.MethodPost, c.url+path, bytes.NewBuffer(j))
	status, _, resBody, err := c.do(r)
	if err != nil {
		return status, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return status, fmt.Errorf("handler returned wrong status code: got %v want %v. Error: %s",
			status, http.StatusCreated, strings.TrimSpace(string(resBody)))
	}
	return status, decodeResult(resBody, result)
}

// RawPut puts a resource to path. Expects http.StatusOK, http.StatusCreated
// or http.StatusNoContent as valid responses, otherwise it will flag an
// error. Returns the actual http status code.
//
// body can also be a []byte, result can also be raw *[]byte.
// result can be nil.
func (c Client) RawPut(path string, body interface{}, result interface{}) (int, error) {
	j, ok := body.([]byte)
	if !ok {
		var err error
		j, err = json.Marshal(body)
		if err != nil {
			return http.StatusBadRequest, fmt.Errorf("PUT to %s: %w", path, err)
		}
	}
	r, _ := http.NewRequestWithContext(c.Context(), http.MethodPut, c.url+path, bytes.NewBuffer(j))
	status, _, resBody, err := c.do(r)
	if err != nil {
		return status, err
	}
	if status != http.StatusOK && status != http.StatusCreated && status != http.StatusNoContent {
		return status, fmt.Errorf("put got status=%d body=%s", status, strings.TrimSpace(string(resBody)))
	}
	return status, decodeResult(resBody, result)
}

// RawDelete deletes the resource at path. Expects http.StatusNoContent as
// response, otherwise it will flag an error.
//
// Returns the actual http status code.
func (c Client) RawDelete(path string) (int, error) {
	r, _ := http.NewRequestWithContext(c.Context(), http.MethodDelete, c.url+path, nil)
	status, _, resBody, err := c.do(r)
	if err != nil {
		return status, err
	}
	if status != http.StatusNoContent {
		return status, errors.New(strings.TrimSpace(string(resBody)))
	}
	return status, nil
}
