package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jsonbase-dev/jsonbase/core/schema"
)

// routesSchema validates a static routes file: a list of route objects,
// each with a method, a path and a response description.
const routesSchema = `{
    "$id": "jsonbase/static-routes",
    "type": "array",
    "items": {
        "type": "object",
        "properties": {
            "method": {"type": "string", "enum": ["GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"]},
            "path": {"type": "string", "pattern": "^/"},
            "response": {
                "type": "object",
                "properties": {
                    "statusCode": {"type": "integer", "minimum": 100, "maximum": 599},
                    "body": {},
                    "body-file": {"type": "string"},
                    "headers": {
                        "type": "object",
                        "additionalProperties": {"type": "string"}
                    }
                },
                "additionalProperties": false
            }
        },
        "required": ["method", "path", "response"],
        "additionalProperties": false
    }
}`

// StaticRoute is one pre-recorded response for a fixed method and path.
// Either Body or BodyFile carries the payload; BodyFile is read at
// request time, relative to the routes file.
type StaticRoute struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Response struct {
		StatusCode int               `json:"statusCode,omitempty"`
		Body       interface{}       `json:"body,omitempty"`
		BodyFile   string            `json:"body-file,omitempty"`
		Headers    map[string]string `json:"headers,omitempty"`
	} `json:"response"`
}

// StaticRoutes is a middleware answering pre-recorded responses for the
// routes declared in a JSON file. Requests not matching any declared
// route pass through to the rest of the chain.
type StaticRoutes struct {
	dir    string
	routes map[string]map[string]StaticRoute
}

// NewStaticRoutes loads and validates a routes file.
func NewStaticRoutes(path string) (*StaticRoutes, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read routes file %s: %w", path, err)
	}
	validator, err := schema.NewValidator(routesSchema)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateBytes(content, "jsonbase/static-routes"); err != nil {
		return nil, fmt.Errorf("invalid routes file %s: %w", path, err)
	}

	var declared []StaticRoute
	if err := json.Unmarshal(content, &declared); err != nil {
		return nil, fmt.Errorf("cannot parse routes file %s: %w", path, err)
	}

	s := &StaticRoutes{
		dir:    filepath.Dir(path),
		routes: map[string]map[string]StaticRoute{},
	}
	for _, route := range declared {
		method := strings.ToUpper(route.Method)
		if s.routes[method] == nil {
			s.routes[method] = map[string]StaticRoute{}
		}
		s.routes[method][normalizePath(route.Path)] = route
	}
	return s, nil
}

// Process implements Middleware.
func (s *StaticRoutes) Process(r *http.Request, next Handler) *Response {
	route, ok := s.routes[strings.ToUpper(r.Method)][normalizePath(r.URL.Path)]
	if !ok {
		return next(r)
	}

	resp := NewResponse()
	if route.Response.StatusCode != 0 {
		resp.StatusCode = route.Response.StatusCode
	}
	for key, value := range route.Response.Headers {
		resp.Header.Set(key, value)
	}

	switch {
	case route.Response.BodyFile != "":
		content, err := os.ReadFile(filepath.Join(s.dir, route.Response.BodyFile))
		if err != nil {
			resp.StatusCode = http.StatusInternalServerError
			resp.Body = ErrorBody(http.StatusInternalServerError, "Internal Server Error")
			return resp
		}
		resp.Body = content
	case route.Response.Body != nil:
		body, err := json.Marshal(route.Response.Body)
		if err != nil {
			resp.StatusCode = http.StatusInternalServerError
			resp.Body = ErrorBody(http.StatusInternalServerError, "Internal Server Error")
			return resp
		}
		resp.Body = body
	}
	return resp
}

// normalizePath strips the trailing slash so /status and /status/ match
// the same route.
func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
