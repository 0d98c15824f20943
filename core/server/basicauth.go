package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jsonbase-dev/jsonbase/core/schema"
)

// credentialsSchema validates a basic-auth credentials file.
const credentialsSchema = `{
    "$id": "jsonbase/basic-auth",
    "type": "object",
    "properties": {
        "user": {"type": "string", "minLength": 1},
        "password": {"type": "string", "minLength": 1},
        "ignore": {
            "type": "array",
            "items": {"type": "string"}
        }
    },
    "required": ["user", "password"],
    "additionalProperties": false
}`

// BasicAuth is a middleware gating requests behind HTTP basic
// authentication. Paths matching one of the ignore patterns pass through
// unauthenticated.
type BasicAuth struct {
	user     string
	password string
	ignore   []*regexp.Regexp
}

// NewBasicAuth creates the middleware for a single credential pair. The
// ignore patterns are path patterns where a "*" matches anything, such
// as "/status" or "/public/*".
func NewBasicAuth(user, password string, ignore ...string) (*BasicAuth, error) {
	b := &BasicAuth{user: user, password: password}
	for _, pattern := range ignore {
		var expr strings.Builder
		for i, literal := range strings.Split(pattern, "*") {
			if i > 0 {
				expr.WriteString(".*")
			}
			expr.WriteString(regexp.QuoteMeta(literal))
		}
		compiled, err := regexp.Compile(expr.String())
		if err != nil {
			return nil, err
		}
		b.ignore = append(b.ignore, compiled)
	}
	return b, nil
}

// NewBasicAuthFromFile loads and validates a credentials file of the form
//
//	{"user": "admin", "password": "secret", "ignore": ["/status"]}
func NewBasicAuthFromFile(path string) (*BasicAuth, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read credentials file %s: %w", path, err)
	}
	validator, err := schema.NewValidator(credentialsSchema)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateBytes(content, "jsonbase/basic-auth"); err != nil {
		return nil, fmt.Errorf("invalid credentials file %s: %w", path, err)
	}

	var credentials struct {
		User     string   `json:"user"`
		Password string   `json:"password"`
		Ignore   []string `json:"ignore"`
	}
	if err := json.Unmarshal(content, &credentials); err != nil {
		return nil, fmt.Errorf("cannot parse credentials file %s: %w", path, err)
	}
	return NewBasicAuth(credentials.User, credentials.Password, credentials.Ignore...)
}

// Process implements Middleware.
func (b *BasicAuth) Process(r *http.Request, next Handler) *Response {
	for _, pattern := range b.ignore {
		if pattern.MatchString(r.URL.Path) {
			return next(r)
		}
	}

	user, password, ok := r.BasicAuth()
	if ok {
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(b.user)) == 1
		passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(b.password)) == 1
		if userMatch && passwordMatch {
			return next(r)
		}
	}

	resp := NewResponse()
	resp.StatusCode = http.StatusUnauthorized
	resp.Header.Set("WWW-Authenticate", `Basic realm="Restricted"`)
	resp.Body = ErrorBody(http.StatusUnauthorized, "Unauthorized")
	return resp
}
