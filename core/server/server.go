package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/jsonbase-dev/jsonbase/core/jdb"
	"github.com/jsonbase-dev/jsonbase/core/logger"
)

var (
	// ErrEmptyBody is returned when a POST or PUT body is missing or not
	// valid JSON.
	ErrEmptyBody = errors.New("empty body")

	// ErrMethodNotAllowed is returned for verbs outside GET, POST, PUT
	// and DELETE.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Response is the materialized outcome of one request. Middlewares and
// method handlers fill it in; the server writes it out at the end.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// NewResponse returns a response template with the default headers:
// JSON content type and permissive CORS.
func NewResponse() *Response {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
	header.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
	return &Response{StatusCode: http.StatusOK, Header: header}
}

// Server dispatches REST requests against the collections of a database.
// It implements http.Handler. Requests are processed one at a time; the
// document never sees overlapping in-process mutation.
type Server struct {
	db          *jdb.Database
	mu          sync.Mutex
	middlewares []Middleware
	methods     map[string]Method
}

// New creates a server for the given database.
func New(db *jdb.Database) *Server {
	return &Server{
		db: db,
		methods: map[string]Method{
			http.MethodGet:    &Get{db: db},
			http.MethodPost:   &Post{db: db},
			http.MethodPut:    &Put{db: db},
			http.MethodDelete: &Delete{db: db},
		},
	}
}

// Use registers a middleware. The most recently added middleware runs
// first.
func (s *Server) Use(m Middleware) *Server {
	s.middlewares = append(s.middlewares, m)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := s.Handle(r)
	for key, values := range resp.Header {
		// replace, not append: the router may have stamped the same
		// CORS headers already
		w.Header()[key] = values
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		w.Write(resp.Body)
	}
	logger.FromContext(r.Context()).Debugln("handled", r.Method, r.URL.Path, "->", resp.StatusCode)
}

// Handle runs the middleware chain around the dispatcher and returns the
// resulting response.
func (s *Server) Handle(r *http.Request) *Response {
	next := Handler(s.process)
	for _, m := range s.middlewares {
		m, inner := m, next
		next = func(r *http.Request) *Response {
			return m.Process(r, inner)
		}
	}
	return next(r)
}

// process is the terminal handler behind the middleware chain: it parses
// the request path, picks the method handler for the verb and converts
// domain errors into the error envelope. The mutex serializes all
// document access; the file lock only guards against other processes.
func (s *Server) process(r *http.Request) *Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := NewResponse()
	rlog := logger.FromContext(r.Context())

	current := ParsePath(r.URL.Path)
	method, ok := s.methods[strings.ToUpper(r.Method)]
	if !ok {
		return errorResponse(resp, ErrMethodNotAllowed, rlog)
	}
	if current == nil {
		return errorResponse(resp, jdb.ErrNotFound, rlog)
	}

	resp, err := method.Execute(r, resp, current)
	if err != nil {
		return errorResponse(NewResponse(), err, rlog)
	}
	return resp
}

func errorResponse(resp *Response, err error, rlog *logrus.Entry) *Response {
	status := http.StatusInternalServerError
	message := "Internal Server Error"
	switch {
	case errors.Is(err, jdb.ErrNotFound):
		status, message = http.StatusNotFound, "Not Found"
	case errors.Is(err, ErrEmptyBody):
		status, message = http.StatusBadRequest, "Empty Body"
	case errors.Is(err, ErrMethodNotAllowed):
		status, message = http.StatusMethodNotAllowed, "Method Not Allowed"
	default:
		rlog.WithError(err).Error("request failed")
	}
	resp.StatusCode = status
	resp.Body = ErrorBody(status, message)
	return resp
}

// ErrorBody encodes the standard error envelope.
func ErrorBody(statusCode int, message string) []byte {
	body, _ := json.Marshal(struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
	}{statusCode, message})
	return body
}
