// Package fake provides named fake-data generators for the scaffolding
// commands. Generators are looked up by key, e.g. "name" or "number",
// and may take string arguments, e.g. number.1.100.
package fake

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
)

// ErrNotFoundGenerator is returned when no generator is registered under
// the requested key.
var ErrNotFoundGenerator = errors.New("unknown generator")

// Generator produces one fake value. Arguments come from the field spec,
// already split on the dots.
type Generator func(args ...string) (interface{}, error)

// Registry maps generator keys to generators.
type Registry struct {
	generators map[string]Generator
}

// NewRegistry returns a registry preloaded with the built-in generators.
func NewRegistry() *Registry {
	r := &Registry{generators: map[string]Generator{}}

	r.Register("name", func(args ...string) (interface{}, error) {
		return gofakeit.Name(), nil
	})
	r.Register("firstName", func(args ...string) (interface{}, error) {
		return gofakeit.FirstName(), nil
	})
	r.Register("lastName", func(args ...string) (interface{}, error) {
		return gofakeit.LastName(), nil
	})
	r.Register("email", func(args ...string) (interface{}, error) {
		return gofakeit.Email(), nil
	})
	r.Register("username", func(args ...string) (interface{}, error) {
		return gofakeit.Username(), nil
	})
	r.Register("phone", func(args ...string) (interface{}, error) {
		return gofakeit.Phone(), nil
	})
	r.Register("company", func(args ...string) (interface{}, error) {
		return gofakeit.Company(), nil
	})
	r.Register("city", func(args ...string) (interface{}, error) {
		return gofakeit.City(), nil
	})
	r.Register("country", func(args ...string) (interface{}, error) {
		return gofakeit.Country(), nil
	})
	r.Register("url", func(args ...string) (interface{}, error) {
		return gofakeit.URL(), nil
	})
	r.Register("uuid", func(args ...string) (interface{}, error) {
		return gofakeit.UUID(), nil
	})
	r.Register("word", func(args ...string) (interface{}, error) {
		return gofakeit.Word(), nil
	})
	r.Register("sentence", func(args ...string) (interface{}, error) {
		words := 8
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("sentence: bad word count %q", args[0])
			}
			words = n
		}
		return gofakeit.Sentence(words), nil
	})
	r.Register("paragraph", func(args ...string) (interface{}, error) {
		sentences := 3
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("paragraph: bad sentence count %q", args[0])
			}
			sentences = n
		}
		return gofakeit.Paragraph(1, sentences, 10, " "), nil
	})
	r.Register("number", func(args ...string) (interface{}, error) {
		min, max := 1, 1000
		var err error
		if len(args) > 0 {
			if min, err = strconv.Atoi(args[0]); err != nil {
				return nil, fmt.Errorf("number: bad minimum %q", args[0])
			}
		}
		if len(args) > 1 {
			if max, err = strconv.Atoi(args[1]); err != nil {
				return nil, fmt.Errorf("number: bad maximum %q", args[1])
			}
		}
		if max < min {
			return nil, fmt.Errorf("number: maximum %d below minimum %d", max, min)
		}
		return gofakeit.Number(min, max), nil
	})
	r.Register("bool", func(args ...string) (interface{}, error) {
		return gofakeit.Bool(), nil
	})
	r.Register("date", func(args ...string) (interface{}, error) {
		format := "2006-01-02"
		if len(args) > 0 {
			format = args[0]
		}
		return gofakeit.Date().Format(format), nil
	})

	return r
}

// Register adds or replaces a generator under the given key.
func (r *Registry) Register(key string, g Generator) {
	r.generators[key] = g
}

// Names returns the registered generator keys in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for key := range r.generators {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}

// Generate runs the generator registered under key. It fails wrapping
// ErrNotFoundGenerator for an unknown key.
func (r *Registry) Generate(key string, args ...string) (interface{}, error) {
	g, ok := r.generators[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, ErrNotFoundGenerator)
	}
	return g(args...)
}
