package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Scaffolding commands",
		Long: `Generate the files jsonbase serves from.

Available generators:
  database - Create or extend a database file with empty collections
  resource - Fill a collection with fake records
  static   - Add an entry to a static routes file

Examples:
  jsonbase generate database posts comments --embed "posts[comments]"
  jsonbase generate resource posts --num 10 --fields "title=sentence;views=number.1.500"
  jsonbase generate static --path /status --method GET --body '{"ok":true}'`,
	}
	cmd.AddCommand(generateDatabaseCmd())
	cmd.AddCommand(generateResourceCmd())
	cmd.AddCommand(generateStaticCmd())
	return cmd
}

var embedSegment = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]*)\]$`)

// parseEmbed parses an embedding declaration of the form
// "posts[comments,likes];albums[photos]" into the parent to children map.
func parseEmbed(spec string) (map[string][]string, error) {
	embed := map[string][]string{}
	if spec == "" {
		return embed, nil
	}
	for _, segment := range strings.Split(spec, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		m := embedSegment.FindStringSubmatch(segment)
		if m == nil {
			return nil, fmt.Errorf("bad embed segment %q, want parent[child1,child2]", segment)
		}
		parent := strings.TrimSpace(m[1])
		var children []string
		for _, child := range strings.Split(m[2], ",") {
			child = strings.TrimSpace(child)
			if child != "" {
				children = append(children, child)
			}
		}
		if len(children) == 0 {
			return nil, fmt.Errorf("embed segment %q declares no children", segment)
		}
		embed[parent] = children
	}
	return embed, nil
}

// fieldSpec is one parsed field declaration: a field name, a generator
// key and the generator's arguments.
type fieldSpec struct {
	name      string
	generator string
	args      []string
}

// parseFields parses a field declaration of the form
// "title=sentence;views=number.1.500" into ordered field specs.
func parseFields(spec string) ([]fieldSpec, error) {
	var fields []fieldSpec
	for _, segment := range strings.Split(spec, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, generator, ok := strings.Cut(segment, "=")
		if !ok || name == "" || generator == "" {
			return nil, fmt.Errorf("bad field spec %q, want name=generator", segment)
		}
		parts := strings.Split(generator, ".")
		field := fieldSpec{
			name:      strings.TrimSpace(name),
			generator: parts[0],
		}
		if len(parts) > 1 {
			field.args = parts[1:]
		}
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields in spec %q", spec)
	}
	return fields, nil
}

// parseHeaders parses a header declaration of the form
// "Content-Type:text/plain,X-Kind:demo".
func parseHeaders(spec string) (map[string]string, error) {
	headers := map[string]string{}
	if spec == "" {
		return headers, nil
	}
	for _, segment := range strings.Split(spec, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, ok := strings.Cut(segment, ":")
		if !ok || key == "" {
			return nil, fmt.Errorf("bad header %q, want key:value", segment)
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers, nil
}
