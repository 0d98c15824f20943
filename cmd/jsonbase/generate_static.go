package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jsonbase-dev/jsonbase/core/server"
)

func generateStaticCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "static",
		Short: "Add an entry to a static routes file",
		Long: `Add or replace one pre-recorded response in a static routes file.
An existing entry with the same method and path is replaced. Missing
path or method are asked interactively.

The body can be inline JSON or, with --body-file, loaded at request
time from a file next to the routes file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, _ := cmd.Flags().GetString("filename")
			path, _ := cmd.Flags().GetString("path")
			method, _ := cmd.Flags().GetString("method")
			body, _ := cmd.Flags().GetString("body")
			bodyFile, _ := cmd.Flags().GetString("body-file")
			status, _ := cmd.Flags().GetInt("status")
			headersSpec, _ := cmd.Flags().GetString("headers")

			headers, err := parseHeaders(headersSpec)
			if err != nil {
				return err
			}
			if body != "" && bodyFile != "" {
				return fmt.Errorf("--body and --body-file are mutually exclusive")
			}

			if path == "" {
				prompt := &survey.Input{Message: "Route path (e.g. /status):"}
				if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
			}
			if !strings.HasPrefix(path, "/") {
				return fmt.Errorf("path %q must start with /", path)
			}
			if method == "" {
				sel := &survey.Select{
					Message: "HTTP method:",
					Options: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
					Default: "GET",
				}
				if err := survey.AskOne(sel, &method); err != nil {
					return err
				}
			}
			method = strings.ToUpper(method)

			var routes []server.StaticRoute
			if content, err := os.ReadFile(filename); err == nil {
				if err := json.Unmarshal(content, &routes); err != nil {
					return fmt.Errorf("cannot parse routes file %s: %w", filename, err)
				}
			} else if !os.IsNotExist(err) {
				return err
			}

			route := server.StaticRoute{Method: method, Path: path}
			route.Response.StatusCode = status
			route.Response.BodyFile = bodyFile
			if len(headers) > 0 {
				route.Response.Headers = headers
			}
			if body != "" {
				// inline JSON is stored structured, anything else as a string
				var decoded interface{}
				if err := json.Unmarshal([]byte(body), &decoded); err == nil {
					route.Response.Body = decoded
				} else {
					route.Response.Body = body
				}
			}

			replaced := false
			for i, existing := range routes {
				if strings.ToUpper(existing.Method) == method && existing.Path == path {
					routes[i] = route
					replaced = true
					break
				}
			}
			if !replaced {
				routes = append(routes, route)
			}

			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "    ")
			if err := enc.Encode(routes); err != nil {
				return err
			}
			if err := os.WriteFile(filename, buf.Bytes(), 0666); err != nil {
				return err
			}

			verb := "added"
			if replaced {
				verb = "replaced"
			}
			color.New(color.FgGreen, color.Bold).
				Printf("✓ %s %s %s in %s\n", verb, method, path, filename)
			return nil
		},
	}
	cmd.Flags().StringP("filename", "f", "routes.json", "static routes file")
	cmd.Flags().String("path", "", "route path, e.g. /status")
	cmd.Flags().String("method", "", "HTTP method")
	cmd.Flags().String("body", "", "inline response body")
	cmd.Flags().String("body-file", "", "response body file, relative to the routes file")
	cmd.Flags().Int("status", 200, "response status code")
	cmd.Flags().String("headers", "", "response headers, e.g. \"Content-Type:text/plain,X-Kind:demo\"")
	return cmd
}
