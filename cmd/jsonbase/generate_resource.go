package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jsonbase-dev/jsonbase/core/fake"
	"github.com/jsonbase-dev/jsonbase/core/jdb"
)

func generateResourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource <name>",
		Short: "Fill a collection with fake records",
		Long: `Append fake records to a collection, creating the collection first if
the database does not have it yet.

Fields are declared as name=generator, with generator arguments
separated by dots:
  --fields "title=sentence;views=number.1.500;author=name"

The special generator "id" is implicit: every record gets the next
auto-increment id. Without --fields the command asks interactively.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			filename, _ := cmd.Flags().GetString("filename")
			num, _ := cmd.Flags().GetInt("num")
			fieldsSpec, _ := cmd.Flags().GetString("fields")

			registry := fake.NewRegistry()
			var fields []fieldSpec
			var err error
			if fieldsSpec != "" {
				if fields, err = parseFields(fieldsSpec); err != nil {
					return err
				}
			} else {
				if fields, err = promptFields(registry); err != nil {
					return err
				}
			}

			db, err := jdb.OpenOrCreate(filename)
			if err != nil {
				return err
			}
			defer db.Close()

			if !db.Has(name) {
				if err := db.Save(name, []jdb.Record{}); err != nil {
					return err
				}
			}
			repo, err := db.From(name)
			if err != nil {
				return err
			}

			for i := 0; i < num; i++ {
				record := jdb.NewRecord()
				for _, field := range fields {
					if field.generator == "id" {
						continue
					}
					value, err := registry.Generate(field.generator, field.args...)
					if err != nil {
						return err
					}
					record.Set(field.name, value)
				}
				if _, err := repo.Save(record); err != nil {
					return err
				}
			}

			color.New(color.FgGreen, color.Bold).
				Printf("✓ added %d records to %s in %s\n", num, name, filename)
			return nil
		},
	}
	cmd.Flags().StringP("filename", "f", "database.json", "database file")
	cmd.Flags().IntP("num", "n", 1, "number of records to generate")
	cmd.Flags().String("fields", "", "field declaration, e.g. \"title=sentence;author=name\"")
	return cmd
}

// promptFields asks interactively for field names and generators until
// the user submits an empty field name.
func promptFields(registry *fake.Registry) ([]fieldSpec, error) {
	var fields []fieldSpec
	for {
		var name string
		prompt := &survey.Input{
			Message: "Field name (empty to finish):",
		}
		if err := survey.AskOne(prompt, &name); err != nil {
			return nil, err
		}
		if name == "" {
			break
		}
		var generator string
		sel := &survey.Select{
			Message: fmt.Sprintf("Generator for %q:", name),
			Options: registry.Names(),
		}
		if err := survey.AskOne(sel, &generator); err != nil {
			return nil, err
		}
		fields = append(fields, fieldSpec{name: name, generator: generator})
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields declared")
	}
	return fields, nil
}
