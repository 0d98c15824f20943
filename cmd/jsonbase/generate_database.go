package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jsonbase-dev/jsonbase/core/jdb"
)

func generateDatabaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "database <resource> [resource...]",
		Short: "Create or extend a database file with empty collections",
		Long: `Create the database file if it does not exist yet and add an empty
collection per resource name. Existing collections are left alone, so
the command can be re-run to add resources later.

The --embed flag declares read-time child embedding:
  --embed "posts[comments,likes];albums[photos]"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, _ := cmd.Flags().GetString("filename")
			embedSpec, _ := cmd.Flags().GetString("embed")

			embed, err := parseEmbed(embedSpec)
			if err != nil {
				return err
			}

			db, err := jdb.OpenOrCreate(filename)
			if err != nil {
				return err
			}
			defer db.Close()

			var added []string
			for _, name := range args {
				if db.Has(name) {
					continue
				}
				db.SetCollection(name, []jdb.Record{})
				added = append(added, name)
			}
			if len(embed) > 0 {
				merged := db.EmbedResources()
				for parent, children := range embed {
					merged[parent] = children
				}
				db.SetEmbedResources(merged)
			}
			if err := db.Flush(); err != nil {
				return err
			}

			successColor := color.New(color.FgGreen, color.Bold)
			successColor.Printf("✓ %s ready\n", filename)
			infoColor := color.New(color.FgCyan)
			for _, name := range added {
				infoColor.Printf("  added collection %s\n", name)
			}
			for parent, children := range embed {
				infoColor.Printf("  %s embeds %v\n", parent, children)
			}
			return nil
		},
	}
	cmd.Flags().StringP("filename", "f", "database.json", "database file to create or extend")
	cmd.Flags().String("embed", "", "embedding declaration, e.g. \"posts[comments];albums[photos]\"")
	return cmd
}
