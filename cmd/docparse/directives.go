package main

import (
	"fmt"

	"github.com/grove-platform/docparse/rstdirective"
	"github.com/spf13/cobra"
)

func newDirectivesCommand() *cobra.Command {
	var (
		specPath string
		specURL  string
	)

	cmd := &cobra.Command{
		Use:   "directives",
		Short: "List the directives and roles this build of docparse recognizes",
		Long: `directives prints every directive and role name the default
registry resolves. With --spec-path or --spec-url, it also loads a
rstspec.toml-shaped directive-spec table and re-registers the
composable-tutorial/tabs directives against it, listing the composable
and tabset ids the table defines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b rstdirective.Builder
			rstdirective.RegisterDefaultDirectives(&b, "")
			rstdirective.RegisterDefaultRoles(&b, "")

			if specPath != "" || specURL != "" {
				table, err := resolveSpecTable(specPath, specURL)
				if err != nil {
					return fmt.Errorf("failed to load directive spec table: %w", err)
				}
				rstdirective.RegisterFromSpecTable(&b, "", table)

				fmt.Println("composables:")
				for _, c := range table.Composables {
					fmt.Printf("  %s (%d options)\n", c.ID, len(c.Options))
				}
				fmt.Println("tabsets:")
				for name, opts := range table.Tabs {
					fmt.Printf("  %s (%d options)\n", name, len(opts))
				}
			}

			reg := b.Build("mongodb", "std", "")

			fmt.Println("directives:")
			for _, name := range reg.DirectiveNames() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("roles:")
			for _, name := range reg.RoleNames() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&specPath, "spec-path", "", "local rstspec.toml-shaped file to load")
	cmd.Flags().StringVar(&specURL, "spec-url", "", "remote rstspec.toml-shaped URL to fetch (cached 24h)")

	return cmd
}
