// Command docparse is a thin CLI harness over the rst parser: it
// exercises the core end-to-end the way the teacher's audit-cli exposes
// its own domain packages behind a cobra root command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:     "docparse",
		Version: version,
		Short:   "Parse and inspect reStructuredText documents",
		Long: `docparse parses reStructuredText source into a document tree and
lets you inspect it:

  - parse:      parse one file and print its AST (s-expression or YAML)
  - directives: list the directives and roles this build recognizes
  - diff:       compare the parsed structure of two RST files`,
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("docparse version %s\n", version))

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newDirectivesCommand())
	rootCmd.AddCommand(newDiffCommand())

	if err := rootCmd.Execute(); err != nil {
		return
	}
}
