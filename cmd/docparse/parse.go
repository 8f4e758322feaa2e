package main

import (
	"fmt"
	"io"
	"os"

	"github.com/grove-platform/docparse/rst"
	"github.com/spf13/cobra"
)

func newParseCommand() *cobra.Command {
	var (
		format      string
		tabWidth    int
		idPrefix    string
		reportLevel = newSeverityFlag(1)
		haltLevel   = newSeverityFlag(5)
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an RST source file and print its AST",
		Long: `Parse reads a reStructuredText file (or stdin, with "-" or no
argument) and prints the resulting document tree.

Diagnostics collected during the parse are printed to stderr
afterward, one per line, regardless of output format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}

			source, sourceID, err := readSource(path)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			options := rst.DefaultOptions()
			if tabWidth > 0 {
				options.TabWidth = tabWidth
			} else if cfg.TabWidth > 0 {
				options.TabWidth = cfg.TabWidth
			}
			if idPrefix != "" {
				options.IDPrefix = idPrefix
			} else if cfg.IDPrefix != "" {
				options.IDPrefix = cfg.IDPrefix
			}
			if !cmd.Flags().Changed("report-level") && cfg.ReportLevel != "" {
				if err := reportLevel.Set(cfg.ReportLevel); err != nil {
					return fmt.Errorf("invalid report_level in config: %w", err)
				}
			}
			options.ReportLevel = reportLevel.value
			options.HaltLevel = int(haltLevel.value)

			doc, messages, err := rst.Parse(sourceID, source, options)
			for _, m := range messages {
				fmt.Fprintln(os.Stderr, m.String())
			}
			if err != nil {
				return fmt.Errorf("parse halted: %w", err)
			}

			switch format {
			case "yaml":
				out, err := renderYAML(doc)
				if err != nil {
					return err
				}
				fmt.Print(out)
			case "sexpr", "":
				fmt.Print(renderSExpr(doc))
			default:
				return fmt.Errorf("unknown --format %q; choose from \"sexpr\", \"yaml\"", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "sexpr", `output format: "sexpr" or "yaml"`)
	cmd.Flags().IntVar(&tabWidth, "tab-width", 0, "tab expansion width (default 8, or config file)")
	cmd.Flags().StringVar(&idPrefix, "id-prefix", "", "prefix applied to every generated id")
	cmd.Flags().Var(reportLevel, "report-level", `minimum severity recorded in the diagnostics log: "info", "warning", "error", "severe"`)
	cmd.Flags().Var(haltLevel, "halt-level", `minimum severity that aborts the parse`)

	return cmd
}

func readSource(path string) (text string, sourceID string, err error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), path, nil
}
