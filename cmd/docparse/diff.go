package main

import (
	"fmt"
	"os"

	"github.com/aymanbagabas/go-udiff"
	"github.com/grove-platform/docparse/rst"
	"github.com/spf13/cobra"
)

func newDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Diff the parsed structure of two RST files",
		Long: `diff parses two RST sources independently and renders each as a
stable, one-node-per-line text form, then prints a unified diff of
those two renderings. This surfaces structural changes (a node's kind,
attributes, or text) rather than the raw source text diff a plain
"diff" command would show.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldPath, newPath := args[0], args[1]

			oldRendering, err := parseAndRender(oldPath)
			if err != nil {
				return err
			}
			newRendering, err := parseAndRender(newPath)
			if err != nil {
				return err
			}

			edits := udiff.Strings(oldRendering, newRendering)
			unified := udiff.ToUnified(oldPath, newPath, oldRendering, edits)
			fmt.Print(unified.String())
			return nil
		},
	}
	return cmd
}

func parseAndRender(path string) (string, error) {
	source, sourceID, err := readSource(path)
	if err != nil {
		return "", err
	}
	doc, messages, err := rst.Parse(sourceID, source, rst.DefaultOptions())
	for _, m := range messages {
		fmt.Fprintln(os.Stderr, m.String())
	}
	if err != nil {
		return "", fmt.Errorf("parse of %s halted: %w", path, err)
	}
	return renderSExpr(doc), nil
}
