package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

func newDocsCmd(root *cobra.Command) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:    "docs",
		Short:  "Generate roff man pages for every command",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateDocs(root, outDir)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "man", "output directory for generated man pages")
	return cmd
}

// generateDocs walks root's command tree and writes one roff man page per
// command, via mango-cobra's cobra-to-mango translation.
func generateDocs(root *cobra.Command, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("generate docs: %w", err)
	}

	var walk func(cmd *cobra.Command) error
	walk = func(cmd *cobra.Command) error {
		manPage := mcobra.NewManPage(1, cmd)
		name := strings.ReplaceAll(cmd.CommandPath(), " ", "-")
		path := filepath.Join(outDir, name+".1")
		if err := os.WriteFile(path, []byte(manPage.Build(roff.NewDocument())), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		for _, sub := range cmd.Commands() {
			if sub.Hidden {
				continue
			}
			if err := walk(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}
