package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/errors"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check tree files",
		Long: `Parse tree files and check them for duplicate sibling keys and
malformed nodes.

Examples:
  vdom validate testdata/old.yaml testdata/new.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("E601").WithDetail("validate needs at least one tree file")
			}
			failed := runValidate(args)
			if failed > 0 {
				return fmt.Errorf("%d of %d tree files invalid", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

// runValidate checks each file and returns the number that failed.
func runValidate(paths []string) int {
	failed := 0
	for _, path := range paths {
		if _, err := loadTree(path); err != nil {
			errorMsg("%s", path)
			errors.PrintError(err)
			failed++
			continue
		}
		success("%s", path)
	}
	return failed
}
