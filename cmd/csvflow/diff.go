package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

var (
	flagDiffKey     string
	flagOnDuplicate string
	flagDiffAll     bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-file> <new-file>",
	Short: "Compare two files by a key column",
	Long: `Diff classifies every key as added, removed, modified or unchanged
and prints the result as JSON. Cells are matched by header name, so column
order may differ between the files. Unchanged keys are omitted unless --all
is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagDiffKey == "" {
			return fmt.Errorf("--key is required")
		}

		a, err := readTable(args[0])
		if err != nil {
			return err
		}
		b, err := readTable(args[1])
		if err != nil {
			return err
		}

		opts := engine.DiffOptions{
			OnDuplicateKey: engine.DuplicatePolicy(flagOnDuplicate),
		}
		entries, err := engine.Compare(a, b, flagDiffKey, opts)
		if err != nil {
			return err
		}

		if !flagDiffAll {
			kept := entries[:0]
			for _, e := range entries {
				if e.Type != engine.DiffUnchanged {
					kept = append(kept, e)
				}
			}
			entries = kept
		}

		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		return writeOutput(string(out) + "\n")
	},
}

func init() {
	diffCmd.Flags().StringVarP(&flagDiffKey, "key", "k", "", "key column present in both files (required)")
	diffCmd.Flags().StringVar(&flagOnDuplicate, "on-duplicate", "last-wins", "duplicate key handling: last-wins or error")
	diffCmd.Flags().BoolVar(&flagDiffAll, "all", false, "include unchanged keys in the output")
}
