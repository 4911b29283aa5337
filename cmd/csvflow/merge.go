package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

var (
	flagMergeMode  string
	flagJoinColumn string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file> <file> [file...]",
	Short: "Combine multiple files into one table",
	Long: `Merge combines two or more files. In append mode (the default) all
files must share identical headers and their rows are concatenated. In join
mode rows are matched on a key column; only keys present in every file make
it into the result.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := make([]engine.Table, len(args))
		for i, path := range args {
			t, err := readTable(path)
			if err != nil {
				return err
			}
			tables[i] = t
		}

		var (
			merged engine.Table
			err    error
		)
		switch flagMergeMode {
		case "append":
			merged, err = engine.MergeAppend(tables...)
		case "join":
			if flagJoinColumn == "" {
				return fmt.Errorf("--join-column is required for join mode")
			}
			merged, err = engine.MergeJoin(tables, flagJoinColumn)
		default:
			return fmt.Errorf("invalid mode %q: must be append or join", flagMergeMode)
		}
		if err != nil {
			return err
		}

		text, err := engine.Serialize(merged)
		if err != nil {
			return err
		}
		return writeOutput(text)
	},
}

func init() {
	mergeCmd.Flags().StringVar(&flagMergeMode, "mode", "append", "merge mode: append or join")
	mergeCmd.Flags().StringVar(&flagJoinColumn, "join-column", "", "key column for join mode")
}
