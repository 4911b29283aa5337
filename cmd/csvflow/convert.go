package main

import (
	"github.com/spf13/cobra"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

var flagToDelimiter string

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Re-serialize a file with a different delimiter",
	Long: `Convert parses the input (CSV, TSV or XLSX), then writes it back as
delimited text. Use --to to pick the output delimiter; the input delimiter
is detected unless --delimiter is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := readTable(args[0])
		if err != nil {
			return err
		}

		if flagToDelimiter != "" {
			table.Delimiter = delimFlag(flagToDelimiter)
		}

		text, err := engine.Serialize(table)
		if err != nil {
			return err
		}
		return writeOutput(text)
	},
}

func init() {
	convertCmd.Flags().StringVar(&flagToDelimiter, "to", "", "output delimiter (default: same as input)")
}
