package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

var (
	flagMappingsFile string
	flagFiltersFile  string
)

var mapCmd = &cobra.Command{
	Use:   "map <file>",
	Short: "Project a file into a target schema via column mappings",
	Long: `Map applies optional row filters and then a list of column mappings
to the input. Mappings are read from a JSON file, an array of objects:

  [
    {"templateColumn": "email", "sourceColumn": "E-Mail", "transformation": "lowercase"},
    {"templateColumn": "login", "formula": "Vorname.Nachname"},
    {"templateColumn": "status", "defaultValue": "active"}
  ]

Formulas substitute source column names with the row's values; anything
else passes through verbatim. Filters use the same JSON file shape with
column, condition and value fields.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := readTable(args[0])
		if err != nil {
			return err
		}

		var mappings []engine.ColumnMapping
		if err := readJSONFile(flagMappingsFile, &mappings); err != nil {
			return err
		}
		if len(mappings) == 0 {
			return fmt.Errorf("%s contains no mappings", flagMappingsFile)
		}

		if flagFiltersFile != "" {
			var filters []engine.Predicate
			if err := readJSONFile(flagFiltersFile, &filters); err != nil {
				return err
			}
			table = engine.FilterRows(table, filters)
		}

		text, err := engine.Serialize(engine.ApplyMapping(table, mappings))
		if err != nil {
			return err
		}
		return writeOutput(text)
	},
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func init() {
	mapCmd.Flags().StringVarP(&flagMappingsFile, "mappings", "m", "", "JSON file with column mappings (required)")
	mapCmd.Flags().StringVar(&flagFiltersFile, "filters", "", "JSON file with row filter predicates")
	_ = mapCmd.MarkFlagRequired("mappings")
}
