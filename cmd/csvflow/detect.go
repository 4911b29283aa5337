package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

var delimiterNames = map[rune]string{
	',':  "comma",
	';':  "semicolon",
	'\t': "tab",
	'|':  "pipe",
}

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Report the delimiter a file appears to use",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		delim := engine.DetectDelimiter(string(data))
		name, ok := delimiterNames[delim]
		if !ok {
			name = string(delim)
		}
		fmt.Printf("%s (%q)\n", name, delim)
		return nil
	},
}
