package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

var (
	flagDelimiter string
	flagEncoding  string
	flagOutput    string
	flagSheet     string
	flagNoHeader  bool
)

var rootCmd = &cobra.Command{
	Use:           "csvflow",
	Short:         "Transform, merge, diff and remap delimited text files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagDelimiter, "delimiter", "d", "", "input delimiter (default: auto-detect)")
	pf.StringVarP(&flagEncoding, "encoding", "e", "", "input encoding: utf-8, iso-8859-1, windows-1252 (default: utf-8)")
	pf.StringVarP(&flagOutput, "output", "o", "", "output file (default: stdout)")
	pf.StringVar(&flagSheet, "sheet", "", "worksheet name for .xlsx inputs (default: first sheet)")
	pf.BoolVar(&flagNoHeader, "no-header", false, "treat the first line as data, not headers")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(mapCmd)
}

// Execute runs the root command, printing mapped user messages for known
// engine errors before exiting non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if engine.IsUserFacing(err) {
			fmt.Fprintln(os.Stderr, "Error:", engine.FormatUserError(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// readTable loads one input file as a table. Excel workbooks route through
// the workbook parser, everything else through delimited-text parsing with
// the shared delimiter/encoding flags.
func readTable(path string) (engine.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Table{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return engine.ParseWorkbook(bytes.NewReader(data), flagSheet, name)
	}

	opts := engine.ParseOptions{
		Encoding:  flagEncoding,
		HasHeader: !flagNoHeader,
		Name:      name,
	}
	if flagDelimiter != "" {
		opts.Delimiter = delimFlag(flagDelimiter)
	}
	return engine.Parse(data, opts)
}

// delimFlag converts a delimiter flag value to a rune. "\t" and "tab" are
// accepted spellings for the tab character.
func delimFlag(s string) rune {
	switch s {
	case `\t`, "tab":
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// writeOutput writes text to the --output file, or stdout when unset.
func writeOutput(text string) error {
	if flagOutput == "" {
		fmt.Print(text)
		return nil
	}
	if err := os.WriteFile(flagOutput, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flagOutput, err)
	}
	return nil
}
