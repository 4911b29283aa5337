// Command csvflow is the command-line interface to the transformation
// engine: delimiter detection, format conversion, merging, diffing and
// template-driven column mapping of delimited text files.
package main

func main() {
	Execute()
}
