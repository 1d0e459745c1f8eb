package main

import (
	"fmt"
	"os"

	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/pkg/cli"
)

const csssyntaxVersion = "0.1.0"

const helpText = `
Usage:
  csssyntax [options] <property> <value>
  csssyntax [options] --syntax=<grammar> <value>

Options:
  --syntax=...          Match the value against this grammar instead of a
                        property (e.g. "<length>{1,4} | auto")
  --print=...           Print a grammar in canonical form and exit
  --list                Print the names of all known properties
  --info=...            Print the definition of a property
  --charset=utf8        Do not escape UTF-8 code points in printed values
                        (ascii or utf8, default utf8)
  --color=...           Force use of color terminal escapes (true or false)
  --log-level=...       Disable logging (info, warning, error, silent)

Advanced options:
  --version                 Print the current version and exit (` + csssyntaxVersion + `)
  --step-limit=...          Maximum match attempts for one value (default 100000)
  --definitions=...         Load extra property definitions from a JSON file
                            (can be repeated)
  --error-limit=...         Maximum error count or 0 to disable (default 10)
  --log-override:X=Y        Use log level Y for log messages with identifier X
  --skip-initial-check      Don't check initial values when loading the tables

Exit status:
  0 if the value matched, 1 if it did not and 2 for invalid arguments

Examples:
  # Check a property value
  csssyntax border "1px solid black"

  # Values that start with "-" go after "--"
  csssyntax -- margin -1px

  # Check a value against a grammar
  csssyntax --syntax="<length-percentage [0,∞]>{1,2}" "10px 5%"

  # Show how a grammar is grouped
  csssyntax --print="a b | c && d"
`

func main() {
	osArgs := os.Args[1:]

	// Do an initial scan over the argument list
scan:
	for _, arg := range osArgs {
		switch arg {
		// Show help if a common help flag is provided
		case "-h", "-help", "--help", "/?":
			fmt.Fprintf(os.Stderr, "%s\n", helpText)
			os.Exit(0)

		// Special-case the version flag here
		case "--version":
			fmt.Fprintf(os.Stderr, "%s\n", csssyntaxVersion)
			os.Exit(0)

		// Everything after this is a positional argument
		case "--":
			break scan
		}
	}

	// Print help text when there are no arguments
	if len(osArgs) == 0 && logger.GetTerminalInfo(os.Stdin).IsTTY {
		fmt.Fprintf(os.Stderr, "%s\n", helpText)
		os.Exit(0)
	}

	os.Exit(cli.Run(osArgs))
}
