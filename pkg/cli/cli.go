// This package implements the command-line interface. It is kept separate
// from "cmd/csssyntax" so that it can be called from tests and from other
// Go programs that want the same behavior.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/csssyntax/csssyntax/internal/exitcode"
	"github.com/csssyntax/csssyntax/internal/helpers"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/pkg/api"
)

// Run returns the process exit code: 0 when the value matched (or the
// command succeeded), 2 when the arguments couldn't be understood and 1
// otherwise
func Run(osArgs []string) int {
	return exitcode.Get(run(osArgs, os.Stdout))
}

// Problems have already been printed by the time this is returned
var errFailed = errors.New("Failed")

func run(osArgs []string, stdout io.Writer) (err error) {
	// Report panics the same way as any other error
	defer func() {
		if r := recover(); r != nil {
			logger.PrintErrorToStderr(osArgs, fmt.Sprintf("Panic: %v\n\n%s", r, helpers.PrettyPrintedStack()))
			err = errFailed
		}
	}()

	opts, parseErr := parseOptionsImpl(osArgs)
	if parseErr != nil {
		msg := logger.Msg{Kind: logger.Error, Data: logger.MsgData{Text: parseErr.Text}}
		if parseErr.Note != "" {
			msg.Notes = []logger.MsgData{{Text: parseErr.Note}}
		}
		logger.PrintMessageToStderr(osArgs, msg)
		return exitcode.Set(errors.New(parseErr.Text), exitcode.Usage)
	}

	if opts.command == commandPrint {
		result := api.CompileSyntax(opts.grammar)
		if len(result.Errors) > 0 {
			printMessages(opts, result.Errors)
			return errFailed
		}
		fmt.Fprintf(stdout, "%s\n", result.Syntax)
		return nil
	}

	validator, err := api.NewValidator(opts.validator)
	if err != nil {
		logger.PrintErrorToStderr(osArgs, err.Error())
		return err
	}

	switch opts.command {
	case commandList:
		for _, name := range validator.Properties() {
			fmt.Fprintf(stdout, "%s\n", name)
		}
		return nil

	case commandInfo:
		info, ok := validator.Property(opts.property)
		if !ok {
			logger.PrintErrorToStderr(osArgs, fmt.Sprintf("Unknown property %q", opts.property))
			return errFailed
		}
		writeInfo(stdout, info)
		return nil
	}

	var result api.ValidateResult
	if opts.command == commandMatch {
		result = validator.MatchSyntax(opts.grammar, opts.positional[0])
	} else {
		result = validator.Validate(opts.positional[0], opts.positional[1])
	}
	if !result.Matched {
		return errFailed
	}

	// Echo the decoded value so the caller can see how it was understood
	fmt.Fprintf(stdout, "%s\n", result.Value)
	return nil
}

func writeInfo(w io.Writer, info api.PropertyInfo) {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("name:     %s\n", info.Name))
	if info.Syntax != "" {
		sb.WriteString(fmt.Sprintf("syntax:   %s\n", info.Syntax))
	}
	if info.HasInitialValue {
		sb.WriteString(fmt.Sprintf("initial:  %s\n", info.InitialValue))
	}
	if len(info.ExpandedProperties) > 0 {
		sb.WriteString(fmt.Sprintf("expands:  %s\n", strings.Join(info.ExpandedProperties, ", ")))
	}
	sb.WriteString(fmt.Sprintf("inherits: %t\n", info.Inherits))
	io.WriteString(w, sb.String())
}

// Compile errors don't go through a log, so they are printed here
func printMessages(opts options, msgs []api.Message) {
	if opts.validator.LogLevel == api.LogLevelSilent {
		return
	}

	color := logger.GetTerminalInfo(os.Stderr).UseColorEscapes
	switch opts.validator.Color {
	case api.ColorNever:
		color = false
	case api.ColorAlways:
		color = logger.SupportsColorEscapes
	}

	for _, text := range api.FormatMessages(msgs, api.FormatMessagesOptions{Kind: api.ErrorMessage, Color: color}) {
		os.Stderr.WriteString(text)
	}
}
