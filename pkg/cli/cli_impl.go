package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csssyntax/csssyntax/internal/cli_helpers"
	"github.com/csssyntax/csssyntax/internal/helpers"
	"github.com/csssyntax/csssyntax/pkg/api"
)

type command uint8

const (
	// "csssyntax <property> <value>"
	commandValidate command = iota

	// "csssyntax --syntax=<grammar> <value>"
	commandMatch

	// "csssyntax --print=<grammar>"
	commandPrint

	// "csssyntax --list"
	commandList

	// "csssyntax --info=<property>"
	commandInfo
)

type options struct {
	validator  api.ValidatorOptions
	grammar    string
	property   string
	positional []string
	command    command
}

var knownFlags = []string{
	"--charset",
	"--color",
	"--definitions",
	"--error-limit",
	"--info",
	"--list",
	"--log-level",
	"--log-override",
	"--print",
	"--skip-initial-check",
	"--step-limit",
	"--syntax",
}

func newOptions() options {
	return options{
		validator: api.ValidatorOptions{
			// Apply defaults appropriate for the CLI
			ErrorLimit:   10,
			LogLevel:     api.LogLevelInfo,
			LogOverrides: make(map[string]api.LogLevel),
		},
	}
}

func parseOptionsImpl(osArgs []string) (options, *cli_helpers.ErrorWithNote) {
	opts := newOptions()
	hasCommand := false

	setCommand := func(arg string, c command) *cli_helpers.ErrorWithNote {
		if hasCommand && opts.command != c {
			return cli_helpers.MakeErrorWithNote(fmt.Sprintf("Cannot use %q together with another command", arg), "")
		}
		hasCommand = true
		opts.command = c
		return nil
	}

	for i, arg := range osArgs {
		switch {
		// Everything after "--" is positional so values like "-1px" work
		case arg == "--":
			opts.positional = append(opts.positional, osArgs[i+1:]...)
			return opts, checkPositional(opts)

		case arg == "--list":
			if err := setCommand(arg, commandList); err != nil {
				return opts, err
			}

		case strings.HasPrefix(arg, "--syntax="):
			if err := setCommand("--syntax", commandMatch); err != nil {
				return opts, err
			}
			opts.grammar = arg[len("--syntax="):]

		case strings.HasPrefix(arg, "--print="):
			if err := setCommand("--print", commandPrint); err != nil {
				return opts, err
			}
			opts.grammar = arg[len("--print="):]

		case strings.HasPrefix(arg, "--info="):
			if err := setCommand("--info", commandInfo); err != nil {
				return opts, err
			}
			opts.property = arg[len("--info="):]

		case strings.HasPrefix(arg, "--charset="):
			charset, err := cli_helpers.ParseCharset(arg[len("--charset="):])
			if err != nil {
				return opts, err
			}
			opts.validator.Charset = charset

		case strings.HasPrefix(arg, "--definitions="):
			opts.validator.DefinitionFiles = append(opts.validator.DefinitionFiles, arg[len("--definitions="):])

		case arg == "--skip-initial-check":
			opts.validator.SkipInitialValueCheck = true

		case strings.HasPrefix(arg, "--step-limit="):
			value := arg[len("--step-limit="):]
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 0 {
				return opts, cli_helpers.MakeErrorWithNote(fmt.Sprintf("Invalid step limit: %q", value),
					"The step limit must be a non-negative integer. Zero means the default limit.")
			}
			opts.validator.StepLimit = limit

		case strings.HasPrefix(arg, "--error-limit="):
			value := arg[len("--error-limit="):]
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 0 {
				return opts, cli_helpers.MakeErrorWithNote(fmt.Sprintf("Invalid error limit: %q", value),
					"The error limit must be a non-negative integer. Zero disables the limit.")
			}
			opts.validator.ErrorLimit = limit

		// Make sure this stays in sync with "logger.OutputOptionsForArgs"
		case arg == "--color":
			opts.validator.Color = api.ColorAlways

		case strings.HasPrefix(arg, "--color="):
			color, err := cli_helpers.ParseColor(arg[len("--color="):])
			if err != nil {
				return opts, err
			}
			opts.validator.Color = color

		// Make sure this stays in sync with "logger.OutputOptionsForArgs"
		case strings.HasPrefix(arg, "--log-level="):
			logLevel, err := cli_helpers.ParseLogLevel(arg[len("--log-level="):])
			if err != nil {
				return opts, err
			}
			opts.validator.LogLevel = logLevel

		case strings.HasPrefix(arg, "--log-override:"):
			value := arg[len("--log-override:"):]
			equals := strings.IndexByte(value, '=')
			if equals == -1 {
				return opts, cli_helpers.MakeErrorWithNote(fmt.Sprintf("Missing \"=\" in %q", arg),
					"Use \"--log-override:X=Y\" to set the log level of messages with identifier X to Y.")
			}
			logLevel, err := cli_helpers.ParseLogLevel(value[equals+1:])
			if err != nil {
				return opts, err
			}
			opts.validator.LogOverrides[value[:equals]] = logLevel

		case !strings.HasPrefix(arg, "-"):
			opts.positional = append(opts.positional, arg)

		default:
			return opts, invalidFlagError(arg)
		}
	}

	return opts, checkPositional(opts)
}

func invalidFlagError(arg string) *cli_helpers.ErrorWithNote {
	name := arg
	if equals := strings.IndexAny(name, "=:"); equals != -1 {
		name = name[:equals]
	}
	if suggestion, ok := helpers.MakeTypoDetector(knownFlags).MaybeCorrectTypo(name); ok {
		return cli_helpers.MakeErrorWithNote(fmt.Sprintf("Invalid flag: %q (did you mean %q?)", arg, suggestion), "")
	}

	// Values such as "-1px" or "-webkit-box" look like flags
	note := ""
	if !strings.HasPrefix(arg, "--") {
		note = "Put \"--\" before the property to pass values that start with \"-\"."
	}
	return cli_helpers.MakeErrorWithNote(fmt.Sprintf("Invalid flag: %q", arg), note)
}

func checkPositional(opts options) *cli_helpers.ErrorWithNote {
	count := len(opts.positional)

	switch opts.command {
	case commandValidate:
		if count != 2 {
			return cli_helpers.MakeErrorWithNote(fmt.Sprintf("Expected a property and a value but got %s", describeArgs(opts.positional)),
				"Quote the value if it contains spaces, as in: csssyntax border \"1px solid\"")
		}

	case commandMatch:
		if count != 1 {
			return cli_helpers.MakeErrorWithNote(fmt.Sprintf("Expected a single value to match against the syntax but got %s", describeArgs(opts.positional)), "")
		}

	case commandPrint, commandList, commandInfo:
		if count != 0 {
			return cli_helpers.MakeErrorWithNote(fmt.Sprintf("Did not expect %s", describeArgs(opts.positional)), "")
		}
	}

	return nil
}

func describeArgs(args []string) string {
	switch len(args) {
	case 0:
		return "no arguments"
	case 1:
		return fmt.Sprintf("the argument %q", args[0])
	}
	return "the arguments " + helpers.QuotedList(args)
}
