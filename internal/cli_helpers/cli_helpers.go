// This package contains the parsing of command-line option values. It's kept
// out of the CLI package so the error type can be shared with other code
// that reads the same values.

package cli_helpers

import (
	"fmt"

	"github.com/csssyntax/csssyntax/pkg/api"
)

type ErrorWithNote struct {
	Text string
	Note string
}

func MakeErrorWithNote(text string, note string) *ErrorWithNote {
	return &ErrorWithNote{
		Text: text,
		Note: note,
	}
}

func ParseLogLevel(text string) (api.LogLevel, *ErrorWithNote) {
	switch text {
	case "info":
		return api.LogLevelInfo, nil
	case "warning":
		return api.LogLevelWarning, nil
	case "error":
		return api.LogLevelError, nil
	case "silent":
		return api.LogLevelSilent, nil
	default:
		return api.LogLevelSilent, MakeErrorWithNote(
			fmt.Sprintf("Invalid log level: %q", text),
			"Valid values are \"info\", \"warning\", \"error\", or \"silent\".",
		)
	}
}

func ParseColor(text string) (api.StderrColor, *ErrorWithNote) {
	switch text {
	case "false":
		return api.ColorNever, nil
	case "true":
		return api.ColorAlways, nil
	default:
		return api.ColorIfTerminal, MakeErrorWithNote(
			fmt.Sprintf("Invalid color: %q", text),
			"Valid values are \"false\" or \"true\".",
		)
	}
}

func ParseCharset(text string) (api.Charset, *ErrorWithNote) {
	switch text {
	case "ascii":
		return api.CharsetASCII, nil
	case "utf8":
		return api.CharsetUTF8, nil
	default:
		return api.CharsetDefault, MakeErrorWithNote(
			fmt.Sprintf("Invalid charset: %q", text),
			"Valid values are \"ascii\" or \"utf8\".",
		)
	}
}
