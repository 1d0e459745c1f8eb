package cli_helpers

import (
	"testing"

	"github.com/csssyntax/csssyntax/internal/test"
	"github.com/csssyntax/csssyntax/pkg/api"
)

func TestParseLogLevel(t *testing.T) {
	for text, expected := range map[string]api.LogLevel{
		"info":    api.LogLevelInfo,
		"warning": api.LogLevelWarning,
		"error":   api.LogLevelError,
		"silent":  api.LogLevelSilent,
	} {
		level, err := ParseLogLevel(text)
		test.AssertEqual(t, err == nil, true)
		test.AssertEqual(t, level, expected)
	}

	_, err := ParseLogLevel("loud")
	test.AssertEqualWithDiff(t, err.Text, "Invalid log level: \"loud\"")
	test.AssertEqualWithDiff(t, err.Note, "Valid values are \"info\", \"warning\", \"error\", or \"silent\".")
}

func TestParseColor(t *testing.T) {
	color, err := ParseColor("false")
	test.AssertEqual(t, err == nil, true)
	test.AssertEqual(t, color, api.ColorNever)

	color, err = ParseColor("true")
	test.AssertEqual(t, err == nil, true)
	test.AssertEqual(t, color, api.ColorAlways)

	_, err = ParseColor("maybe")
	test.AssertEqualWithDiff(t, err.Text, "Invalid color: \"maybe\"")
}

func TestParseCharset(t *testing.T) {
	charset, err := ParseCharset("ascii")
	test.AssertEqual(t, err == nil, true)
	test.AssertEqual(t, charset, api.CharsetASCII)

	charset, err = ParseCharset("utf8")
	test.AssertEqual(t, err == nil, true)
	test.AssertEqual(t, charset, api.CharsetUTF8)

	_, err = ParseCharset("latin1")
	test.AssertEqualWithDiff(t, err.Text, "Invalid charset: \"latin1\"")
	test.AssertEqualWithDiff(t, err.Note, "Valid values are \"ascii\" or \"utf8\".")
}
