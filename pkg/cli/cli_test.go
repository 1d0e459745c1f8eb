package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/csssyntax/csssyntax/internal/exitcode"
	"github.com/csssyntax/csssyntax/internal/test"
	"github.com/csssyntax/csssyntax/pkg/api"
)

func expectOptions(t *testing.T, args string, check func(opts options)) {
	t.Helper()
	t.Run(args, func(t *testing.T) {
		t.Helper()
		opts, err := parseOptionsImpl(strings.Fields(args))
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Text)
		}
		check(opts)
	})
}

func expectOptionsError(t *testing.T, args []string, expected string) {
	t.Helper()
	expectOptionsErrorWithNote(t, args, expected, "")
}

func expectOptionsErrorWithNote(t *testing.T, args []string, expected string, expectedNote string) {
	t.Helper()
	t.Run(strings.Join(args, " "), func(t *testing.T) {
		t.Helper()
		_, err := parseOptionsImpl(args)
		if err == nil {
			t.Fatalf("Expected an error")
		}
		test.AssertEqualWithDiff(t, err.Text, expected)
		test.AssertEqualWithDiff(t, err.Note, expectedNote)
	})
}

func TestParseOptions(t *testing.T) {
	expectOptions(t, "color red", func(opts options) {
		test.AssertEqual(t, opts.command, commandValidate)
		test.AssertEqualWithDiff(t, strings.Join(opts.positional, " "), "color red")
		test.AssertEqual(t, opts.validator.LogLevel, api.LogLevelInfo)
		test.AssertEqual(t, opts.validator.ErrorLimit, 10)
	})

	expectOptions(t, "--error-limit=0 color red", func(opts options) {
		test.AssertEqual(t, opts.validator.ErrorLimit, 0)
	})

	expectOptions(t, "--syntax=<length> 1px", func(opts options) {
		test.AssertEqual(t, opts.command, commandMatch)
		test.AssertEqualWithDiff(t, opts.grammar, "<length>")
		test.AssertEqualWithDiff(t, strings.Join(opts.positional, " "), "1px")
	})

	expectOptions(t, "--print=a", func(opts options) {
		test.AssertEqual(t, opts.command, commandPrint)
		test.AssertEqualWithDiff(t, opts.grammar, "a")
	})

	expectOptions(t, "--list --list", func(opts options) {
		test.AssertEqual(t, opts.command, commandList)
	})

	expectOptions(t, "--info=border", func(opts options) {
		test.AssertEqual(t, opts.command, commandInfo)
		test.AssertEqualWithDiff(t, opts.property, "border")
	})

	expectOptions(t, "--color=false --log-level=error --step-limit=50 --skip-initial-check color red", func(opts options) {
		test.AssertEqual(t, opts.validator.Color, api.ColorNever)
		test.AssertEqual(t, opts.validator.LogLevel, api.LogLevelError)
		test.AssertEqual(t, opts.validator.StepLimit, 50)
		test.AssertEqual(t, opts.validator.SkipInitialValueCheck, true)
	})

	expectOptions(t, "--charset=ascii color red", func(opts options) {
		test.AssertEqual(t, opts.validator.Charset, api.CharsetASCII)
	})

	expectOptions(t, "--definitions=a.json --definitions=b.json color red", func(opts options) {
		test.AssertEqualWithDiff(t, strings.Join(opts.validator.DefinitionFiles, " "), "a.json b.json")
	})

	expectOptions(t, "--color color red", func(opts options) {
		test.AssertEqual(t, opts.validator.Color, api.ColorAlways)
	})

	expectOptions(t, "--log-override:case-insensitive-literal=error -- margin -1px", func(opts options) {
		test.AssertEqual(t, opts.validator.LogOverrides["case-insensitive-literal"], api.LogLevelError)
		test.AssertEqualWithDiff(t, strings.Join(opts.positional, " "), "margin -1px")
	})
}

func TestParseOptionsErrors(t *testing.T) {
	expectOptionsError(t, []string{"--lst"}, "Invalid flag: \"--lst\" (did you mean \"--list\"?)")
	expectOptionsError(t, []string{"--step-limt=5"}, "Invalid flag: \"--step-limt=5\" (did you mean \"--step-limit\"?)")
	expectOptionsError(t, []string{"--bundle"}, "Invalid flag: \"--bundle\"")
	expectOptionsErrorWithNote(t, []string{"margin", "-1px"}, "Invalid flag: \"-1px\"",
		"Put \"--\" before the property to pass values that start with \"-\".")
	expectOptionsErrorWithNote(t, []string{"--step-limit=x"}, "Invalid step limit: \"x\"",
		"The step limit must be a non-negative integer. Zero means the default limit.")
	expectOptionsErrorWithNote(t, []string{"--error-limit=-1"}, "Invalid error limit: \"-1\"",
		"The error limit must be a non-negative integer. Zero disables the limit.")
	expectOptionsError(t, []string{"--eror-limit=5"}, "Invalid flag: \"--eror-limit=5\" (did you mean \"--error-limit\"?)")
	expectOptionsErrorWithNote(t, []string{"--charset=latin1"}, "Invalid charset: \"latin1\"",
		"Valid values are \"ascii\" or \"utf8\".")
	expectOptionsErrorWithNote(t, []string{"--color=maybe"}, "Invalid color: \"maybe\"",
		"Valid values are \"false\" or \"true\".")
	expectOptionsErrorWithNote(t, []string{"--log-level=loud"}, "Invalid log level: \"loud\"",
		"Valid values are \"info\", \"warning\", \"error\", or \"silent\".")
	expectOptionsErrorWithNote(t, []string{"--log-override:x"}, "Missing \"=\" in \"--log-override:x\"",
		"Use \"--log-override:X=Y\" to set the log level of messages with identifier X to Y.")
	expectOptionsError(t, []string{"--syntax=a", "--print=b"}, "Cannot use \"--print\" together with another command")
	expectOptionsErrorWithNote(t, []string{}, "Expected a property and a value but got no arguments",
		"Quote the value if it contains spaces, as in: csssyntax border \"1px solid\"")
	expectOptionsErrorWithNote(t, []string{"a", "b", "c"}, "Expected a property and a value but got the arguments \"a\", \"b\", and \"c\"",
		"Quote the value if it contains spaces, as in: csssyntax border \"1px solid\"")
	expectOptionsError(t, []string{"--syntax=a"}, "Expected a single value to match against the syntax but got no arguments")
	expectOptionsError(t, []string{"--list", "x"}, "Did not expect the argument \"x\"")
}

func expectRun(t *testing.T, args []string, expectedCode int, expectedStdout string) {
	t.Helper()
	t.Run(strings.Join(args, " "), func(t *testing.T) {
		t.Helper()
		stdout := bytes.Buffer{}
		code := exitcode.Get(run(append([]string{"--log-level=silent"}, args...), &stdout))
		test.AssertEqualWithDiff(t, stdout.String(), expectedStdout)
		test.AssertEqual(t, code, expectedCode)
	})
}

func TestRun(t *testing.T) {
	expectRun(t, []string{"color", "red"}, 0, "red\n")
	expectRun(t, []string{"border", "1px  solid   black"}, 0, "1px solid black\n")
	expectRun(t, []string{"color", "42"}, 1, "")
	expectRun(t, []string{"colr", "red"}, 1, "")
	expectRun(t, []string{"--", "margin", "-1px"}, 0, "-1px\n")
	expectRun(t, []string{"--syntax=<length>{2}", "1px 2px"}, 0, "1px 2px\n")
	expectRun(t, []string{"--syntax=<length>{2}", "1px"}, 1, "")
	expectRun(t, []string{"--syntax=<length-percentage>#", "1px, 5%"}, 0, "1px, 5%\n")
	expectRun(t, []string{"--print=a b | c"}, 0, "[ a b ] | c\n")
	expectRun(t, []string{"--print=[ a"}, 1, "")
	expectRun(t, []string{"--info=z-index"}, 0, "name:     z-index\n"+
		"syntax:   auto | <integer>\n"+
		"initial:  auto\n"+
		"inherits: false\n")
	expectRun(t, []string{"--info=margin"}, 0, "name:     margin\n"+
		"syntax:   [ [ <length> | <percentage> ] | auto ]{1,4}\n"+
		"expands:  margin-top, margin-right, margin-bottom, margin-left\n"+
		"inherits: false\n")
	expectRun(t, []string{"--info=nope"}, 1, "")
	expectRun(t, []string{"color", "#FF0000"}, 0, "#f00\n")
	expectRun(t, []string{"font-family", "'Times New Roman', serif"}, 0, "\"Times New Roman\", serif\n")
	expectRun(t, []string{"--charset=ascii", "--syntax=<string>", "'café'"}, 0, "\"caf\\e9\"\n")

	expectRun(t, []string{"--definitions=does-not-exist.json", "color", "red"}, 1, "")

	// Usage errors have their own exit code
	expectRun(t, []string{"--bad"}, 2, "")
	expectRun(t, []string{"color"}, 2, "")
}

func TestRunList(t *testing.T) {
	stdout := bytes.Buffer{}
	err := run([]string{"--log-level=silent", "--list"}, &stdout)
	test.AssertEqual(t, err, nil)

	names := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	test.AssertEqual(t, len(names), 115)
	test.AssertEqualWithDiff(t, names[0], "azimuth")
}
