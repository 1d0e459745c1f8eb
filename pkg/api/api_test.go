package api_test

import (
	"testing"

	"github.com/csssyntax/csssyntax/internal/test"
	"github.com/csssyntax/csssyntax/pkg/api"
)

func messagesToString(msgs []api.Message) string {
	text := ""
	for _, msg := range msgs {
		text += msg.Text + "\n"
	}
	return text
}

func newValidatorForTest(t *testing.T, options api.ValidatorOptions) *api.Validator {
	t.Helper()
	validator, err := api.NewValidator(options)
	test.AssertEqual(t, err, nil)
	return validator
}

func TestCompileSyntax(t *testing.T) {
	check := func(grammar string, expected string) {
		t.Helper()
		t.Run(grammar, func(t *testing.T) {
			t.Helper()
			result := api.CompileSyntax(grammar)
			test.AssertEqualWithDiff(t, messagesToString(result.Errors), "")
			test.AssertEqualWithDiff(t, result.Syntax, expected)
		})
	}

	check("a b | c", "[ a b ] | c")
	check("a | b c", "a | [ b c ]")
	check("a && b || c", "a && [ b || c ]")
	check("<length>#{1,4}", "<length>#{1,4}")
	check("<length [0,∞]>+", "<length [0,∞]>+")

	result := api.CompileSyntax("[ a")
	test.AssertEqualWithDiff(t, result.Syntax, "")
	test.AssertEqual(t, len(result.Errors), 1)
	test.AssertEqualWithDiff(t, result.Errors[0].Text, "Expected \"]\" to go with \"[\" but found end of grammar")
	test.AssertEqual(t, result.Errors[0].Location.File, "<grammar>")
	test.AssertEqual(t, result.Errors[0].Location.Line, 1)
	test.AssertEqualWithDiff(t, result.Errors[0].Location.LineText, "[ a")
}

func TestMatchSyntax(t *testing.T) {
	check := func(grammar string, value string, expectedErrors string) {
		t.Helper()
		t.Run(grammar+": "+value, func(t *testing.T) {
			t.Helper()
			result := api.MatchSyntax(grammar, value)
			test.AssertEqualWithDiff(t, messagesToString(result.Errors), expectedErrors)
			test.AssertEqual(t, result.Matched, expectedErrors == "")
		})
	}

	check("<length>{1,4} | auto", "1px 2px", "")
	check("<length>{1,4} | auto", "auto", "")
	check("foo | bar", "bar", "")
	check("<number [0,1]>#", "0.5, 1", "")
	check("<length>", "red", "The value \"red\" is not valid for the syntax \"<length>\"\n")
	check("a b", "a b c", "The value \"a b c\" is not valid for the syntax \"a b\": unexpected \"c\" after \"a b\"\n")
	check("a", "", "The value \"\" is not valid for the syntax \"a\"\n")
	check("[ a", "a", "Expected \"]\" to go with \"[\" but found end of grammar\n")
	check("a", "rgb(1", "Expected \")\" to go with \"rgb(\" but found end of value\n")

	// Only builtins can be referenced without a validator
	result := api.MatchSyntax("<color>", "red")
	test.AssertEqual(t, result.Matched, false)
	test.AssertEqualWithDiff(t, messagesToString(result.Warnings), "The datatype \"color\" used by \"<color>\" is not defined\n")
	test.AssertEqualWithDiff(t, messagesToString(result.Errors),
		"Could not check the value \"red\" against the syntax \"<color>\": Cannot match <color>: the datatype \"color\" is not defined\n")

	result = api.MatchSyntax("'A.B'", "'a.b'")
	test.AssertEqual(t, result.Matched, true)
	test.AssertEqualWithDiff(t, messagesToString(result.Warnings), "The value \"a.b\" only matches the literal \"A.B\" when ignoring case\n")
}

func TestValidate(t *testing.T) {
	validator := newValidatorForTest(t, api.ValidatorOptions{})

	check := func(property string, value string, expectedErrors string) {
		t.Helper()
		t.Run(property+": "+value, func(t *testing.T) {
			t.Helper()
			result := validator.Validate(property, value)
			test.AssertEqualWithDiff(t, messagesToString(result.Errors), expectedErrors)
			test.AssertEqual(t, result.Matched, expectedErrors == "")
		})
	}

	check("border", "1px solid black", "")
	check("COLOR", "Red", "")
	check("margin", "0 auto", "")
	check("font-family", "\"Helvetica Neue\", Arial, sans-serif", "")
	check("color", "42", "The value \"42\" is not valid for the property \"color\"\n")
	check("margin", "1px 2px 3px 4px 5px", "The value \"1px 2px 3px 4px 5px\" is not valid for the property \"margin\"\n")
	check("colr", "red", "Unknown property \"colr\" (did you mean \"color\"?)\n")
	check("not-a-property", "red", "Unknown property \"not-a-property\"\n")

	result := validator.Validate("color", "rgb(1")
	test.AssertEqual(t, result.Matched, false)
	test.AssertEqual(t, len(result.Errors), 1)
	test.AssertEqual(t, result.Errors[0].Location.File, "<value>")
	test.AssertEqual(t, result.Errors[0].Location.Line, 1)

	result = validator.Validate("width", "10.50px")
	test.AssertEqual(t, result.Matched, true)
	test.AssertEqualWithDiff(t, result.Value, "10.5px")
}

func TestValidatorMatchSyntax(t *testing.T) {
	validator := newValidatorForTest(t, api.ValidatorOptions{})

	result := validator.MatchSyntax("<length-percentage> | auto", "50%")
	test.AssertEqualWithDiff(t, messagesToString(result.Errors), "")
	test.AssertEqual(t, result.Matched, true)

	result = validator.MatchSyntax("<'border'> | none", "solid red")
	test.AssertEqual(t, result.Matched, true)

	result = validator.MatchSyntax("<color>#", "red, #fff, transparent")
	test.AssertEqual(t, result.Matched, true)
}

func TestValidatorMatchSyntaxCached(t *testing.T) {
	validator := newValidatorForTest(t, api.ValidatorOptions{})

	// Compile warnings are reported for every call, not only the first one
	for i := 0; i < 2; i++ {
		result := validator.MatchSyntax("<nope> | a", "a")
		test.AssertEqual(t, result.Matched, true)
		test.AssertEqualWithDiff(t, messagesToString(result.Warnings), "The datatype \"nope\" used by \"<nope> | a\" is not defined\n")
	}

	for i := 0; i < 2; i++ {
		result := validator.MatchSyntax("[ a", "a")
		test.AssertEqual(t, result.Matched, false)
		test.AssertEqualWithDiff(t, messagesToString(result.Errors), "Expected \"]\" to go with \"[\" but found end of grammar\n")
	}
}

func TestValue(t *testing.T) {
	validator := newValidatorForTest(t, api.ValidatorOptions{})

	check := func(property string, value string, expected string) {
		t.Helper()
		t.Run(property+": "+value, func(t *testing.T) {
			t.Helper()
			result := validator.Validate(property, value)
			test.AssertEqualWithDiff(t, messagesToString(result.Errors), "")
			test.AssertEqualWithDiff(t, result.Value, expected)
		})
	}

	check("font-family", "'Helvetica Neue',Arial", "\"Helvetica Neue\", Arial")
	check("font-family", "\"Arial\"", "Arial")
	check("color", "#FFFFFF", "#fff")
	check("color", "#ff0000", "#f00")
	check("margin", "0  10.50px", "0 10.5px")

	validator = newValidatorForTest(t, api.ValidatorOptions{Charset: api.CharsetASCII})
	result := validator.MatchSyntax("<string>", "'café'")
	test.AssertEqualWithDiff(t, result.Value, "\"caf\\e9\"")
}

func TestLogOverrides(t *testing.T) {
	validator := newValidatorForTest(t, api.ValidatorOptions{
		LogOverrides: map[string]api.LogLevel{
			"case-insensitive-literal": api.LogLevelSilent,
		},
	})
	result := validator.MatchSyntax("'A.B'", "'a.b'")
	test.AssertEqual(t, result.Matched, true)
	test.AssertEqualWithDiff(t, messagesToString(result.Warnings), "")

	validator = newValidatorForTest(t, api.ValidatorOptions{
		LogOverrides: map[string]api.LogLevel{
			"case-insensitive-literal": api.LogLevelError,
		},
	})
	result = validator.MatchSyntax("'A.B'", "'a.b'")
	test.AssertEqual(t, result.Matched, false)
	test.AssertEqualWithDiff(t, messagesToString(result.Errors), "The value \"a.b\" only matches the literal \"A.B\" when ignoring case\n")
}

func TestProperty(t *testing.T) {
	validator := newValidatorForTest(t, api.ValidatorOptions{})
	test.AssertEqual(t, len(validator.Properties()), 115)

	info, ok := validator.Property("margin")
	test.AssertEqual(t, ok, true)
	test.AssertEqual(t, info.HasInitialValue, false)
	test.AssertEqual(t, info.Inherits, false)
	test.AssertEqual(t, len(info.ExpandedProperties), 4)

	info, ok = validator.Property("z-index")
	test.AssertEqual(t, ok, true)
	test.AssertEqual(t, info.HasInitialValue, true)
	test.AssertEqualWithDiff(t, info.InitialValue, "auto")
	test.AssertEqualWithDiff(t, info.Syntax, "auto | <integer>")

	_, ok = validator.Property("colr")
	test.AssertEqual(t, ok, false)
}

func TestFormatMessages(t *testing.T) {
	check := func(name string, opts api.FormatMessagesOptions, msg api.Message, expected string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			test.AssertEqualWithDiff(t, api.FormatMessages([]api.Message{msg}, opts)[0], expected)
		})
	}

	check("Error", api.FormatMessagesOptions{Kind: api.ErrorMessage}, api.Message{Text: "This is a test"}, "error: This is a test\n")
	check("Warning", api.FormatMessagesOptions{Kind: api.WarningMessage}, api.Message{Text: "This is a test"}, "warning: This is a test\n")

	check("Location",
		api.FormatMessagesOptions{},
		api.Message{Text: "This is a test", Location: &api.Location{
			File:     "<value>",
			Line:     1,
			Column:   0,
			Length:   3,
			LineText: "rgb(1",
		}},
		"<value>:1:0: error: This is a test\n"+
			"rgb(1\n"+
			"~~~\n",
	)

	check("Single character",
		api.FormatMessagesOptions{Kind: api.WarningMessage},
		api.Message{Text: "This is a test", Location: &api.Location{
			File:     "<grammar>",
			Line:     1,
			Column:   2,
			Length:   1,
			LineText: "a ] b",
		}},
		"<grammar>:1:2: warning: This is a test\n"+
			"a ] b\n"+
			"  ^\n",
	)
}
