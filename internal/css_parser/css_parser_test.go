package css_parser

import (
	"testing"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/test"
)

func expectValues(t *testing.T, contents string, expected ...css_ast.Value) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog(logger.LevelNone, nil)
		values, ok := ParseValue(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, "")
		test.AssertEqual(t, ok, true)
		test.AssertEqualWithDiff(t, css_ast.ValuesToString(values), css_ast.ValuesToString(expected))
		test.AssertEqual(t, css_ast.ValuesEqual(values, expected), true)
	})
}

func expectParseError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog(logger.LevelNone, nil)
		_, ok := ParseValue(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, expected)
		test.AssertEqual(t, ok, false)
	})
}

func str(text string) css_ast.Value {
	return &css_ast.VString{Text: text}
}

func TestIdentifiers(t *testing.T) {
	expectValues(t, "auto", str("auto"))
	expectValues(t, "  auto  ", str("auto"))
	expectValues(t, "left top", str("left"), str("top"))
	expectValues(t, "none", &css_ast.VNone{})
	expectValues(t, "NONE", &css_ast.VNone{})
	expectValues(t, "inherit", &css_ast.VInherit{})
	expectValues(t, "initial", &css_ast.VInitial{})
	expectValues(t, "unset", str("unset"))
	expectValues(t, "/* comment */ auto /* comment */", str("auto"))
	expectValues(t, "")
}

func TestNumbers(t *testing.T) {
	expectValues(t, "0", &css_ast.VZero{})
	expectValues(t, "0.0", &css_ast.VZero{})
	expectValues(t, "1.5", &css_ast.VNumber{Value: 1.5})
	expectValues(t, "-3", &css_ast.VNumber{Value: -3})
	expectValues(t, "1e3", &css_ast.VNumber{Value: 1000})
	expectValues(t, "50%", &css_ast.VPercentage{Value: 50})
	expectValues(t, "-12.5%", &css_ast.VPercentage{Value: -12.5})
}

func TestDimensions(t *testing.T) {
	expectValues(t, "10px", &css_ast.VUnit{Value: 10, Suffix: "px"})
	expectValues(t, "0px", &css_ast.VUnit{Value: 0, Suffix: "px"})
	expectValues(t, "-10.43px", &css_ast.VUnit{Value: -10.43, Suffix: "px"})
	expectValues(t, "1em", &css_ast.VUnit{Value: 1, Suffix: "em"})
	expectValues(t, "2e2ms", &css_ast.VUnit{Value: 200, Suffix: "ms"})
	expectValues(t, "90DEG", &css_ast.VUnit{Value: 90, Suffix: "DEG"})
	expectValues(t, "1px 2em", &css_ast.VUnit{Value: 1, Suffix: "px"}, &css_ast.VUnit{Value: 2, Suffix: "em"})
}

func TestSplitDimension(t *testing.T) {
	check := func(text string, number string, unit string) {
		t.Helper()
		n, u := splitDimension(text)
		test.AssertEqual(t, n, number)
		test.AssertEqual(t, u, unit)
	}
	check("10px", "10", "px")
	check("-1.5em", "-1.5", "em")
	check("+2ex", "+2", "ex")
	check("1e3px", "1e3", "px")
	check("1e-3s", "1e-3", "s")
	check("1em", "1", "em")
	check("3e", "3", "e")
	check(".5rem", ".5", "rem")
}

func TestColors(t *testing.T) {
	expectValues(t, "#fff", &css_ast.VColor{RGBA: 0xFFFFFFFF})
	expectValues(t, "#ff000080", &css_ast.VColor{RGBA: 0xFF000080})
	expectValues(t, "#123456", &css_ast.VColor{RGBA: 0x123456FF})
	expectValues(t, "#zzz", str("#zzz"))
	expectValues(t, "#12345", str("#12345"))
	expectValues(t, "red", str("red"))
}

func TestStrings(t *testing.T) {
	expectValues(t, "'hello'", str("hello"))
	expectValues(t, "\"a b\"", str("a b"))
	expectValues(t, "'\\41 bc'", str("Abc"))
	expectValues(t, "'it\\'s'", str("it's"))
}

func TestSeparators(t *testing.T) {
	expectValues(t, "a, b", str("a"), &css_ast.VComma{}, str("b"))
	expectValues(t, "a,b", str("a"), &css_ast.VComma{}, str("b"))
	expectValues(t, "1px / 2px", &css_ast.VUnit{Value: 1, Suffix: "px"}, str("/"), &css_ast.VUnit{Value: 2, Suffix: "px"})
}

func TestFunctions(t *testing.T) {
	expectValues(t, "rgb(1, 2, 3)", &css_ast.VFunction{Name: "rgb", Args: []css_ast.Value{
		&css_ast.VNumber{Value: 1},
		&css_ast.VComma{},
		&css_ast.VNumber{Value: 2},
		&css_ast.VComma{},
		&css_ast.VNumber{Value: 3},
	}})
	expectValues(t, "foo()", &css_ast.VFunction{Name: "foo"})
	expectValues(t, "a(b(c)) d",
		&css_ast.VFunction{Name: "a", Args: []css_ast.Value{
			&css_ast.VFunction{Name: "b", Args: []css_ast.Value{str("c")}},
		}},
		str("d"))
	expectValues(t, "url(image.png)", &css_ast.VFunction{Name: "url", Args: []css_ast.Value{str("image.png")}})
	expectValues(t, "url('image.png')", &css_ast.VFunction{Name: "url", Args: []css_ast.Value{str("image.png")}})
}

func TestParseErrors(t *testing.T) {
	expectParseError(t, "rgb(1", "<stdin>: error: Expected \")\" to go with \"rgb(\" but found end of value\n")
	expectParseError(t, "a ; b", "<stdin>: error: Unexpected \";\"\n")
	expectParseError(t, "a { b }", "<stdin>: error: Unexpected \"{\"\n<stdin>: error: Unexpected \"}\"\n")
	expectParseError(t, "a)", "<stdin>: error: Unexpected \")\"\n")
	expectParseError(t, "'abc", "<stdin>: error: Unterminated string token\n")
}

func TestParseValueText(t *testing.T) {
	values, err := ParseValueText("10px auto")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, len(values), 2)

	_, err = ParseValueText("a ; b")
	test.AssertEqualWithDiff(t, err.Error(), "Unexpected \";\" (in \"a ; b\")")
}
