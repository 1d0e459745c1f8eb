package css_printer

import (
	"testing"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/css_parser"
	"github.com/csssyntax/csssyntax/internal/test"
)

func expectPrintedCommon(t *testing.T, name string, contents string, expected string, options Options) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		values, err := css_parser.ParseValueText(contents)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Error())
		}
		test.AssertEqualWithDiff(t, Print(values, options), expected)
	})
}

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	expectPrintedCommon(t, contents, contents, expected, Options{})
}

func expectPrintedValues(t *testing.T, name string, values []css_ast.Value, expected string, options Options) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Helper()
		test.AssertEqualWithDiff(t, Print(values, options), expected)
	})
}

func TestIdentifiers(t *testing.T) {
	expectPrinted(t, "red", "red")
	expectPrinted(t, "1px  solid   black", "1px solid black")
	expectPrinted(t, "sans-serif", "sans-serif")
	expectPrinted(t, "inherit", "inherit")
	expectPrinted(t, "none", "none")
	expectPrinted(t, "1px / 2px", "1px / 2px")
	expectPrinted(t, "#zz", "#zz")
}

func TestStrings(t *testing.T) {
	expectPrinted(t, "\"Helvetica Neue\", Arial, sans-serif", "\"Helvetica Neue\", Arial, sans-serif")
	expectPrinted(t, "'a\"b'", "'a\"b'")
	expectPrinted(t, "\"it's\"", "\"it's\"")
	expectPrinted(t, "\"abc\"", "abc")
	expectPrinted(t, "\"12\"", "\"12\"")
	expectPrinted(t, "\"\"", "\"\"")

	// These must not read back as keywords
	expectPrinted(t, "\"none\"", "\"none\"")
	expectPrinted(t, "'Inherit'", "\"Inherit\"")

	expectPrintedValues(t, "newline", []css_ast.Value{&css_ast.VString{Text: "a\nb"}}, "\"a\\a b\"", Options{})
	expectPrintedValues(t, "backslash", []css_ast.Value{&css_ast.VString{Text: "a\\b"}}, "\"a\\\\b\"", Options{})
	expectPrintedValues(t, "non-ascii", []css_ast.Value{&css_ast.VString{Text: "café"}}, "café", Options{})
	expectPrintedValues(t, "non-ascii [ascii]", []css_ast.Value{&css_ast.VString{Text: "café"}}, "\"caf\\e9\"", Options{ASCIIOnly: true})
}

func TestNumbers(t *testing.T) {
	expectPrinted(t, "10.50px", "10.5px")
	expectPrinted(t, "50%", "50%")
	expectPrinted(t, "0", "0")
	expectPrinted(t, "-1.25em", "-1.25em")
	expectPrinted(t, "1.0", "1")

	one := func(suffix string) []css_ast.Value {
		return []css_ast.Value{&css_ast.VUnit{Value: 1, Suffix: suffix}}
	}
	expectPrintedValues(t, "unit e3", one("e3"), "1\\65 3", Options{})
	expectPrintedValues(t, "unit 2x", one("2x"), "1\\32x", Options{})
	expectPrintedValues(t, "unit px", one("px"), "1px", Options{})
}

func TestColors(t *testing.T) {
	expectPrinted(t, "#FFFFFF", "#fff")
	expectPrinted(t, "#aabbcc", "#abc")
	expectPrinted(t, "#abc", "#abc")
	expectPrinted(t, "#123456", "#123456")
	expectPrinted(t, "#11223344", "#1234")
	expectPrinted(t, "#ff000080", "#ff000080")
}

func TestFunctions(t *testing.T) {
	expectPrinted(t, "rgb(1,2,3)", "rgb(1, 2, 3)")
	expectPrinted(t, "translate( 1px , 2px )", "translate(1px, 2px)")
	expectPrinted(t, "url(a.png)", "url(a.png)")

	url := func(text string) []css_ast.Value {
		return []css_ast.Value{&css_ast.VFunction{Name: "url", Args: []css_ast.Value{&css_ast.VString{Text: text}}}}
	}
	expectPrintedValues(t, "url with space", url("a b.png"), "url(a\\ b.png)", Options{})
	expectPrintedValues(t, "url with quote", url("a'b c"), "url(\"a'b c\")", Options{})
}

func TestLists(t *testing.T) {
	values := []css_ast.Value{
		&css_ast.VList{Items: []css_ast.Value{&css_ast.VString{Text: "a"}, &css_ast.VString{Text: "b"}}},
		&css_ast.VComma{},
		&css_ast.VString{Text: "c d"},
	}
	expectPrintedValues(t, "list", values, "a b, \"c d\"", Options{})
}
