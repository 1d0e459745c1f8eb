package syntax_parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
	"github.com/csssyntax/csssyntax/internal/syntax_printer"
	"github.com/csssyntax/csssyntax/internal/test"
)

func expectPrinted(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog(logger.LevelNone, nil)
		tree, ok := Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, "")
		test.AssertEqual(t, ok, true)
		test.AssertEqualWithDiff(t, syntax_printer.Print(tree), expected)

		// Printing must be stable
		again, err := Compile(expected)
		test.AssertEqual(t, err, nil)
		test.AssertEqualWithDiff(t, syntax_printer.Print(again), expected)
	})
}

func expectParseError(t *testing.T, contents string, expected string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		log := logger.NewDeferLog(logger.LevelNone, nil)
		tree, ok := Parse(log, test.SourceForTest(contents))
		msgs := log.Done()
		text := ""
		for _, msg := range msgs {
			text += msg.String(logger.OutputOptions{}, logger.TerminalInfo{})
		}
		test.AssertEqualWithDiff(t, text, expected)
		test.AssertEqual(t, ok, false)
		test.AssertEqual(t, tree.IsEmpty(), true)
	})
}

func expectCompileError(t *testing.T, contents string, message string, leftover string) {
	t.Helper()
	t.Run(contents, func(t *testing.T) {
		t.Helper()
		_, err := Compile(contents)
		var compileErr *CompileError
		if !errors.As(err, &compileErr) {
			t.Fatalf("Expected a compile error for %q", contents)
		}
		test.AssertEqualWithDiff(t, compileErr.Message, message)
		test.AssertEqualWithDiff(t, compileErr.Leftover, leftover)
		test.AssertEqual(t, compileErr.Text, contents)
	})
}

func TestEmpty(t *testing.T) {
	for _, contents := range []string{"", " ", "\t\n "} {
		tree, err := Compile(contents)
		test.AssertEqual(t, err, nil)
		test.AssertEqual(t, tree.IsEmpty(), true)
	}
}

func TestPrecedence(t *testing.T) {
	expectPrinted(t, "left | right && top", "[ left | right ] && top")
	expectPrinted(t, "a b | c", "[ a b ] | c")
	expectPrinted(t, "a || b | c", "a || [ b | c ]")
	expectPrinted(t, "a && b || c", "a && [ b || c ]")
	expectPrinted(t, "a | b || c && d e", "[ [ a | b ] || c ] && [ d e ]")
	expectPrinted(t, "[ a && b ] | c", "[ a && b ] | c")
	expectPrinted(t, "[ [ a ] ]", "a")
	expectPrinted(t, "[ a b ]", "a b")
}

func TestPrecedenceTree(t *testing.T) {
	tree, err := Compile("left | right && top")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, len(tree.Roots), 1)

	root := tree.Roots[0].Data.(*syntax_ast.CGroup)
	test.AssertEqual(t, root.Combinator, syntax_ast.AllAnyOrder)
	test.AssertEqual(t, len(root.Children), 2)

	left := root.Children[0].Data.(*syntax_ast.CGroup)
	test.AssertEqual(t, left.Combinator, syntax_ast.ExactlyOne)
	test.AssertEqual(t, left.Children[0].Data.(*syntax_ast.CKeyword).Name, "left")
	test.AssertEqual(t, left.Children[1].Data.(*syntax_ast.CKeyword).Name, "right")
	test.AssertEqual(t, root.Children[1].Data.(*syntax_ast.CKeyword).Name, "top")
}

func TestMultipliers(t *testing.T) {
	expectPrinted(t, "a*", "a*")
	expectPrinted(t, "a+", "a+")
	expectPrinted(t, "a?", "a?")
	expectPrinted(t, "[ a b ]!", "[ a b ]!")
	expectPrinted(t, "a{2}", "a{2}")
	expectPrinted(t, "a{1,3}", "a{1,3}")
	expectPrinted(t, "a{2,}", "a{2,}")
	expectPrinted(t, "a{ 1 , 3 }", "a{1,3}")
	expectPrinted(t, "a#", "a#")
	expectPrinted(t, "a #", "a#")
	expectPrinted(t, "a#{2}", "a#{2}")
	expectPrinted(t, "a#{1,4}", "a#{1,4}")
	expectPrinted(t, "[ a | b ]#", "[ a | b ]#")
	expectPrinted(t, "foo bar{1,3} baz", "foo bar{1,3} baz")
	expectPrinted(t, "[ a+ ]?", "[ a+ ]?")
	expectPrinted(t, "[ a ]?", "a?")

	tree, _ := Compile("a#")
	test.AssertEqual(t, tree.Roots[0].Multiplier, syntax_ast.CommaSeparated(1, syntax_ast.Unbounded))
	tree, _ = Compile("a{3}")
	test.AssertEqual(t, tree.Roots[0].Multiplier, syntax_ast.Between(3, 3))
	tree, _ = Compile("a")
	test.AssertEqual(t, tree.Roots[0].Multiplier, syntax_ast.Multiplier{Kind: syntax_ast.MOnce})
}

func TestDefinitions(t *testing.T) {
	expectPrinted(t, "<length>", "<length>")
	expectPrinted(t, "<length [0,∞]>", "<length [0,∞]>")
	expectPrinted(t, "<integer [-∞,0]>", "<integer [-∞,0]>")
	expectPrinted(t, "<number [0,inf]>", "<number [0,∞]>")
	expectPrinted(t, "<number [-inf,inf]>", "<number [-∞,∞]>")
	expectPrinted(t, "<integer [1,]>", "<integer [1,]>")
	expectPrinted(t, "<integer [,10]>", "<integer [,10]>")
	expectPrinted(t, "<integer [ 1 , 10 ]>", "<integer [1,10]>")
	expectPrinted(t, "<'margin-top'>", "<'margin-top'>")
	expectPrinted(t, "<color()>", "<color()>")
	expectPrinted(t, "<length-percentage>+", "<length-percentage>+")

	tree, _ := Compile("<integer [1,10]>")
	def := tree.Roots[0].Data.(*syntax_ast.CDefinition)
	test.AssertEqual(t, def.Datatype, "integer")
	test.AssertEqual(t, def.Quoted, false)
	test.AssertEqual(t, def.Range, syntax_ast.Range{Min: syntax_ast.Finite(1), Max: syntax_ast.Finite(10)})

	tree, _ = Compile("<'width'>")
	def = tree.Roots[0].Data.(*syntax_ast.CDefinition)
	test.AssertEqual(t, def.Datatype, "width")
	test.AssertEqual(t, def.Quoted, true)
}

func TestPrimitives(t *testing.T) {
	expectPrinted(t, "auto", "auto")
	expectPrinted(t, "'margin-top'", "'margin-top'")
	expectPrinted(t, "'['", "'['")
	expectPrinted(t, "a , b / c", "a , b / c")
	expectPrinted(t, "inherit | initial | unset", "inherit | initial | unset")
	expectPrinted(t, "0 | 10px | -10.43px | 50% | 1.5", "0 | 10px | -10.43px | 50% | 1.5")
	expectPrinted(t, "foo()", "foo()")
	expectPrinted(t, "rgb( <number>#{3} )", "rgb( <number>#{3} )")
	expectPrinted(t, "attr( <custom-ident> [ , <string> ]? )", "attr( <custom-ident> [ , <string> ]? )")

	tree, _ := Compile("'margin-top'")
	test.AssertEqual(t, tree.Roots[0].Data.(*syntax_ast.CProperty).Name, "margin-top")
	tree, _ = Compile("'['")
	test.AssertEqual(t, tree.Roots[0].Data.(*syntax_ast.CLiteral).Text, "[")
	tree, _ = Compile("INHERIT")
	_, ok := tree.Roots[0].Data.(*syntax_ast.CInherit)
	test.AssertEqual(t, ok, true)
	tree, _ = Compile("inheritance")
	test.AssertEqual(t, tree.Roots[0].Data.(*syntax_ast.CKeyword).Name, "inheritance")

	tree, _ = Compile("0")
	test.AssertEqual(t, css_ast.ValueEqual(tree.Roots[0].Data.(*syntax_ast.CValue).Value, &css_ast.VZero{}), true)
	tree, _ = Compile("-10.43px")
	test.AssertEqual(t, css_ast.ValueEqual(tree.Roots[0].Data.(*syntax_ast.CValue).Value, &css_ast.VUnit{Value: -10.43, Suffix: "px"}), true)
}

func TestUnit(t *testing.T) {
	expectPrinted(t, "unit(10..10000 khz)", "unit(10..10000 khz)")
	expectPrinted(t, "unit(10..10000khz)", "unit(10..10000 khz)")
	expectPrinted(t, "unit(0.. ms|s)", "unit(0.. ms|s)")
	expectPrinted(t, "unit(..5 px)", "unit(..5 px)")
	expectPrinted(t, "unit(px|em)", "unit(px|em)")
	expectPrinted(t, "unit(5)", "unit(5..)")
	expectPrinted(t, "unit()", "unit()")

	tree, _ := Compile("unit(0.. ms | s)")
	unit := tree.Roots[0].Data.(*syntax_ast.CUnit)
	test.AssertEqual(t, unit.From, 0.0)
	test.AssertEqual(t, strings.Join(unit.Suffixes, ","), "ms,s")
}

func TestParseErrors(t *testing.T) {
	expectParseError(t, "auto |", "<stdin>: error: Expected component but found end of grammar\n")
	expectParseError(t, "a b )", "<stdin>: error: Unexpected \")\"\n")
	expectParseError(t, "[ a | b", "<stdin>: error: Expected \"]\" to go with \"[\" but found end of grammar\n")
	expectParseError(t, "<length", "<stdin>: error: Expected \">\" to go with \"<\" but found end of grammar\n")
	expectParseError(t, "<>", "<stdin>: error: Expected identifier but found \">\"\n")
	expectParseError(t, "'abc", "<stdin>: error: Unterminated string token\n")
	expectParseError(t, "foo( a", "<stdin>: error: Expected \")\" to go with \"(\" but found end of grammar\n")
	expectParseError(t, "a{x}", "<stdin>: error: Expected number but found \"x\"\n")
	expectParseError(t, "<integer [1.5,2]>", "<stdin>: error: Expected integer but found \"1.5\"\n")
	expectParseError(t, "a && && b", "<stdin>: error: Expected component but found \"&&\"\n")
}

func TestCompileErrors(t *testing.T) {
	expectCompileError(t, "auto |", "Expected component but found end of grammar", "")
	expectCompileError(t, "a+?", "Unexpected \"?\"", "?")
	expectCompileError(t, "a b )", "Unexpected \")\"", ")")
	expectCompileError(t, "<length [5,1]>", "The range minimum 5 is larger than the maximum 1", "[5,1]>")
	expectCompileError(t, "a{3,1}", "The repeat minimum 3 is larger than the maximum 1", "{3,1}")
	expectCompileError(t, "'abc", "Unterminated string token", "'abc")
	expectCompileError(t, "unit(10..1 px)", "The unit range minimum 10 is larger than the maximum 1", ")")
}
