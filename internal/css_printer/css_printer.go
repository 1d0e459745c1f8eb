package css_printer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// This prints a value sequence back out as CSS text that reads back into the
// same sequence. Strings are quoted unless they can be printed as an
// identifier and colors are printed in their shortest hexadecimal form.

type Options struct {
	// Use hexadecimal escapes for all non-ASCII characters
	ASCIIOnly bool
}

type printer struct {
	options Options
	css     []byte
}

func Print(values []css_ast.Value, options Options) string {
	p := printer{options: options}
	p.printValues(values)
	return string(p.css)
}

func (p *printer) print(text string) {
	p.css = append(p.css, text...)
}

func (p *printer) printValues(values []css_ast.Value) {
	for i, value := range values {
		if _, ok := value.(*css_ast.VComma); ok {
			p.css = append(p.css, ',')
			continue
		}
		if i > 0 {
			p.css = append(p.css, ' ')
		}
		p.printValue(value)
	}
}

func (p *printer) printValue(value css_ast.Value) {
	switch v := value.(type) {
	case *css_ast.VNone:
		p.print("none")

	case *css_ast.VInherit:
		p.print("inherit")

	case *css_ast.VInitial:
		p.print("initial")

	case *css_ast.VZero:
		p.print("0")

	case *css_ast.VComma:
		p.print(",")

	case *css_ast.VColor:
		p.printColor(v.RGBA)

	case *css_ast.VNumber:
		p.printNumber(v.Value)

	case *css_ast.VPercentage:
		p.printNumber(v.Value)
		p.print("%")

	case *css_ast.VUnit:
		p.printNumber(v.Value)
		p.printUnit(v.Suffix)

	case *css_ast.VString:
		p.printString(v.Text)

	case *css_ast.VFunction:
		if url, ok := urlText(v); ok {
			p.print("url(")
			p.printQuotedWithQuote(url, bestQuoteCharForString(url, true))
			p.print(")")
			return
		}
		p.print(v.Name)
		p.print("(")
		p.printValues(v.Args)
		p.print(")")

	case *css_ast.VList:
		p.printValues(v.Items)

	default:
		panic("Internal error")
	}
}

func urlText(fn *css_ast.VFunction) (string, bool) {
	if strings.EqualFold(fn.Name, "url") && len(fn.Args) == 1 {
		if str, ok := fn.Args[0].(*css_ast.VString); ok {
			return str.Text, true
		}
	}
	return "", false
}

func (p *printer) printNumber(value float64) {
	p.css = strconv.AppendFloat(p.css, value, 'f', -1, 64)
}

// Colors are stored as 0xRRGGBBAA
func (p *printer) printColor(rgba uint32) {
	text := fmt.Sprintf("%08x", rgba)
	if strings.HasSuffix(text, "ff") {
		text = text[:6]
	}

	// "#aabbcc" => "#abc"
	short := true
	for i := 0; i < len(text); i += 2 {
		if text[i] != text[i+1] {
			short = false
			break
		}
	}
	if short {
		compact := make([]byte, 0, len(text)/2)
		for i := 0; i < len(text); i += 2 {
			compact = append(compact, text[i])
		}
		text = string(compact)
	}

	p.css = append(p.css, '#')
	p.print(text)
}

var cssWideKeywords = map[string]bool{
	"none":    true,
	"inherit": true,
	"initial": true,
}

func (p *printer) printString(text string) {
	switch {
	case text == "/":
		p.print(text)

	// Hash tokens that were not colors
	case len(text) > 1 && text[0] == '#' && isNameOnly(text[1:]):
		p.print(text)

	// These would read back as keywords instead of as strings
	case cssWideKeywords[strings.ToLower(text)]:
		p.printQuoted(text)

	case isIdent(text) && !(p.options.ASCIIOnly && hasNonASCII(text)):
		p.print(text)

	default:
		p.printQuoted(text)
	}
}

// Units are printed directly after the number so anything that would read
// back as part of the number has to be escaped
func (p *printer) printUnit(text string) {
	if text == "" {
		return
	}

	initialEscape := escapeNone
	if c := text[0]; c >= '0' && c <= '9' {
		// Unit: "2x"
		initialEscape = escapeHex
	} else if c == 'e' || c == 'E' {
		if len(text) >= 2 && text[1] >= '0' && text[1] <= '9' {
			// Unit: "e2x"
			initialEscape = escapeHex
		} else if len(text) >= 3 && text[1] == '-' && text[2] >= '0' && text[2] <= '9' {
			// Unit: "e-2x"
			initialEscape = escapeHex
		}
	}

	for i, c := range text {
		escape := escapeNone
		if i == 0 {
			escape = initialEscape
		}
		if c >= 0x80 && p.options.ASCIIOnly {
			escape = escapeHex
		} else if !isNameContinue(c) {
			escape = escapeBackslash
		}
		p.printWithEscape(c, escape, text[i:], true)
	}
}

const quoteForURL byte = 0

func bestQuoteCharForString(text string, forURL bool) byte {
	forURLCost := 0
	singleCost := 2
	doubleCost := 2

	for _, c := range text {
		switch c {
		case '\'':
			forURLCost++
			singleCost++

		case '"':
			forURLCost++
			doubleCost++

		case '(', ')', ' ', '\t':
			forURLCost++

		case '\\', '\n', '\r', '\f':
			forURLCost++
			singleCost++
			doubleCost++
		}
	}

	// Quotes can sometimes be omitted for URL tokens
	if forURL && forURLCost < singleCost && forURLCost < doubleCost {
		return quoteForURL
	}

	// Prefer double quotes to single quotes if there is no cost difference
	if singleCost < doubleCost {
		return '\''
	}

	return '"'
}

func (p *printer) printQuoted(text string) {
	p.printQuotedWithQuote(text, bestQuoteCharForString(text, false))
}

type escapeKind uint8

const (
	escapeNone escapeKind = iota
	escapeBackslash
	escapeHex
)

func (p *printer) printWithEscape(c rune, escape escapeKind, remainingText string, mayNeedWhitespaceAfter bool) {
	var temp [utf8.UTFMax]byte

	if escape == escapeBackslash && ((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
		// Hexadecimal characters cannot use a plain backslash escape
		escape = escapeHex
	}

	switch escape {
	case escapeNone:
		width := utf8.EncodeRune(temp[:], c)
		p.css = append(p.css, temp[:width]...)

	case escapeBackslash:
		p.css = append(p.css, '\\')
		width := utf8.EncodeRune(temp[:], c)
		p.css = append(p.css, temp[:width]...)

	case escapeHex:
		text := fmt.Sprintf("\\%x", c)
		p.css = append(p.css, text...)

		// Make sure the next character is not interpreted as part of the escape sequence
		if len(text) < 1+6 {
			if next := utf8.RuneLen(c); next < len(remainingText) {
				c = rune(remainingText[next])
				if c == ' ' || c == '\t' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
					p.css = append(p.css, ' ')
				}
			} else if mayNeedWhitespaceAfter {
				// The value that follows is separated by a space, which the escape
				// would otherwise swallow
				p.css = append(p.css, ' ')
			}
		}
	}
}

func (p *printer) printQuotedWithQuote(text string, quote byte) {
	if quote != quoteForURL {
		p.css = append(p.css, quote)
	}

	n := len(text)
	i := 0
	runStart := 0

	for i < n {
		c, width := utf8.DecodeRuneInString(text[i:])
		escape := escapeNone

		switch c {
		case '\x00', '\r', '\n', '\f':
			// Use a hexadecimal escape for characters that would be invalid escapes
			escape = escapeHex

		case '\\', rune(quote):
			escape = escapeBackslash

		case '(', ')', ' ', '\t', '"', '\'':
			// These characters must be escaped in URL tokens
			if quote == quoteForURL {
				escape = escapeBackslash
			}

		default:
			if (p.options.ASCIIOnly && c >= 0x80) || c == '\uFEFF' {
				escape = escapeHex
			}
		}

		if escape != escapeNone {
			if runStart < i {
				p.css = append(p.css, text[runStart:i]...)
			}
			p.printWithEscape(c, escape, text[i:], false)
			runStart = i + width
		}
		i += width
	}

	if runStart < n {
		p.css = append(p.css, text[runStart:]...)
	}

	if quote != quoteForURL {
		p.css = append(p.css, quote)
	}
}

// The text must read back as exactly one identifier with no escapes
func isIdent(text string) bool {
	if strings.IndexByte(text, '\\') != -1 {
		return false
	}
	lexer := css.NewLexer(parse.NewInputString(text))
	kind, data := lexer.Next()
	return kind == css.IdentToken && len(data) == len(text)
}

func isNameOnly(text string) bool {
	for _, c := range text {
		if !isNameContinue(c) {
			return false
		}
	}
	return true
}

func isNameContinue(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-' || c >= 0x80
}

func hasNonASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			return true
		}
	}
	return false
}
