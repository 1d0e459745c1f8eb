package css_parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/css_colors"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// This reads the text of a single property value (the part after the ":" in
// a declaration) into the flat value sequence the matcher works on. Function
// arguments are read recursively into the arguments of the function value.
// Whitespace and comments only separate values and are dropped.

type token struct {
	text  string
	r     logger.Range
	kind  css.TokenType
	isEOF bool
}

type parser struct {
	log       logger.Log
	source    logger.Source
	tracker   logger.LineColumnTracker
	tokens    []token
	index     int
	prevError logger.Loc
	hasErrors bool
}

func ParseValue(log logger.Log, source logger.Source) ([]css_ast.Value, bool) {
	p := parser{
		log:       log,
		source:    source,
		tracker:   logger.MakeLineColumnTracker(&source),
		prevError: logger.Loc{Start: -1},
	}
	p.tokenize()
	values := p.parseValues(false)
	return values, !p.hasErrors
}

type ParseError struct {
	Text    string
	Message string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%s (in %q)", err.Message, err.Text)
}

// ParseValueText is a convenience wrapper around "ParseValue" that returns
// the first error instead of logging it
func ParseValueText(text string) ([]css_ast.Value, error) {
	log := logger.NewDeferLog(logger.LevelSilent, nil)
	values, ok := ParseValue(log, logger.Source{PrettyPath: "<value>", Contents: text})
	if !ok {
		for _, msg := range log.Done() {
			if msg.Kind == logger.Error {
				return nil, &ParseError{Text: text, Message: msg.Data.Text}
			}
		}
		return nil, &ParseError{Text: text, Message: "Invalid value"}
	}
	return values, nil
}

func (p *parser) tokenize() {
	lexer := css.NewLexer(parse.NewInputString(p.source.Contents))
	offset := int32(0)

	for {
		kind, data := lexer.Next()
		if kind == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				p.addError(logger.Range{Loc: logger.Loc{Start: offset}}, err.Error())
			}
			break
		}

		// The lexer hands back every byte of the input so the location of a
		// token is the total length of the tokens before it
		r := logger.Range{Loc: logger.Loc{Start: offset}, Len: int32(len(data))}
		offset += r.Len

		switch kind {
		case css.WhitespaceToken, css.CommentToken:
			continue
		}
		p.tokens = append(p.tokens, token{kind: kind, text: string(data), r: r})
	}
}

func (p *parser) addError(r logger.Range, text string) {
	p.hasErrors = true
	if r.Loc.Start > p.prevError.Start {
		p.log.AddError(&p.tracker, r, text)
		p.prevError = r.Loc
	}
}

func (p *parser) advance() {
	if p.index < len(p.tokens) {
		p.index++
	}
}

func (p *parser) current() token {
	if p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	return token{
		isEOF: true,
		r:     logger.Range{Loc: logger.Loc{Start: int32(len(p.source.Contents))}},
	}
}

func (p *parser) unexpected() {
	t := p.current()
	if t.isEOF {
		p.addError(t.r, "Unexpected end of value")
		return
	}
	p.addError(t.r, fmt.Sprintf("Unexpected %q", t.text))
}

func (p *parser) parseValues(insideFunction bool) []css_ast.Value {
	var values []css_ast.Value

	for {
		t := p.current()
		if t.isEOF || (insideFunction && t.kind == css.RightParenthesisToken) {
			return values
		}
		if value := p.parseValue(); value != nil {
			values = append(values, value)
		}
	}
}

func (p *parser) parseValue() css_ast.Value {
	t := p.current()

	switch t.kind {
	case css.IdentToken:
		p.advance()
		text := decodeEscapes(t.text)
		switch strings.ToLower(text) {
		case "none":
			return &css_ast.VNone{}
		case "inherit":
			return &css_ast.VInherit{}
		case "initial":
			return &css_ast.VInitial{}
		}
		return &css_ast.VString{Text: text}

	case css.NumberToken:
		p.advance()
		value, ok := p.parseNumber(t.r, t.text)
		if !ok {
			return nil
		}
		if value == 0 {
			return &css_ast.VZero{}
		}
		return &css_ast.VNumber{Value: value}

	case css.PercentageToken:
		p.advance()
		value, ok := p.parseNumber(t.r, t.text[:len(t.text)-1])
		if !ok {
			return nil
		}
		return &css_ast.VPercentage{Value: value}

	case css.DimensionToken:
		p.advance()
		number, unit := splitDimension(t.text)
		value, ok := p.parseNumber(t.r, number)
		if !ok {
			return nil
		}
		return &css_ast.VUnit{Value: value, Suffix: decodeEscapes(unit)}

	case css.HashToken:
		p.advance()
		if rgba, ok := css_colors.ParseHexColor(t.text[1:]); ok {
			return &css_ast.VColor{RGBA: rgba}
		}
		return &css_ast.VString{Text: decodeEscapes(t.text)}

	case css.StringToken:
		p.advance()
		if len(t.text) < 2 || t.text[len(t.text)-1] != t.text[0] {
			p.addError(t.r, "Unterminated string token")
			return nil
		}
		return &css_ast.VString{Text: decodeEscapes(t.text[1 : len(t.text)-1])}

	case css.CommaToken:
		p.advance()
		return &css_ast.VComma{}

	case css.DelimToken:
		if t.text == "/" {
			p.advance()
			return &css_ast.VString{Text: "/"}
		}

	case css.FunctionToken:
		p.advance()
		name := decodeEscapes(t.text[:len(t.text)-1])
		args := p.parseValues(true)
		if end := p.current(); end.isEOF {
			p.addError(end.r, fmt.Sprintf("Expected \")\" to go with \"%s(\" but found end of value", name))
		} else {
			p.advance()
		}
		return &css_ast.VFunction{Name: name, Args: args}

	case css.URLToken:
		p.advance()
		return &css_ast.VFunction{Name: "url", Args: []css_ast.Value{&css_ast.VString{Text: decodeURL(t.text)}}}

	case css.BadStringToken:
		p.addError(t.r, "Unterminated string token")
		p.advance()
		return nil

	case css.BadURLToken:
		p.addError(t.r, "Invalid URL token")
		p.advance()
		return nil
	}

	p.unexpected()
	p.advance()
	return nil
}

func (p *parser) parseNumber(r logger.Range, text string) (float64, bool) {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.addError(r, fmt.Sprintf("Invalid number %q", text))
		return 0, false
	}
	return value, true
}

// Splits "10.5e2px" into "10.5e2" and "px". An "e" only starts an exponent
// when a digit follows it, so "1em" is the number "1" with the unit "em".
func splitDimension(text string) (string, string) {
	i := 0
	n := len(text)
	isDigit := func(j int) bool { return j < n && text[j] >= '0' && text[j] <= '9' }

	if i < n && (text[i] == '+' || text[i] == '-') {
		i++
	}
	for isDigit(i) {
		i++
	}
	if i < n && text[i] == '.' && isDigit(i+1) {
		i++
		for isDigit(i) {
			i++
		}
	}
	if i < n && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < n && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if isDigit(j) {
			i = j
			for isDigit(i) {
				i++
			}
		}
	}
	return text[:i], text[i:]
}

func decodeURL(text string) string {
	text = strings.TrimSuffix(text[len("url("):], ")")
	return decodeEscapes(strings.TrimSpace(text))
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func decodeEscapes(text string) string {
	if strings.IndexByte(text, '\\') == -1 {
		return text
	}

	sb := strings.Builder{}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 == len(text) {
			sb.WriteByte(c)
			continue
		}

		i++
		c = text[i]

		// An escaped newline is a line continuation
		if c == '\n' {
			continue
		}

		if !isHex(c) {
			sb.WriteByte(c)
			continue
		}

		start := i
		for i < len(text) && i-start < 6 && isHex(text[i]) {
			i++
		}
		codePoint, _ := strconv.ParseUint(text[start:i], 16, 32)
		if codePoint == 0 || codePoint > 0x10FFFF || (codePoint >= 0xD800 && codePoint <= 0xDFFF) {
			codePoint = 0xFFFD
		}
		sb.WriteRune(rune(codePoint))

		// A single whitespace character after a hex escape is part of the escape
		if i < len(text) && (text[i] == ' ' || text[i] == '\t' || text[i] == '\n') {
			continue
		}
		i--
	}
	return sb.String()
}
