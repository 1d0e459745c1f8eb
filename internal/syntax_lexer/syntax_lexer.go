package syntax_lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/csssyntax/csssyntax/internal/logger"
)

// The lexer converts a value definition grammar to a stream of tokens. Like
// the CSS lexer it runs to completion before parsing begins, resulting in a
// single array of all tokens in the grammar. Whitespace is not a token. It
// is recorded on the token that follows it instead because multipliers are
// only valid directly after the component they apply to.

type T uint8

const eof = -1

const (
	TEndOfFile T = iota

	TAmpAmp // "&&"
	TAsterisk
	TBar
	TBarBar // "||"
	TCloseBrace
	TCloseBracket
	TCloseParen
	TComma
	TDelim
	TDimension
	TDotDot // ".."
	TExclamation
	TFunction
	TGreaterThan
	THash
	TIdent
	TInfinity         // "∞"
	TNegativeInfinity // "-∞"
	TLessThan
	TNumber
	TOpenBrace
	TOpenBracket
	TOpenParen
	TPercentage
	TPlus
	TQuestion
	TSlash
	TString
)

var tokenToString = []string{
	"end of grammar",

	"\"&&\"",
	"\"*\"",
	"\"|\"",
	"\"||\"",
	"\"}\"",
	"\"]\"",
	"\")\"",
	"\",\"",
	"delimiter",
	"dimension",
	"\"..\"",
	"\"!\"",
	"function token",
	"\">\"",
	"\"#\"",
	"identifier",
	"\"∞\"",
	"\"-∞\"",
	"\"<\"",
	"number",
	"\"{\"",
	"\"[\"",
	"\"(\"",
	"percentage",
	"\"+\"",
	"\"?\"",
	"\"/\"",
	"quoted string",
}

func (t T) String() string {
	return tokenToString[t]
}

type Token struct {
	Range logger.Range

	// The division between the number and the unit for "TDimension" tokens
	UnitOffset uint16

	Kind T

	HasWhitespaceBefore bool
}

func (token Token) DecodedText(contents string) string {
	raw := contents[token.Range.Loc.Start:token.Range.End()]

	switch token.Kind {
	case TFunction:
		return raw[:len(raw)-1]

	case TString:
		if len(raw) < 2 || raw[len(raw)-1] != raw[0] {
			// Unterminated
			return decodeEscapes(raw[1:])
		}
		return decodeEscapes(raw[1 : len(raw)-1])
	}

	return raw
}

func decodeEscapes(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}
	sb := strings.Builder{}
	for i := 0; i < len(text); i++ {
		if c := text[i]; c == '\\' && i+1 < len(text) {
			i++
			sb.WriteByte(text[i])
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

type lexer struct {
	log       logger.Log
	source    logger.Source
	tracker   logger.LineColumnTracker
	current   int
	codePoint rune
	Token     Token
}

func Tokenize(log logger.Log, source logger.Source) (tokens []Token) {
	lexer := lexer{
		log:     log,
		source:  source,
		tracker: logger.MakeLineColumnTracker(&source),
	}
	lexer.step()
	lexer.next()
	for lexer.Token.Kind != TEndOfFile {
		tokens = append(tokens, lexer.Token)
		lexer.next()
	}
	return
}

func (lexer *lexer) step() {
	codePoint, width := utf8.DecodeRuneInString(lexer.source.Contents[lexer.current:])

	// Use -1 to indicate the end of the file
	if width == 0 {
		codePoint = eof
	}

	lexer.codePoint = codePoint
	lexer.Token.Range.Len = int32(lexer.current) - lexer.Token.Range.Loc.Start
	lexer.current += width
}

func (lexer *lexer) peek(offset int) rune {
	i := lexer.current + offset
	if i >= len(lexer.source.Contents) {
		return eof
	}
	c, _ := utf8.DecodeRuneInString(lexer.source.Contents[i:])
	return c
}

func (lexer *lexer) next() {
	hasWhitespaceBefore := false

	for {
		lexer.Token = Token{
			Range:               logger.Range{Loc: logger.Loc{Start: lexer.Token.Range.End()}},
			HasWhitespaceBefore: hasWhitespaceBefore,
		}

		switch lexer.codePoint {
		case eof:
			lexer.Token.Kind = TEndOfFile

		case ' ', '\t', '\n', '\r', '\f':
			lexer.step()
			for isWhitespace(lexer.codePoint) {
				lexer.step()
			}
			hasWhitespaceBefore = true
			continue

		case '&':
			lexer.step()
			if lexer.codePoint == '&' {
				lexer.step()
				lexer.Token.Kind = TAmpAmp
			} else {
				lexer.Token.Kind = TDelim
			}

		case '|':
			lexer.step()
			if lexer.codePoint == '|' {
				lexer.step()
				lexer.Token.Kind = TBarBar
			} else {
				lexer.Token.Kind = TBar
			}

		case '.':
			if lexer.peek(0) == '.' {
				lexer.step()
				lexer.step()
				lexer.Token.Kind = TDotDot
			} else if isDigit(lexer.peek(0)) {
				lexer.consumeNumeric()
			} else {
				lexer.step()
				lexer.Token.Kind = TDelim
			}

		case '-':
			if c := lexer.peek(0); isDigit(c) || (c == '.' && isDigit(lexer.peek(1))) {
				lexer.consumeNumeric()
			} else if c == '∞' {
				lexer.step()
				lexer.step()
				lexer.Token.Kind = TNegativeInfinity
			} else if isNameStart(c) || c == '-' {
				lexer.consumeIdentLike()
			} else {
				lexer.step()
				lexer.Token.Kind = TDelim
			}

		case '∞':
			lexer.step()
			lexer.Token.Kind = TInfinity

		case '\'', '"':
			lexer.consumeString()

		case '*':
			lexer.step()
			lexer.Token.Kind = TAsterisk

		case '+':
			lexer.step()
			lexer.Token.Kind = TPlus

		case '?':
			lexer.step()
			lexer.Token.Kind = TQuestion

		case '!':
			lexer.step()
			lexer.Token.Kind = TExclamation

		case '#':
			lexer.step()
			lexer.Token.Kind = THash

		case ',':
			lexer.step()
			lexer.Token.Kind = TComma

		case '/':
			lexer.step()
			lexer.Token.Kind = TSlash

		case '<':
			lexer.step()
			lexer.Token.Kind = TLessThan

		case '>':
			lexer.step()
			lexer.Token.Kind = TGreaterThan

		case '(':
			lexer.step()
			lexer.Token.Kind = TOpenParen

		case ')':
			lexer.step()
			lexer.Token.Kind = TCloseParen

		case '[':
			lexer.step()
			lexer.Token.Kind = TOpenBracket

		case ']':
			lexer.step()
			lexer.Token.Kind = TCloseBracket

		case '{':
			lexer.step()
			lexer.Token.Kind = TOpenBrace

		case '}':
			lexer.step()
			lexer.Token.Kind = TCloseBrace

		default:
			if isDigit(lexer.codePoint) {
				lexer.consumeNumeric()
			} else if isNameStart(lexer.codePoint) {
				lexer.consumeIdentLike()
			} else {
				lexer.step()
				lexer.Token.Kind = TDelim
			}
		}

		return
	}
}

func (lexer *lexer) consumeString() {
	quote := lexer.codePoint
	lexer.step()

	for {
		switch lexer.codePoint {
		case '\\':
			lexer.step()
			if lexer.codePoint != eof {
				lexer.step()
			}
			continue

		case eof:
			lexer.log.AddError(&lexer.tracker, lexer.Token.Range, "Unterminated string token")
			lexer.Token.Kind = TString
			return

		case quote:
			lexer.step()
			lexer.Token.Kind = TString
			return
		}
		lexer.step()
	}
}

func (lexer *lexer) consumeName() {
	for isNameContinue(lexer.codePoint) {
		lexer.step()
	}
}

func (lexer *lexer) consumeIdentLike() {
	lexer.consumeName()
	if lexer.codePoint == '(' {
		lexer.step()
		lexer.Token.Kind = TFunction
	} else {
		lexer.Token.Kind = TIdent
	}
}

func (lexer *lexer) consumeNumeric() {
	if lexer.codePoint == '-' {
		lexer.step()
	}
	for isDigit(lexer.codePoint) {
		lexer.step()
	}

	// Don't consume the first "." of a ".." range operator
	if lexer.codePoint == '.' && isDigit(lexer.peek(0)) {
		lexer.step()
		for isDigit(lexer.codePoint) {
			lexer.step()
		}
	}

	if lexer.codePoint == '%' {
		lexer.step()
		lexer.Token.Kind = TPercentage
	} else if isNameStart(lexer.codePoint) {
		lexer.Token.UnitOffset = uint16(lexer.Token.Range.Len)
		lexer.consumeName()
		lexer.Token.Kind = TDimension
	} else {
		lexer.Token.Kind = TNumber
	}
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || (c >= 0x80 && c != '∞')
}

func isNameContinue(c rune) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}
