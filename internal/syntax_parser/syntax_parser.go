package syntax_parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
	"github.com/csssyntax/csssyntax/internal/syntax_lexer"
)

// This parses the value definition syntax from the CSS specifications:
// https://drafts.csswg.org/css-values-4/#value-defs
//
// The operator layers from loosest to tightest are "&&", "||", "|" and then
// juxtaposition. A layer that only parses a single item returns that item
// directly so there are no groups with one child (except when a bracketed
// item with a multiplier gets another multiplier, as in "[ a+ ]?").

type parser struct {
	log     logger.Log
	source  logger.Source
	tracker logger.LineColumnTracker
	tokens  []syntax_lexer.Token
	index   int
	end     int
	err     *CompileError
}

// The parser bails out of the recursion on the first error
type parsePanic struct{}

type CompileError struct {
	// The complete grammar that failed to compile
	Text string

	// The unparsed text starting at the problem
	Leftover string

	Message string
	Range   logger.Range
}

func (err *CompileError) Error() string {
	return fmt.Sprintf("%s (in %q at %q)", err.Message, err.Text, err.Leftover)
}

// Compile parses a grammar string on its own. Any problem is returned as a
// "*CompileError" instead of being logged.
func Compile(text string) (syntax_ast.Tree, error) {
	tree, err := parse(logger.NewDeferLog(logger.LevelSilent, nil), logger.Source{PrettyPath: "<grammar>", Contents: text})
	if err != nil {
		return syntax_ast.Tree{}, err
	}
	return tree, nil
}

// Parse compiles a grammar and logs any problem against the given source
func Parse(log logger.Log, source logger.Source) (syntax_ast.Tree, bool) {
	tree, err := parse(log, source)
	return tree, err == nil
}

func parse(log logger.Log, source logger.Source) (tree syntax_ast.Tree, err *CompileError) {
	if strings.TrimSpace(source.Contents) == "" {
		return
	}

	lexerLog := logger.NewDeferLog(logger.LevelSilent, nil)
	p := parser{
		log:     log,
		source:  source,
		tracker: logger.MakeLineColumnTracker(&source),
		tokens:  syntax_lexer.Tokenize(lexerLog, source),
	}
	p.end = len(p.tokens)

	// Lexer errors become compile errors for this grammar
	for _, msg := range lexerLog.Done() {
		if msg.Kind == logger.Error {
			log.AddMsg(msg)
			if p.err == nil {
				p.err = p.newError(source.Contents, logger.Range{Loc: logger.Loc{Start: int32(len(source.Contents))}}, msg.Data.Text)
				if loc := msg.Data.Location; loc != nil {
					p.err.Leftover = loc.LineText[loc.Column:]
				}
			}
		}
	}
	if p.err != nil {
		return tree, p.err
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parsePanic); !ok {
				panic(r)
			}
			tree = syntax_ast.Tree{}
			err = p.err
		}
	}()

	root := p.parseAllAnyOrder()
	if !p.peek(syntax_lexer.TEndOfFile) {
		p.unexpected()
	}
	tree.Roots = []syntax_ast.Component{root}
	return
}

func (p *parser) newError(text string, r logger.Range, message string) *CompileError {
	leftover := ""
	if int(r.Loc.Start) < len(text) {
		leftover = text[r.Loc.Start:]
	}
	return &CompileError{
		Text:     text,
		Leftover: leftover,
		Message:  message,
		Range:    r,
	}
}

func (p *parser) fail(r logger.Range, text string) {
	p.log.AddError(&p.tracker, r, text)
	p.err = p.newError(p.source.Contents, r, text)
	panic(parsePanic{})
}

func (p *parser) advance() {
	if p.index < p.end {
		p.index++
	}
}

func (p *parser) at(index int) syntax_lexer.Token {
	if index < p.end {
		return p.tokens[index]
	}
	return syntax_lexer.Token{
		Kind:  syntax_lexer.TEndOfFile,
		Range: logger.Range{Loc: logger.Loc{Start: int32(len(p.source.Contents))}},
	}
}

func (p *parser) current() syntax_lexer.Token {
	return p.at(p.index)
}

func (p *parser) raw() string {
	t := p.current()
	return p.source.Contents[t.Range.Loc.Start:t.Range.End()]
}

func (p *parser) decoded() string {
	return p.current().DecodedText(p.source.Contents)
}

func (p *parser) peek(kind syntax_lexer.T) bool {
	return kind == p.current().Kind
}

// Multipliers must directly follow the component they apply to
func (p *parser) peekAdjacent(kind syntax_lexer.T) bool {
	t := p.current()
	return t.Kind == kind && !t.HasWhitespaceBefore
}

func (p *parser) eat(kind syntax_lexer.T) bool {
	if p.peek(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(kind syntax_lexer.T) {
	p.expectWithMatchingLoc(kind, logger.Loc{Start: -1})
}

func (p *parser) expectWithMatchingLoc(kind syntax_lexer.T, matchingLoc logger.Loc) {
	if p.eat(kind) {
		return
	}

	t := p.current()
	expected := kind.String()
	var text string

	if (kind == syntax_lexer.TCloseBracket || kind == syntax_lexer.TCloseParen || kind == syntax_lexer.TGreaterThan) &&
		matchingLoc.Start != -1 && int(matchingLoc.Start)+1 <= len(p.source.Contents) {
		// Have a nice error message for forgetting a closing bracket
		c := p.source.Contents[matchingLoc.Start : matchingLoc.Start+1]
		if t.Kind == syntax_lexer.TEndOfFile {
			text = fmt.Sprintf("Expected %s to go with %q but found %s", expected, c, t.Kind.String())
		} else {
			text = fmt.Sprintf("Expected %s to go with %q but found %q", expected, c, p.raw())
		}
	} else if t.Kind == syntax_lexer.TEndOfFile {
		text = fmt.Sprintf("Expected %s but found %s", expected, t.Kind.String())
	} else {
		text = fmt.Sprintf("Expected %s but found %q", expected, p.raw())
	}

	p.fail(t.Range, text)
}

func (p *parser) unexpected() {
	t := p.current()
	var text string
	if t.Kind == syntax_lexer.TEndOfFile {
		text = fmt.Sprintf("Unexpected %s", t.Kind.String())
	} else {
		text = fmt.Sprintf("Unexpected %q", p.raw())
	}
	p.fail(t.Range, text)
}

func (p *parser) parseAllAnyOrder() syntax_ast.Component {
	return p.parseSeparatedList(syntax_lexer.TAmpAmp, syntax_ast.AllAnyOrder, p.parseAtLeastOneAnyOrder)
}

func (p *parser) parseAtLeastOneAnyOrder() syntax_ast.Component {
	return p.parseSeparatedList(syntax_lexer.TBarBar, syntax_ast.AtLeastOneAnyOrder, p.parseExactlyOne)
}

func (p *parser) parseExactlyOne() syntax_ast.Component {
	return p.parseSeparatedList(syntax_lexer.TBar, syntax_ast.ExactlyOne, p.parseJuxtaposition)
}

func (p *parser) parseSeparatedList(separator syntax_lexer.T, combinator syntax_ast.Combinator, parseItem func() syntax_ast.Component) syntax_ast.Component {
	first := parseItem()
	if !p.peek(separator) {
		return first
	}

	children := []syntax_ast.Component{first}
	for p.eat(separator) {
		children = append(children, parseItem())
	}
	return syntax_ast.Component{Data: &syntax_ast.CGroup{Combinator: combinator, Children: children}}
}

func (p *parser) parseJuxtaposition() syntax_ast.Component {
	var children []syntax_ast.Component
	for p.startsComponent() {
		children = append(children, p.parseComponent())
	}

	switch len(children) {
	case 0:
		t := p.current()
		if t.Kind == syntax_lexer.TEndOfFile {
			p.fail(t.Range, fmt.Sprintf("Expected component but found %s", t.Kind.String()))
		}
		p.fail(t.Range, fmt.Sprintf("Expected component but found %q", p.raw()))
	case 1:
		return children[0]
	}
	return syntax_ast.Component{Data: &syntax_ast.CGroup{Combinator: syntax_ast.Juxtaposition, Children: children}}
}

func (p *parser) startsComponent() bool {
	switch p.current().Kind {
	case syntax_lexer.TIdent, syntax_lexer.TFunction, syntax_lexer.TString, syntax_lexer.TLessThan,
		syntax_lexer.TOpenBracket, syntax_lexer.TComma, syntax_lexer.TSlash,
		syntax_lexer.TNumber, syntax_lexer.TDimension, syntax_lexer.TPercentage:
		return true
	}
	return false
}

func (p *parser) parseComponent() syntax_ast.Component {
	component := p.parsePrimitive()
	multiplier, ok := p.parseMultiplier()
	if !ok {
		return component
	}

	// "[ a+ ]?" keeps both multipliers by wrapping the inner component
	if component.Multiplier.Kind != syntax_ast.MOnce {
		component = syntax_ast.Component{Data: &syntax_ast.CGroup{
			Combinator: syntax_ast.Juxtaposition,
			Children:   []syntax_ast.Component{component},
		}}
	}
	component.Multiplier = multiplier
	return component
}

func (p *parser) parsePrimitive() syntax_ast.Component {
	t := p.current()

	switch t.Kind {
	case syntax_lexer.TIdent:
		name := p.decoded()
		p.advance()
		switch strings.ToLower(name) {
		case "inherit":
			return syntax_ast.Component{Data: &syntax_ast.CInherit{}}
		case "initial":
			return syntax_ast.Component{Data: &syntax_ast.CInitial{}}
		case "unset":
			return syntax_ast.Component{Data: &syntax_ast.CUnset{}}
		}
		return syntax_ast.Component{Data: &syntax_ast.CKeyword{Name: name}}

	case syntax_lexer.TFunction:
		name := p.decoded()
		p.advance()
		if strings.EqualFold(name, "unit") {
			return p.parseUnit(t.Range.Loc)
		}
		var args syntax_ast.Tree
		if !p.peek(syntax_lexer.TCloseParen) {
			args.Roots = []syntax_ast.Component{p.parseAllAnyOrder()}
		}
		p.expectWithMatchingLoc(syntax_lexer.TCloseParen, logger.Loc{Start: t.Range.End() - 1})
		return syntax_ast.Component{Data: &syntax_ast.CFunction{Name: name, Args: args}}

	case syntax_lexer.TString:
		text := p.decoded()
		p.advance()
		if isPropertyName(text) {
			return syntax_ast.Component{Data: &syntax_ast.CProperty{Name: text}}
		}
		return syntax_ast.Component{Data: &syntax_ast.CLiteral{Text: text}}

	case syntax_lexer.TComma:
		p.advance()
		return syntax_ast.Component{Data: &syntax_ast.CLiteral{Text: ","}}

	case syntax_lexer.TSlash:
		p.advance()
		return syntax_ast.Component{Data: &syntax_ast.CLiteral{Text: "/"}}

	case syntax_lexer.TNumber, syntax_lexer.TDimension, syntax_lexer.TPercentage:
		return syntax_ast.Component{Data: &syntax_ast.CValue{Value: p.parseNumericValue()}}

	case syntax_lexer.TOpenBracket:
		p.advance()
		inner := p.parseAllAnyOrder()
		p.expectWithMatchingLoc(syntax_lexer.TCloseBracket, t.Range.Loc)
		return inner

	case syntax_lexer.TLessThan:
		return p.parseDefinition()
	}

	p.unexpected()
	return syntax_ast.Component{}
}

// Quoted text that looks like a property name refers to that property.
// Anything else (e.g. "'['") is literal text.
func isPropertyName(text string) bool {
	if text == "" || text == "-" {
		return false
	}
	for _, c := range text {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	return true
}

func (p *parser) parseNumericValue() css_ast.Value {
	t := p.current()
	raw := p.raw()
	p.advance()

	switch t.Kind {
	case syntax_lexer.TPercentage:
		return &css_ast.VPercentage{Value: p.parseFloat(t.Range, raw[:len(raw)-1])}

	case syntax_lexer.TDimension:
		return &css_ast.VUnit{
			Value:  p.parseFloat(t.Range, raw[:t.UnitOffset]),
			Suffix: raw[t.UnitOffset:],
		}
	}

	value := p.parseFloat(t.Range, raw)
	if value == 0 {
		return &css_ast.VZero{}
	}
	return &css_ast.VNumber{Value: value}
}

func (p *parser) parseFloat(r logger.Range, text string) float64 {
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.fail(r, fmt.Sprintf("Invalid number %q", text))
	}
	return value
}

func (p *parser) parseInteger(r logger.Range, text string) int64 {
	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.fail(r, fmt.Sprintf("Expected integer but found %q", text))
	}
	return value
}

// Parses "<name>", "<name()>", "<'name'>" and "<name [min,max]>"
func (p *parser) parseDefinition() syntax_ast.Component {
	open := p.current()
	p.advance()

	var definition syntax_ast.CDefinition
	switch p.current().Kind {
	case syntax_lexer.TString:
		definition.Datatype = p.decoded()
		definition.Quoted = true
		p.advance()

	case syntax_lexer.TIdent:
		definition.Datatype = p.decoded()
		p.advance()

	case syntax_lexer.TFunction:
		function := p.current()
		definition.Datatype = p.decoded() + "()"
		p.advance()
		p.expectWithMatchingLoc(syntax_lexer.TCloseParen, logger.Loc{Start: function.Range.End() - 1})

	default:
		p.expect(syntax_lexer.TIdent)
	}

	if !definition.Quoted && p.peek(syntax_lexer.TOpenBracket) {
		definition.Range = p.parseRange()
	}

	p.expectWithMatchingLoc(syntax_lexer.TGreaterThan, open.Range.Loc)
	return syntax_ast.Component{Data: &definition}
}

func (p *parser) parseRange() syntax_ast.Range {
	open := p.current()
	p.advance()

	var r syntax_ast.Range
	r.Min = p.parseBound()
	p.expect(syntax_lexer.TComma)
	r.Max = p.parseBound()
	p.expectWithMatchingLoc(syntax_lexer.TCloseBracket, open.Range.Loc)

	if r.Min.Kind == syntax_ast.BoundFinite && r.Max.Kind == syntax_ast.BoundFinite && r.Min.Value > r.Max.Value {
		p.fail(logger.Range{Loc: open.Range.Loc, Len: p.at(p.index-1).Range.End() - open.Range.Loc.Start},
			fmt.Sprintf("The range minimum %d is larger than the maximum %d", r.Min.Value, r.Max.Value))
	}
	return r
}

func (p *parser) parseBound() syntax_ast.Bound {
	t := p.current()

	switch t.Kind {
	case syntax_lexer.TComma, syntax_lexer.TCloseBracket:
		return syntax_ast.Bound{}

	case syntax_lexer.TInfinity:
		p.advance()
		return syntax_ast.Bound{Kind: syntax_ast.BoundInfinity}

	case syntax_lexer.TNegativeInfinity:
		p.advance()
		return syntax_ast.Bound{Kind: syntax_ast.BoundNegativeInfinity}

	case syntax_lexer.TIdent:
		switch strings.ToLower(p.decoded()) {
		case "inf":
			p.advance()
			return syntax_ast.Bound{Kind: syntax_ast.BoundInfinity}
		case "-inf":
			p.advance()
			return syntax_ast.Bound{Kind: syntax_ast.BoundNegativeInfinity}
		}

	case syntax_lexer.TNumber:
		raw := p.raw()
		p.advance()
		return syntax_ast.Finite(p.parseInteger(t.Range, raw))
	}

	p.expect(syntax_lexer.TNumber)
	return syntax_ast.Bound{}
}

// Parses the inside of "unit(10..10000 khz)", "unit(0.. ms|s)" and
// "unit(px|em)". The opening "unit(" has already been consumed.
func (p *parser) parseUnit(openLoc logger.Loc) syntax_ast.Component {
	unit := syntax_ast.CUnit{}
	unit.From, unit.To = syntax_ast.OpenUnitRange()

	if p.peek(syntax_lexer.TNumber) {
		t := p.current()
		unit.From = p.parseFloat(t.Range, p.raw())
		p.advance()
	}

	if p.eat(syntax_lexer.TDotDot) {
		switch t := p.current(); t.Kind {
		case syntax_lexer.TNumber:
			unit.To = p.parseFloat(t.Range, p.raw())
			p.advance()

		case syntax_lexer.TDimension:
			// "10..10000khz" lexes the upper bound and the first suffix together
			raw := p.raw()
			unit.To = p.parseFloat(t.Range, raw[:t.UnitOffset])
			unit.Suffixes = append(unit.Suffixes, raw[t.UnitOffset:])
			p.advance()
		}
	}

	if unit.Suffixes == nil && p.peek(syntax_lexer.TIdent) {
		unit.Suffixes = append(unit.Suffixes, p.parseUnitSuffix())
	}
	for unit.Suffixes != nil && p.eat(syntax_lexer.TBar) {
		unit.Suffixes = append(unit.Suffixes, p.parseUnitSuffix())
	}

	if unit.From > unit.To {
		p.fail(p.current().Range, fmt.Sprintf("The unit range minimum %v is larger than the maximum %v", unit.From, unit.To))
	}

	p.expectWithMatchingLoc(syntax_lexer.TCloseParen, logger.Loc{Start: openLoc.Start + 4})
	return syntax_ast.Component{Data: &unit}
}

func (p *parser) parseUnitSuffix() string {
	if !p.peek(syntax_lexer.TIdent) {
		p.expect(syntax_lexer.TIdent)
	}
	suffix := p.decoded()
	p.advance()
	return suffix
}

func (p *parser) parseMultiplier() (syntax_ast.Multiplier, bool) {
	t := p.current()

	switch {
	case p.peekAdjacent(syntax_lexer.TAsterisk):
		p.advance()
		return syntax_ast.Multiplier{Kind: syntax_ast.MZeroOrMore}, true

	case p.peekAdjacent(syntax_lexer.TPlus):
		p.advance()
		return syntax_ast.Multiplier{Kind: syntax_ast.MOneOrMore}, true

	case p.peekAdjacent(syntax_lexer.TQuestion):
		p.advance()
		return syntax_ast.Multiplier{Kind: syntax_ast.MOptional}, true

	case p.peekAdjacent(syntax_lexer.TExclamation):
		p.advance()
		return syntax_ast.Multiplier{Kind: syntax_ast.MAtLeastOneValue}, true

	case p.peekAdjacent(syntax_lexer.TOpenBrace):
		min, max := p.parseBraces()
		return syntax_ast.Between(min, max), true

	case t.Kind == syntax_lexer.THash:
		// Whitespace is tolerated before "#" but not between "#" and "{"
		p.advance()
		if p.peekAdjacent(syntax_lexer.TOpenBrace) {
			min, max := p.parseBraces()
			return syntax_ast.CommaSeparated(min, max), true
		}
		return syntax_ast.CommaSeparated(1, syntax_ast.Unbounded), true
	}

	return syntax_ast.Multiplier{}, false
}

// Parses "{A}", "{A,B}" and "{A,}"
func (p *parser) parseBraces() (int, int) {
	open := p.current()
	p.advance()

	min := p.parseCount()
	max := min
	if p.eat(syntax_lexer.TComma) {
		if p.peek(syntax_lexer.TCloseBrace) {
			max = syntax_ast.Unbounded
		} else {
			max = p.parseCount()
		}
	}

	close := p.current()
	p.expectWithMatchingLoc(syntax_lexer.TCloseBrace, open.Range.Loc)

	if min > max {
		p.fail(logger.Range{Loc: open.Range.Loc, Len: close.Range.End() - open.Range.Loc.Start},
			fmt.Sprintf("The repeat minimum %d is larger than the maximum %d", min, max))
	}
	return min, max
}

func (p *parser) parseCount() int {
	t := p.current()
	if t.Kind != syntax_lexer.TNumber {
		p.expect(syntax_lexer.TNumber)
	}
	raw := p.raw()
	value := p.parseInteger(t.Range, raw)
	if value < 0 || value > syntax_ast.Unbounded {
		p.fail(t.Range, fmt.Sprintf("Invalid repeat count %q", raw))
	}
	p.advance()
	return int(value)
}
