package syntax_ast

import (
	"math"
	"strings"

	"github.com/csssyntax/csssyntax/internal/css_ast"
)

// A compiled value definition grammar is a tree of components. Every
// component carries its own multiplier, so "[ a b ]#" is a group component
// whose multiplier is a comma-separated repeat. Trees are never mutated
// after they are built. Resolving references against a registry builds new
// nodes instead.

type Tree struct {
	// This has exactly one element for any non-empty grammar. An empty grammar
	// compiles to a tree without roots which means "no constrained syntax".
	Roots []Component
}

func (tree Tree) IsEmpty() bool {
	return len(tree.Roots) == 0
}

type Component struct {
	Data       C
	Multiplier Multiplier
}

type C interface{ isComponent() }

// An unquoted identifier such as "auto"
type CKeyword struct{ Name string }

// A quoted reference to another property such as "'margin-top'". The
// registry replaces this with the compiled grammar of that property.
type CProperty struct{ Name string }

type CFunction struct {
	Name string

	// The grammar of the arguments. This is empty for "name()".
	Args Tree
}

// A reference to a named datatype such as "<length [0,∞]>" or "<'width'>".
// The registry replaces this with a builtin or with the grammar of the
// referenced type. References that can't be resolved stay in the tree and
// never match anything.
type CDefinition struct {
	Datatype string
	Range    Range
	Quoted   bool
}

type CInherit struct{}

type CInitial struct{}

type CUnset struct{}

// Literal punctuation such as "," or "/" and quoted text that isn't a name
type CLiteral struct{ Text string }

// A literal value such as "0" or "10px"
type CValue struct{ Value css_ast.Value }

// A dimension with an optional numeric range. An empty suffix list accepts
// any unit. Open ends of the range are infinite.
type CUnit struct {
	Suffixes []string
	From     float64
	To       float64
}

type CBuiltin struct {
	Range Range
	Kind  Builtin
}

type CGroup struct {
	Children   []Component
	Combinator Combinator
}

func (*CKeyword) isComponent()    {}
func (*CProperty) isComponent()   {}
func (*CFunction) isComponent()   {}
func (*CDefinition) isComponent() {}
func (*CInherit) isComponent()    {}
func (*CInitial) isComponent()    {}
func (*CUnset) isComponent()      {}
func (*CLiteral) isComponent()    {}
func (*CValue) isComponent()      {}
func (*CUnit) isComponent()       {}
func (*CBuiltin) isComponent()    {}
func (*CGroup) isComponent()      {}

func OpenUnitRange() (float64, float64) {
	return math.Inf(-1), math.Inf(1)
}

type Combinator uint8

const (
	// "a b c"
	Juxtaposition Combinator = iota

	// "a && b && c"
	AllAnyOrder

	// "a || b || c"
	AtLeastOneAnyOrder

	// "a | b | c"
	ExactlyOne
)

var combinatorToString = []string{
	" ",
	" && ",
	" || ",
	" | ",
}

// The separator used between children when printing a group
func (c Combinator) Separator() string {
	return combinatorToString[c]
}

func (c Combinator) String() string {
	switch c {
	case Juxtaposition:
		return "juxtaposition"
	case AllAnyOrder:
		return "&&"
	case AtLeastOneAnyOrder:
		return "||"
	case ExactlyOne:
		return "|"
	}
	panic("Internal error")
}

type MultiplierKind uint8

const (
	// The zero value so that a component without a multiplier matches once
	MOnce MultiplierKind = iota

	// "*"
	MZeroOrMore

	// "+"
	MOneOrMore

	// "?"
	MOptional

	// "{A}", "{A,B}" and "{A,}"
	MBetween

	// "!" after a group: the group must produce at least one value
	MAtLeastOneValue

	// "#", "#{A}" and "#{A,B}"
	MCommaSeparated
)

// Used as the maximum of "{A,}" and "#"
const Unbounded = math.MaxInt32

type Multiplier struct {
	Kind MultiplierKind
	Min  int
	Max  int
}

func Between(min int, max int) Multiplier {
	return Multiplier{Kind: MBetween, Min: min, Max: max}
}

func CommaSeparated(min int, max int) Multiplier {
	return Multiplier{Kind: MCommaSeparated, Min: min, Max: max}
}

type BoundKind uint8

const (
	BoundNone BoundKind = iota
	BoundFinite
	BoundInfinity
	BoundNegativeInfinity
)

type Bound struct {
	Value int64
	Kind  BoundKind
}

func Finite(value int64) Bound {
	return Bound{Kind: BoundFinite, Value: value}
}

// The "[min,max]" part of a numeric datatype reference
type Range struct {
	Min Bound
	Max Bound
}

func (r Range) IsEmpty() bool {
	return r.Min.Kind == BoundNone && r.Max.Kind == BoundNone
}

func (r Range) Contains(value float64) bool {
	switch r.Min.Kind {
	case BoundFinite:
		if value < float64(r.Min.Value) {
			return false
		}
	case BoundInfinity:
		return false
	}

	switch r.Max.Kind {
	case BoundFinite:
		if value > float64(r.Max.Value) {
			return false
		}
	case BoundNegativeInfinity:
		return false
	}

	return true
}

type Builtin uint8

const (
	BuiltinLength Builtin = iota
	BuiltinAngle
	BuiltinPercentage
	BuiltinNumber
	BuiltinInteger
	BuiltinNamedColor
	BuiltinSystemColor
	BuiltinHexColor
	BuiltinColorFunction
	BuiltinCustomIdent
)

var builtinToString = []string{
	"length",
	"angle",
	"percentage",
	"number",
	"integer",
	"named-color",
	"system-color",
	"hex-color",
	"color()",
	"custom-ident",
}

var stringToBuiltin map[string]Builtin

func init() {
	stringToBuiltin = make(map[string]Builtin, len(builtinToString))
	for i, name := range builtinToString {
		stringToBuiltin[name] = Builtin(i)
	}
}

func (b Builtin) String() string {
	return builtinToString[b]
}

// LookupBuiltin maps a datatype name to the builtin that implements it. The
// name is compared without regard to case.
func LookupBuiltin(datatype string) (Builtin, bool) {
	b, ok := stringToBuiltin[strings.ToLower(datatype)]
	return b, ok
}
