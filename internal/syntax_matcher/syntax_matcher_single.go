package syntax_matcher

import (
	"fmt"
	"math"
	"strings"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/css_colors"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
)

// https://drafts.csswg.org/css-values-4/#lengths
var lengthUnits = map[string]bool{
	// Font-relative lengths
	"cap":  true,
	"ch":   true,
	"em":   true,
	"ex":   true,
	"ic":   true,
	"lh":   true,
	"rcap": true,
	"rch":  true,
	"rem":  true,
	"rex":  true,
	"ric":  true,
	"rlh":  true,

	// Viewport-percentage lengths
	"vh":   true,
	"vw":   true,
	"vmax": true,
	"vmin": true,
	"vb":   true,
	"vi":   true,

	// Container query lengths
	"cqw":   true,
	"cqh":   true,
	"cqi":   true,
	"cqb":   true,
	"cqmin": true,
	"cqmax": true,

	// Absolute lengths
	"px": true,
	"cm": true,
	"mm": true,
	"q":  true,
	"in": true,
	"pc": true,
	"pt": true,
}

// https://drafts.csswg.org/css-values-4/#angles
var angleUnits = map[string]bool{
	"deg":  true,
	"grad": true,
	"rad":  true,
	"turn": true,
}

func IsLengthUnit(unit string) bool {
	return lengthUnits[strings.ToLower(unit)]
}

func IsAngleUnit(unit string) bool {
	return angleUnits[strings.ToLower(unit)]
}

// This matches a leaf component against the first value of the input
func (m *matcher) matchSingle(input []css_ast.Value, component syntax_ast.Component) MatchResult {
	if !m.step() {
		return noMatch(input)
	}

	value := input[0]

	switch c := component.Data.(type) {
	case *syntax_ast.CKeyword:
		switch v := value.(type) {
		case *css_ast.VNone:
			if strings.EqualFold(c.Name, "none") {
				return firstMatch(input)
			}
		case *css_ast.VString:
			if strings.EqualFold(v.Text, c.Name) {
				return firstMatch(input)
			}
		}

	case *syntax_ast.CLiteral:
		switch v := value.(type) {
		case *css_ast.VString:
			if v.Text == c.Text {
				return firstMatch(input)
			}
			if strings.EqualFold(v.Text, c.Text) {
				m.log.AddID(logger.MsgID_Match_CaseInsensitiveLiteral, logger.Warning, nil, logger.Range{},
					fmt.Sprintf("The value %q only matches the literal %q when ignoring case", v.Text, c.Text))
				return firstMatch(input)
			}
		case *css_ast.VComma:
			if c.Text == "," {
				return firstMatch(input)
			}
		}

	case *syntax_ast.CValue:
		if css_ast.ValueEqual(value, c.Value) {
			return firstMatch(input)
		}

	case *syntax_ast.CUnit:
		switch v := value.(type) {
		case *css_ast.VZero:
			return firstMatch(input)
		case *css_ast.VNumber:
			if v.Value == 0 {
				return firstMatch(input)
			}
		case *css_ast.VUnit:
			if hasSuffix(c.Suffixes, v.Suffix) && v.Value >= c.From && v.Value <= c.To {
				return firstMatch(input)
			}
		}

	case *syntax_ast.CBuiltin:
		if m.matchBuiltin(value, c) {
			return firstMatch(input)
		}

	case *syntax_ast.CInherit:
		switch v := value.(type) {
		case *css_ast.VInherit:
			return firstMatch(input)
		case *css_ast.VString:
			if strings.EqualFold(v.Text, "inherit") {
				return firstMatch(input)
			}
		}

	case *syntax_ast.CInitial:
		switch v := value.(type) {
		case *css_ast.VInitial:
			return firstMatch(input)
		case *css_ast.VString:
			if strings.EqualFold(v.Text, "initial") {
				return firstMatch(input)
			}
		}

	case *syntax_ast.CUnset:
		if v, ok := value.(*css_ast.VString); ok && strings.EqualFold(v.Text, "unset") {
			return firstMatch(input)
		}

	case *syntax_ast.CFunction:
		if m.matchFunction(value, c) {
			return firstMatch(input)
		}

	case *syntax_ast.CDefinition:
		if c.Quoted {
			m.addUnsupported(component, fmt.Sprintf("the property %q is not defined", c.Datatype))
		} else {
			m.addUnsupported(component, fmt.Sprintf("the datatype %q is not defined", c.Datatype))
		}

	case *syntax_ast.CProperty:
		m.addUnsupported(component, fmt.Sprintf("the property %q is not defined", c.Name))

	case *syntax_ast.CGroup:
		panic("Internal error: groups are not leaf components")

	default:
		panic("Internal error")
	}

	return noMatch(input)
}

// An empty suffix list accepts any unit
func hasSuffix(suffixes []string, suffix string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.EqualFold(s, suffix) {
			return true
		}
	}
	return false
}

func (m *matcher) matchBuiltin(value css_ast.Value, builtin *syntax_ast.CBuiltin) bool {
	switch builtin.Kind {
	case syntax_ast.BuiltinLength:
		switch v := value.(type) {
		case *css_ast.VZero:
			return builtin.Range.Contains(0)
		case *css_ast.VUnit:
			return IsLengthUnit(v.Suffix) && builtin.Range.Contains(v.Value)
		}

	case syntax_ast.BuiltinAngle:
		switch v := value.(type) {
		case *css_ast.VZero:
			return builtin.Range.Contains(0)
		case *css_ast.VUnit:
			return IsAngleUnit(v.Suffix) && builtin.Range.Contains(v.Value)
		}

	case syntax_ast.BuiltinPercentage:
		if v, ok := value.(*css_ast.VPercentage); ok {
			return builtin.Range.Contains(v.Value)
		}

	case syntax_ast.BuiltinNumber:
		switch v := value.(type) {
		case *css_ast.VZero:
			return builtin.Range.Contains(0)
		case *css_ast.VNumber:
			return builtin.Range.Contains(v.Value)
		}

	case syntax_ast.BuiltinInteger:
		switch v := value.(type) {
		case *css_ast.VZero:
			return builtin.Range.Contains(0)
		case *css_ast.VNumber:
			return v.Value == math.Trunc(v.Value) && builtin.Range.Contains(v.Value)
		}

	case syntax_ast.BuiltinNamedColor:
		if v, ok := value.(*css_ast.VString); ok {
			return css_colors.IsNamedColor(v.Text)
		}

	case syntax_ast.BuiltinSystemColor:
		if v, ok := value.(*css_ast.VString); ok {
			return css_colors.IsSystemColor(v.Text)
		}

	case syntax_ast.BuiltinHexColor, syntax_ast.BuiltinColorFunction:
		switch v := value.(type) {
		case *css_ast.VColor:
			return true
		case *css_ast.VString:
			return strings.HasPrefix(v.Text, "#")
		}

	case syntax_ast.BuiltinCustomIdent:
		// The "/" delimiter and hashes that aren't colors also decode to strings
		if v, ok := value.(*css_ast.VString); ok {
			return v.Text != "/" && !strings.HasPrefix(v.Text, "#")
		}
	}

	return false
}

func (m *matcher) matchFunction(value css_ast.Value, function *syntax_ast.CFunction) bool {
	v, ok := value.(*css_ast.VFunction)
	if !ok || !strings.EqualFold(v.Name, function.Name) {
		return false
	}

	// A call without arguments is accepted by any argument grammar
	if len(v.Args) == 0 {
		return true
	}

	if function.Args.IsEmpty() {
		return false
	}

	return m.matchComponent(v.Args, function.Args.Roots[0]).Complete()
}
