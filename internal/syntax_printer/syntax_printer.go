package syntax_printer

import (
	"math"
	"strconv"
	"strings"

	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
)

// The printer writes a compiled grammar back out in canonical form. Nested
// groups are always bracketed so the printed form shows how the operators
// were grouped. Compiling the printed text produces the same tree again.

type printer struct {
	sb strings.Builder
}

func Print(tree syntax_ast.Tree) string {
	p := printer{}
	for i, root := range tree.Roots {
		if i > 0 {
			p.sb.WriteByte('\n')
		}
		p.printComponent(root, true)
	}
	return p.sb.String()
}

func PrintComponent(component syntax_ast.Component) string {
	p := printer{}
	p.printComponent(component, true)
	return p.sb.String()
}

func (p *printer) printComponent(component syntax_ast.Component, isRoot bool) {
	switch c := component.Data.(type) {
	case *syntax_ast.CKeyword:
		p.sb.WriteString(c.Name)

	case *syntax_ast.CProperty:
		p.sb.WriteString("'" + c.Name + "'")

	case *syntax_ast.CFunction:
		p.sb.WriteString(c.Name)
		if c.Args.IsEmpty() {
			p.sb.WriteString("()")
		} else {
			p.sb.WriteString("( ")
			p.printComponent(c.Args.Roots[0], true)
			p.sb.WriteString(" )")
		}

	case *syntax_ast.CDefinition:
		p.sb.WriteByte('<')
		if c.Quoted {
			p.sb.WriteString("'" + c.Datatype + "'")
		} else {
			p.sb.WriteString(c.Datatype)
			p.printRange(c.Range)
		}
		p.sb.WriteByte('>')

	case *syntax_ast.CBuiltin:
		p.sb.WriteString("<" + c.Kind.String())
		p.printRange(c.Range)
		p.sb.WriteByte('>')

	case *syntax_ast.CInherit:
		p.sb.WriteString("inherit")

	case *syntax_ast.CInitial:
		p.sb.WriteString("initial")

	case *syntax_ast.CUnset:
		p.sb.WriteString("unset")

	case *syntax_ast.CLiteral:
		if c.Text == "," || c.Text == "/" {
			p.sb.WriteString(c.Text)
		} else {
			p.sb.WriteString("'" + strings.ReplaceAll(c.Text, "'", "\\'") + "'")
		}

	case *syntax_ast.CValue:
		p.sb.WriteString(css_ast.ValueToString(c.Value))

	case *syntax_ast.CUnit:
		p.sb.WriteString("unit(")
		hasRange := !math.IsInf(c.From, -1) || !math.IsInf(c.To, 1)
		if hasRange {
			if !math.IsInf(c.From, -1) {
				p.sb.WriteString(formatNumber(c.From))
			}
			p.sb.WriteString("..")
			if !math.IsInf(c.To, 1) {
				p.sb.WriteString(formatNumber(c.To))
			}
		}
		if len(c.Suffixes) > 0 {
			if hasRange {
				p.sb.WriteByte(' ')
			}
			p.sb.WriteString(strings.Join(c.Suffixes, "|"))
		}
		p.sb.WriteByte(')')

	case *syntax_ast.CGroup:
		bracket := !isRoot || component.Multiplier.Kind != syntax_ast.MOnce
		if bracket {
			p.sb.WriteString("[ ")
		}
		for i, child := range c.Children {
			if i > 0 {
				p.sb.WriteString(c.Combinator.Separator())
			}
			p.printComponent(child, false)
		}
		if bracket {
			p.sb.WriteString(" ]")
		}

	default:
		panic("Internal error")
	}

	p.printMultiplier(component.Multiplier)
}

func (p *printer) printRange(r syntax_ast.Range) {
	if r.IsEmpty() {
		return
	}
	p.sb.WriteString(" [")
	p.printBound(r.Min)
	p.sb.WriteByte(',')
	p.printBound(r.Max)
	p.sb.WriteByte(']')
}

func (p *printer) printBound(b syntax_ast.Bound) {
	switch b.Kind {
	case syntax_ast.BoundFinite:
		p.sb.WriteString(strconv.FormatInt(b.Value, 10))
	case syntax_ast.BoundInfinity:
		p.sb.WriteString("∞")
	case syntax_ast.BoundNegativeInfinity:
		p.sb.WriteString("-∞")
	}
}

func (p *printer) printMultiplier(m syntax_ast.Multiplier) {
	switch m.Kind {
	case syntax_ast.MZeroOrMore:
		p.sb.WriteByte('*')
	case syntax_ast.MOneOrMore:
		p.sb.WriteByte('+')
	case syntax_ast.MOptional:
		p.sb.WriteByte('?')
	case syntax_ast.MAtLeastOneValue:
		p.sb.WriteByte('!')
	case syntax_ast.MBetween:
		p.printBraces(m.Min, m.Max)
	case syntax_ast.MCommaSeparated:
		p.sb.WriteByte('#')
		if m.Min != 1 || m.Max != syntax_ast.Unbounded {
			p.printBraces(m.Min, m.Max)
		}
	}
}

func (p *printer) printBraces(min int, max int) {
	p.sb.WriteByte('{')
	p.sb.WriteString(strconv.Itoa(min))
	if max == syntax_ast.Unbounded {
		p.sb.WriteByte(',')
	} else if max != min {
		p.sb.WriteByte(',')
		p.sb.WriteString(strconv.Itoa(max))
	}
	p.sb.WriteByte('}')
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
