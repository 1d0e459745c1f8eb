package css_ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Property values are handed to the matcher as a flat sequence of these
// values. The sequence is produced either by the style engine that owns the
// stylesheet or by the value reader in "css_parser". Values are immutable
// once created and are compared structurally.

type Value interface{ isValue() }

// This is used for "none" and for the absence of a value
type VNone struct{}

// The color is stored as 0xRRGGBBAA
type VColor struct{ RGBA uint32 }

type VNumber struct{ Value float64 }

type VPercentage struct{ Value float64 }

// Identifiers, quoted strings and delimiters such as "/" are all strings
type VString struct{ Text string }

type VUnit struct {
	Suffix string
	Value  float64
}

// A bare "0" which can stand in for a length or an angle
type VZero struct{}

type VComma struct{}

type VFunction struct {
	Name string
	Args []Value
}

type VList struct{ Items []Value }

type VInherit struct{}

type VInitial struct{}

func (*VNone) isValue()       {}
func (*VColor) isValue()      {}
func (*VNumber) isValue()     {}
func (*VPercentage) isValue() {}
func (*VString) isValue()     {}
func (*VUnit) isValue()       {}
func (*VZero) isValue()       {}
func (*VComma) isValue()      {}
func (*VFunction) isValue()   {}
func (*VList) isValue()       {}
func (*VInherit) isValue()    {}
func (*VInitial) isValue()    {}

func ValueEqual(a Value, b Value) bool {
	switch a := a.(type) {
	case *VNone:
		_, ok := b.(*VNone)
		return ok

	case *VColor:
		b, ok := b.(*VColor)
		return ok && a.RGBA == b.RGBA

	case *VNumber:
		b, ok := b.(*VNumber)
		return ok && a.Value == b.Value

	case *VPercentage:
		b, ok := b.(*VPercentage)
		return ok && a.Value == b.Value

	case *VString:
		b, ok := b.(*VString)
		return ok && a.Text == b.Text

	case *VUnit:
		b, ok := b.(*VUnit)
		return ok && a.Value == b.Value && a.Suffix == b.Suffix

	case *VZero:
		_, ok := b.(*VZero)
		return ok

	case *VComma:
		_, ok := b.(*VComma)
		return ok

	case *VFunction:
		b, ok := b.(*VFunction)
		return ok && a.Name == b.Name && ValuesEqual(a.Args, b.Args)

	case *VList:
		b, ok := b.(*VList)
		return ok && ValuesEqual(a.Items, b.Items)

	case *VInherit:
		_, ok := b.(*VInherit)
		return ok

	case *VInitial:
		_, ok := b.(*VInitial)
		return ok

	case nil:
		return b == nil

	default:
		panic("Internal error")
	}
}

func ValuesEqual(a []Value, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i, ai := range a {
		if !ValueEqual(ai, b[i]) {
			return false
		}
	}
	return true
}

// Flatten expands a top-level list value into its items. Anything else is
// returned as a sequence of one value.
func Flatten(value Value) []Value {
	if list, ok := value.(*VList); ok {
		return list.Items
	}
	return []Value{value}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// ValueToString prints a value in CSS-like form for messages and tests.
// It is not a serializer: strings are printed without quotes.
func ValueToString(value Value) string {
	switch v := value.(type) {
	case *VNone:
		return "none"
	case *VColor:
		return fmt.Sprintf("#%08x", v.RGBA)
	case *VNumber:
		return formatNumber(v.Value)
	case *VPercentage:
		return formatNumber(v.Value) + "%"
	case *VString:
		return v.Text
	case *VUnit:
		return formatNumber(v.Value) + v.Suffix
	case *VZero:
		return "0"
	case *VComma:
		return ","
	case *VFunction:
		return v.Name + "(" + ValuesToString(v.Args) + ")"
	case *VList:
		return ValuesToString(v.Items)
	case *VInherit:
		return "inherit"
	case *VInitial:
		return "initial"
	case nil:
		return "<nil>"
	default:
		panic("Internal error")
	}
}

func ValuesToString(values []Value) string {
	sb := strings.Builder{}
	for i, value := range values {
		if _, ok := value.(*VComma); ok {
			sb.WriteByte(',')
			continue
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(ValueToString(value))
	}
	return sb.String()
}
