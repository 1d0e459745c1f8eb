package syntax_matcher

import (
	"errors"
	"fmt"

	"github.com/csssyntax/csssyntax/internal/config"
	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
	"github.com/csssyntax/csssyntax/internal/syntax_printer"
)

// The matcher checks a flat sequence of values against a compiled grammar.
// Every component is matched against a prefix of the input and returns what
// it did not consume as the remainder, which is then handed to the next
// component. There is no backtracking into a component once it has returned
// a result. Ambiguity is resolved locally instead (see "matchExactlyOne").

type MatchResult struct {
	// The values consumed by the match, in input order
	MatchedValues []css_ast.Value

	// The values after the matched prefix
	Remainder []css_ast.Value

	Matched bool
}

// Complete reports whether the match consumed the entire input
func (result MatchResult) Complete() bool {
	return result.Matched && len(result.Remainder) == 0
}

var ErrStepLimit = errors.New("The match step limit was exceeded")

// This is returned when a value could only have matched through a
// component the matcher can't evaluate, such as a reference to a datatype
// that was never resolved.
type UnsupportedError struct {
	Component string
	Reason    string
}

func (err *UnsupportedError) Error() string {
	return fmt.Sprintf("Cannot match %s: %s", err.Component, err.Reason)
}

type Options struct {
	// The maximum number of unit match attempts for one top-level match. Zero
	// means the default limit.
	StepLimit int
}

func OptionsFromConfig(options *config.Options) Options {
	return Options{StepLimit: options.MatchStepLimit}
}

type matcher struct {
	log         logger.Log
	unsupported []*UnsupportedError
	stepLimit   int
	steps       int
}

// Matches reports whether the grammar accepts the entire value sequence. An
// empty tree accepts nothing.
func Matches(tree syntax_ast.Tree, values []css_ast.Value) bool {
	result, err := Match(logger.NewDeferLog(logger.LevelSilent, nil), tree, values, Options{})
	return err == nil && result.Complete()
}

// Match runs the grammar against the values and returns the raw result of
// the root component, which may leave a remainder. The error is either
// "ErrStepLimit" or an "*UnsupportedError" that explains why an incomplete
// match may have been a false negative.
func Match(log logger.Log, tree syntax_ast.Tree, values []css_ast.Value, options Options) (MatchResult, error) {
	switch len(tree.Roots) {
	case 0:
		return noMatch(values), nil
	case 1:
	default:
		panic(fmt.Sprintf("Internal error: a syntax tree must have exactly one root, not %d", len(tree.Roots)))
	}

	m := matcher{
		log:       log,
		stepLimit: options.StepLimit,
	}
	if m.stepLimit <= 0 {
		m.stepLimit = config.DefaultMatchStepLimit
	}

	result := m.matchComponent(values, tree.Roots[0])
	if m.steps > m.stepLimit {
		return noMatch(values), ErrStepLimit
	}
	if !result.Complete() && len(m.unsupported) > 0 {
		err := m.unsupported[0]
		log.AddID(logger.MsgID_Match_Unsupported, logger.Debug, nil, logger.Range{}, err.Error())
		return result, err
	}
	return result, nil
}

func noMatch(input []css_ast.Value) MatchResult {
	return MatchResult{Remainder: input}
}

func firstMatch(input []css_ast.Value) MatchResult {
	return MatchResult{
		Matched:       true,
		MatchedValues: input[:1:1],
		Remainder:     input[1:],
	}
}

// Returns false once the step budget is spent. All remaining attempts fail
// immediately after that so the match unwinds quickly.
func (m *matcher) step() bool {
	m.steps++
	return m.steps <= m.stepLimit
}

func (m *matcher) addUnsupported(component syntax_ast.Component, reason string) {
	m.unsupported = append(m.unsupported, &UnsupportedError{
		Component: syntax_printer.PrintComponent(syntax_ast.Component{Data: component.Data}),
		Reason:    reason,
	})
}

// This handles the comma-separated repeat multiplier. Everything else is
// handled by "matchComponentInner".
func (m *matcher) matchComponent(input []css_ast.Value, component syntax_ast.Component) MatchResult {
	if component.Multiplier.Kind != syntax_ast.MCommaSeparated {
		return m.matchComponentInner(input, component)
	}

	min := component.Multiplier.Min
	max := component.Multiplier.Max
	once := syntax_ast.Component{Data: component.Data}
	remainder := input
	var matched []css_ast.Value
	count := 0

	for count < max {
		candidate := remainder
		var comma css_ast.Value

		if count > 0 {
			if len(remainder) == 0 {
				break
			}
			if _, ok := remainder[0].(*css_ast.VComma); !ok {
				break
			}
			if len(remainder) == 1 {
				// A trailing comma is never valid
				return noMatch(input)
			}
			comma = remainder[0]
			candidate = remainder[1:]
		}

		result := m.matchComponentInner(candidate, once)
		if !result.Matched {
			// Leave the comma in the remainder for the parent
			break
		}

		if comma != nil {
			matched = append(matched, comma)
		}
		matched = append(matched, result.MatchedValues...)
		remainder = result.Remainder
		count++
	}

	if count < min {
		return noMatch(input)
	}
	return MatchResult{Matched: true, MatchedValues: matched, Remainder: remainder}
}

// This repeats a group or leaf match for as long as the multiplier of the
// component asks for more
func (m *matcher) matchComponentInner(input []css_ast.Value, component syntax_ast.Component) MatchResult {
	remainder := input
	var matched []css_ast.Value
	count := 0

	for {
		if len(remainder) == 0 {
			switch Fulfill(component.Multiplier, count) {
			case Fulfilled, FulfilledButMoreAllowed:
				return MatchResult{Matched: true, MatchedValues: matched, Remainder: remainder}
			}
			return noMatch(input)
		}

		var result MatchResult
		if group, ok := component.Data.(*syntax_ast.CGroup); ok {
			result = m.matchGroup(remainder, group)
		} else {
			result = m.matchSingle(remainder, component)
		}

		if !result.Matched {
			switch Fulfill(component.Multiplier, count) {
			case Fulfilled, FulfilledButMoreAllowed:
				return MatchResult{Matched: true, MatchedValues: matched, Remainder: remainder}
			}
			return noMatch(input)
		}

		consumedNothing := len(result.Remainder) == len(remainder)
		if consumedNothing && component.Multiplier.Kind == syntax_ast.MAtLeastOneValue {
			return noMatch(input)
		}

		count++
		matched = append(matched, result.MatchedValues...)
		remainder = result.Remainder

		switch Fulfill(component.Multiplier, count) {
		case NotYetFulfilled:
			if consumedNothing {
				// Repeating a match that consumed nothing would never end. It
				// could repeat any number of times, so the minimum is met.
				return MatchResult{Matched: true, MatchedValues: matched, Remainder: remainder}
			}
			continue

		case FulfilledButMoreAllowed:
			if len(remainder) == 0 || consumedNothing {
				return MatchResult{Matched: true, MatchedValues: matched, Remainder: remainder}
			}
			continue

		case Fulfilled:
			return MatchResult{Matched: true, MatchedValues: matched, Remainder: remainder}

		default:
			return noMatch(input)
		}
	}
}

func (m *matcher) matchGroup(input []css_ast.Value, group *syntax_ast.CGroup) MatchResult {
	if !m.step() {
		return noMatch(input)
	}

	switch group.Combinator {
	case syntax_ast.Juxtaposition:
		return m.matchJuxtaposition(input, group.Children)
	case syntax_ast.AllAnyOrder:
		return m.matchAnyOrder(input, group.Children, true)
	case syntax_ast.AtLeastOneAnyOrder:
		return m.matchAnyOrder(input, group.Children, false)
	case syntax_ast.ExactlyOne:
		return m.matchExactlyOne(input, group.Children)
	}

	panic("Internal error")
}

// "a b c": every child in order, each on the remainder of the previous one
func (m *matcher) matchJuxtaposition(input []css_ast.Value, children []syntax_ast.Component) MatchResult {
	remainder := input
	var matched []css_ast.Value

	for _, child := range children {
		result := m.matchComponent(remainder, child)
		if !result.Matched {
			return noMatch(input)
		}
		matched = append(matched, result.MatchedValues...)
		remainder = result.Remainder
	}

	return MatchResult{Matched: true, MatchedValues: matched, Remainder: remainder}
}

// "a && b" and "a || b": children in any order. After each successful child
// the scan restarts at the first child that hasn't matched yet. After a
// failed child the scan moves on to the next unmatched child.
func (m *matcher) matchAnyOrder(input []css_ast.Value, children []syntax_ast.Component, requireAll bool) MatchResult {
	remainder := input
	var matchedValues []css_ast.Value
	matched := make([]bool, len(children))
	matchedCount := 0

	nextUnmatched := func(i int) int {
		for i < len(children) && matched[i] {
			i++
		}
		return i
	}

	for i := 0; i < len(children); {
		if len(remainder) == 0 {
			break
		}

		result := m.matchComponent(remainder, children[i])
		if result.Matched {
			matched[i] = true
			matchedCount++
			matchedValues = append(matchedValues, result.MatchedValues...)
			remainder = result.Remainder
			i = nextUnmatched(0)
		} else {
			i = nextUnmatched(i + 1)
		}
	}

	if matchedCount == 0 || (requireAll && matchedCount != len(children)) {
		return noMatch(input)
	}
	return MatchResult{Matched: true, MatchedValues: matchedValues, Remainder: remainder}
}

// "a | b": every child is tried on the same input and the one that consumes
// the most wins. Ties go to the child that was declared first.
func (m *matcher) matchExactlyOne(input []css_ast.Value, children []syntax_ast.Component) MatchResult {
	best := noMatch(input)
	for _, child := range children {
		result := m.matchComponent(input, child)
		if result.Matched && (!best.Matched || len(result.Remainder) < len(best.Remainder)) {
			best = result
		}
	}
	return best
}

type Fulfillment uint8

const (
	// More matches are required
	NotYetFulfilled Fulfillment = iota

	// The multiplier is satisfied and no more matches are allowed
	Fulfilled

	// The multiplier is satisfied but more matches are allowed
	FulfilledButMoreAllowed

	// There were too many matches
	NotFulfilled
)

func (f Fulfillment) String() string {
	switch f {
	case NotYetFulfilled:
		return "not yet fulfilled"
	case Fulfilled:
		return "fulfilled"
	case FulfilledButMoreAllowed:
		return "fulfilled but more allowed"
	case NotFulfilled:
		return "not fulfilled"
	}
	panic("Internal error")
}

// Fulfill returns the state of a multiplier after "count" successful
// matches. The "!" and "#" multipliers behave like "once" here since the
// comma-separated loop counts its own repetitions.
func Fulfill(multiplier syntax_ast.Multiplier, count int) Fulfillment {
	switch multiplier.Kind {
	case syntax_ast.MOnce, syntax_ast.MAtLeastOneValue, syntax_ast.MCommaSeparated:
		switch count {
		case 0:
			return NotYetFulfilled
		case 1:
			return Fulfilled
		}
		return NotFulfilled

	case syntax_ast.MZeroOrMore:
		return FulfilledButMoreAllowed

	case syntax_ast.MOneOrMore:
		if count == 0 {
			return NotYetFulfilled
		}
		return FulfilledButMoreAllowed

	case syntax_ast.MOptional:
		switch count {
		case 0:
			return FulfilledButMoreAllowed
		case 1:
			return Fulfilled
		}
		return NotFulfilled

	case syntax_ast.MBetween:
		if count < multiplier.Min {
			return NotYetFulfilled
		}
		if count <= multiplier.Max {
			return FulfilledButMoreAllowed
		}
		return NotFulfilled
	}

	return NotFulfilled
}
