package css_definitions

import (
	"fmt"

	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
)

// References are resolved by copying the referenced grammar into the tree
// in place of the reference. The copy keeps the multiplier of the
// reference, so "<box>#" becomes the grammar of "<box>" repeated with
// commas. A range on a reference ("<length-percentage [0,∞]>") is pushed
// down to every builtin inside the copy that doesn't have its own range.
//
// A reference to a grammar that is already being copied is left alone.
// That breaks cycles such as "<a>" referring to "<b>" referring to "<a>".
// The remaining reference never matches.

type resolver struct {
	log        logger.Log
	typedefs   map[string]syntax_ast.Tree
	properties map[string]syntax_ast.Tree

	// The typedefs and properties currently being copied, keyed by the
	// printed form of the reference ("<box>" or "<'margin-top'>")
	active map[string]bool

	// Unknown names are only reported once per grammar that uses them
	reported map[string]bool
	owner    string
}

func newResolver(log logger.Log, typedefs map[string]syntax_ast.Tree, properties map[string]syntax_ast.Tree) *resolver {
	return &resolver{
		log:        log,
		typedefs:   typedefs,
		properties: properties,
		active:     make(map[string]bool),
		reported:   make(map[string]bool),
	}
}

func (r *resolver) resolveTree(owner string, tree syntax_ast.Tree) syntax_ast.Tree {
	if tree.IsEmpty() {
		return tree
	}
	r.owner = owner
	root := r.resolveComponent(tree.Roots[0], syntax_ast.Range{})
	return syntax_ast.Tree{Roots: []syntax_ast.Component{root}}
}

func (r *resolver) resolveComponent(component syntax_ast.Component, inherited syntax_ast.Range) syntax_ast.Component {
	switch c := component.Data.(type) {
	case *syntax_ast.CDefinition:
		if c.Quoted {
			return r.resolveProperty(component, c.Datatype)
		}

		numericRange := c.Range
		if numericRange.IsEmpty() {
			numericRange = inherited
		}
		if kind, ok := syntax_ast.LookupBuiltin(c.Datatype); ok {
			return syntax_ast.Component{
				Data:       &syntax_ast.CBuiltin{Kind: kind, Range: numericRange},
				Multiplier: component.Multiplier,
			}
		}
		tree, ok := r.typedefs[c.Datatype]
		if !ok {
			r.reportUnresolved("datatype", c.Datatype)
			return component
		}
		return r.inline(component, "<"+c.Datatype+">", tree, numericRange)

	case *syntax_ast.CProperty:
		return r.resolveProperty(component, c.Name)

	case *syntax_ast.CBuiltin:
		if c.Range.IsEmpty() && !inherited.IsEmpty() {
			return syntax_ast.Component{
				Data:       &syntax_ast.CBuiltin{Kind: c.Kind, Range: inherited},
				Multiplier: component.Multiplier,
			}
		}

	case *syntax_ast.CFunction:
		if !c.Args.IsEmpty() {
			args := r.resolveComponent(c.Args.Roots[0], inherited)
			return syntax_ast.Component{
				Data:       &syntax_ast.CFunction{Name: c.Name, Args: syntax_ast.Tree{Roots: []syntax_ast.Component{args}}},
				Multiplier: component.Multiplier,
			}
		}

	case *syntax_ast.CGroup:
		children := make([]syntax_ast.Component, len(c.Children))
		for i, child := range c.Children {
			children[i] = r.resolveComponent(child, inherited)
		}
		return syntax_ast.Component{
			Data:       &syntax_ast.CGroup{Children: children, Combinator: c.Combinator},
			Multiplier: component.Multiplier,
		}
	}

	return component
}

func (r *resolver) resolveProperty(component syntax_ast.Component, name string) syntax_ast.Component {
	tree, ok := r.properties[name]
	if !ok {
		r.reportUnresolved("property", name)
		return component
	}
	return r.inline(component, "<'"+name+"'>", tree, syntax_ast.Range{})
}

func (r *resolver) inline(reference syntax_ast.Component, key string, tree syntax_ast.Tree, numericRange syntax_ast.Range) syntax_ast.Component {
	if r.active[key] || tree.IsEmpty() {
		return reference
	}

	r.active[key] = true
	root := r.resolveComponent(tree.Roots[0], numericRange)
	delete(r.active, key)

	return withMultiplier(root, reference.Multiplier)
}

// The copied root takes over the multiplier of the reference. If both have
// one ("<a>+" where "a" is "x#") the root is wrapped in a group so neither
// multiplier is lost.
func withMultiplier(root syntax_ast.Component, multiplier syntax_ast.Multiplier) syntax_ast.Component {
	if multiplier.Kind == syntax_ast.MOnce {
		return root
	}
	if root.Multiplier.Kind == syntax_ast.MOnce {
		root.Multiplier = multiplier
		return root
	}
	return syntax_ast.Component{
		Data: &syntax_ast.CGroup{
			Children:   []syntax_ast.Component{root},
			Combinator: syntax_ast.Juxtaposition,
		},
		Multiplier: multiplier,
	}
}

func (r *resolver) reportUnresolved(kind string, name string) {
	key := r.owner + "\x00" + kind + "\x00" + name
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	r.log.AddID(logger.MsgID_Definitions_UnresolvedReference, logger.Warning, nil, logger.Range{},
		fmt.Sprintf("The %s %q used by %q is not defined", kind, name, r.owner))
}
