package css_definitions

import (
	"sort"

	"github.com/csssyntax/csssyntax/internal/config"
	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/helpers"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
	"github.com/csssyntax/csssyntax/internal/syntax_matcher"
)

// The registry holds the grammar of every known property. It is built once
// from the JSON tables (see "Load") and is only read after that, so it can
// be shared between goroutines. References inside the grammars ("<length>",
// "<'margin-top'>") are already resolved when a definition is handed out.

type PropertyDefinition struct {
	Name string

	// The longhand properties this shorthand expands to. Shorthands don't
	// have an initial value of their own.
	ExpandedProperties []string

	Syntax syntax_ast.Tree

	// This is nil if the property has no initial value
	InitialValue []css_ast.Value

	// The initial value as written in the table
	InitialValueText string

	Inherits bool

	matchOptions syntax_matcher.Options
}

func (def PropertyDefinition) IsShorthand() bool {
	return len(def.ExpandedProperties) > 0
}

func (def PropertyDefinition) HasInitialValue() bool {
	return def.InitialValue != nil
}

// Matches reports whether the whole value sequence is accepted by the
// grammar of this property
func (def PropertyDefinition) Matches(values []css_ast.Value) bool {
	result, err := def.Match(values)
	return err == nil && result.Complete()
}

func (def PropertyDefinition) Match(values []css_ast.Value) (syntax_matcher.MatchResult, error) {
	return def.MatchWithLog(logger.NewDeferLog(logger.LevelSilent, nil), values)
}

func (def PropertyDefinition) MatchWithLog(log logger.Log, values []css_ast.Value) (syntax_matcher.MatchResult, error) {
	return syntax_matcher.Match(log, def.Syntax, values, def.matchOptions)
}

type Typedef struct {
	Name   string
	Syntax syntax_ast.Tree
}

type Registry struct {
	definitions  map[string]PropertyDefinition
	typedefs     map[string]Typedef
	matchOptions syntax_matcher.Options
}

// New returns an empty registry. Most code wants "Load" instead.
func New(options config.Options) *Registry {
	return &Registry{
		definitions:  make(map[string]PropertyDefinition),
		typedefs:     make(map[string]Typedef),
		matchOptions: syntax_matcher.OptionsFromConfig(&options),
	}
}

// Find returns a copy of the definition of a property. Property names are
// case-sensitive and are expected to be lowercase.
func (r *Registry) Find(name string) (PropertyDefinition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// AddDefinition inserts or replaces a definition. The syntax of the
// definition is used as given: references in it are not resolved.
func (r *Registry) AddDefinition(def PropertyDefinition) {
	def.matchOptions = r.matchOptions
	r.definitions[def.Name] = def
}

func (r *Registry) Len() int {
	return len(r.definitions)
}

func (r *Registry) IsEmpty() bool {
	return len(r.definitions) == 0
}

// Names returns every property name in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Typedef(name string) (Typedef, bool) {
	typedef, ok := r.typedefs[name]
	return typedef, ok
}

// Resolve replaces the references in a grammar that wasn't loaded from the
// tables, such as one given on the command line. Builtins are always
// resolved. Typedefs and properties are resolved from this registry, and
// references to anything else are logged and left in place.
func (r *Registry) Resolve(log logger.Log, owner string, tree syntax_ast.Tree) syntax_ast.Tree {
	typedefs := make(map[string]syntax_ast.Tree, len(r.typedefs))
	for name, typedef := range r.typedefs {
		typedefs[name] = typedef.Syntax
	}
	properties := make(map[string]syntax_ast.Tree, len(r.definitions))
	for name, def := range r.definitions {
		properties[name] = def.Syntax
	}
	return newResolver(log, typedefs, properties).resolveTree(owner, tree)
}

// MatchOptions returns the options every definition in this registry is
// matched with
func (r *Registry) MatchOptions() syntax_matcher.Options {
	return r.matchOptions
}

// SuggestName returns a known property name that is one typo away from
// the given name, if there is one
func (r *Registry) SuggestName(name string) (string, bool) {
	if _, ok := r.definitions[name]; ok {
		return "", false
	}
	return helpers.MakeTypoDetector(r.Names()).MaybeCorrectTypo(name)
}
