package css_definitions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/csssyntax/csssyntax/internal/config"
	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/css_parser"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
	"github.com/csssyntax/csssyntax/internal/syntax_matcher"
	"github.com/csssyntax/csssyntax/internal/syntax_parser"
)

//go:embed resources/css_typedefs.json
var typedefsJSON []byte

//go:embed resources/css_definitions.json
var definitionsJSON []byte

type jsonDefinition struct {
	InitialValue       *string  `json:"initial_value"`
	Name               string   `json:"name"`
	Syntax             string   `json:"syntax"`
	ExpandedProperties []string `json:"expanded_properties"`
	Inherits           bool     `json:"inherits"`
}

// A table of property definitions in the same format as the builtin table.
// The path is only used in error messages.
type DefinitionTable struct {
	PrettyPath string
	Contents   []byte
}

// Load builds the registry from the tables that are compiled into the
// binary. Extra tables are loaded afterward in order. Their properties can
// use the builtin typedefs, and a property that is already defined keeps
// its first definition.
func Load(log logger.Log, options config.Options, extra ...DefinitionTable) (*Registry, error) {
	tables := append([]DefinitionTable{{Contents: definitionsJSON}}, extra...)
	return loadTables(log, options, typedefsJSON, tables)
}

// LoadFromJSON builds a registry from caller-provided tables. The typedef
// table is an object mapping names to grammars and the definition table is
// an array of property entries. Only malformed JSON is an error. Problems
// with individual entries are logged and the entry is skipped.
func LoadFromJSON(log logger.Log, options config.Options, typedefs []byte, definitions []byte) (*Registry, error) {
	return loadTables(log, options, typedefs, []DefinitionTable{{Contents: definitions}})
}

func loadTables(log logger.Log, options config.Options, typedefs []byte, tables []DefinitionTable) (*Registry, error) {
	var rawTypedefs map[string]string
	if err := json.Unmarshal(typedefs, &rawTypedefs); err != nil {
		return nil, fmt.Errorf("Could not parse the type definition table: %w", err)
	}

	rawTables := make([][]jsonDefinition, len(tables))
	for i, table := range tables {
		if err := json.Unmarshal(table.Contents, &rawTables[i]); err != nil {
			if table.PrettyPath != "" {
				return nil, fmt.Errorf("Could not parse the property definition table %q: %w", table.PrettyPath, err)
			}
			return nil, fmt.Errorf("Could not parse the property definition table: %w", err)
		}
	}

	registry := New(options)
	l := loader{
		log:        log,
		options:    options,
		registry:   registry,
		properties: make(map[string]syntax_ast.Tree),
	}
	l.compileTypedefs(rawTypedefs)
	for _, rawDefinitions := range rawTables {
		l.compileDefinitions(rawDefinitions)
	}
	l.resolve()
	l.checkInitialValues()
	return registry, nil
}

type loader struct {
	log        logger.Log
	registry   *Registry
	typedefs   map[string]syntax_ast.Tree
	properties map[string]syntax_ast.Tree
	options    config.Options
}

// Returns false after logging if the grammar doesn't compile
func (l *loader) compile(prettyPath string, what string, grammar string) (syntax_ast.Tree, bool) {
	tree, err := syntax_parser.Compile(grammar)
	if err == nil {
		return tree, true
	}

	source := logger.Source{PrettyPath: prettyPath, Contents: grammar}
	tracker := logger.MakeLineColumnTracker(&source)
	var compileErr *syntax_parser.CompileError
	if errors.As(err, &compileErr) {
		l.log.AddID(logger.MsgID_Syntax_CompileFailed, logger.Warning, &tracker, compileErr.Range,
			fmt.Sprintf("Could not compile the syntax of %s: %s", what, compileErr.Message))
	} else {
		l.log.AddID(logger.MsgID_Syntax_CompileFailed, logger.Warning, nil, logger.Range{},
			fmt.Sprintf("Could not compile the syntax of %s: %s", what, err.Error()))
	}
	return syntax_ast.Tree{}, false
}

func (l *loader) compileTypedefs(rawTypedefs map[string]string) {
	names := make([]string, 0, len(rawTypedefs))
	for name := range rawTypedefs {
		names = append(names, name)
	}
	sort.Strings(names)

	l.typedefs = make(map[string]syntax_ast.Tree, len(names))
	for _, name := range names {
		if tree, ok := l.compile("<"+name+">", fmt.Sprintf("the type %q", name), rawTypedefs[name]); ok {
			l.typedefs[name] = tree
		}
	}
}

func (l *loader) compileDefinitions(rawDefinitions []jsonDefinition) {
	for _, raw := range rawDefinitions {
		if raw.Name == "" {
			l.log.AddID(logger.MsgID_Definitions_DuplicateProperty, logger.Warning, nil, logger.Range{},
				"Ignoring a property definition without a name")
			continue
		}
		if _, ok := l.properties[raw.Name]; ok {
			l.log.AddID(logger.MsgID_Definitions_DuplicateProperty, logger.Warning, nil, logger.Range{},
				fmt.Sprintf("Ignoring the duplicate definition of the property %q", raw.Name))
			continue
		}

		tree, ok := l.compile(raw.Name, fmt.Sprintf("the property %q", raw.Name), raw.Syntax)
		if !ok {
			continue
		}

		def := PropertyDefinition{
			Name:               raw.Name,
			ExpandedProperties: raw.ExpandedProperties,
			Syntax:             tree,
			Inherits:           raw.Inherits,
		}

		if raw.InitialValue != nil {
			if len(raw.ExpandedProperties) > 0 {
				l.log.AddID(logger.MsgID_Definitions_InitialWithExpanded, logger.Warning, nil, logger.Range{},
					fmt.Sprintf("Ignoring the initial value of the shorthand property %q", raw.Name))
			} else {
				def.InitialValueText = *raw.InitialValue
				def.InitialValue = l.parseInitialValue(raw.Name, *raw.InitialValue)
			}
		}

		l.properties[raw.Name] = tree
		l.registry.AddDefinition(def)
	}
}

func (l *loader) parseInitialValue(name string, text string) []css_ast.Value {
	values, err := css_parser.ParseValueText(text)
	if err != nil {
		l.log.AddID(logger.MsgID_Definitions_InitialValueMismatch, logger.Warning, nil, logger.Range{},
			fmt.Sprintf("Could not parse the initial value of %q: %s", name, err.Error()))
		return nil
	}
	if values == nil {
		values = []css_ast.Value{}
	}
	return values
}

func (l *loader) resolve() {
	r := newResolver(l.log, l.typedefs, l.properties)

	names := make([]string, 0, len(l.typedefs))
	for name := range l.typedefs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		l.registry.typedefs[name] = Typedef{
			Name:   name,
			Syntax: r.resolveTree("<"+name+">", l.typedefs[name]),
		}
	}

	for _, name := range l.registry.Names() {
		def := l.registry.definitions[name]
		def.Syntax = r.resolveTree(name, def.Syntax)
		l.registry.definitions[name] = def
	}
}

func (l *loader) checkInitialValues() {
	if l.options.SkipInitialValueCheck {
		return
	}

	for _, name := range l.registry.Names() {
		def := l.registry.definitions[name]
		if !def.HasInitialValue() || def.Syntax.IsEmpty() {
			continue
		}

		result, err := syntax_matcher.Match(l.log, def.Syntax, def.InitialValue, def.matchOptions)
		if err != nil || !result.Complete() {
			text := fmt.Sprintf("The initial value %q of %q does not match its syntax", def.InitialValueText, name)
			if err != nil {
				text += ": " + err.Error()
			}
			l.log.AddID(logger.MsgID_Definitions_InitialValueMismatch, logger.Warning, nil, logger.Range{}, text)
		}
	}
}
