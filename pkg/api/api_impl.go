package api

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/csssyntax/csssyntax/internal/cache"
	"github.com/csssyntax/csssyntax/internal/config"
	"github.com/csssyntax/csssyntax/internal/css_ast"
	"github.com/csssyntax/csssyntax/internal/css_definitions"
	"github.com/csssyntax/csssyntax/internal/css_parser"
	"github.com/csssyntax/csssyntax/internal/css_printer"
	"github.com/csssyntax/csssyntax/internal/fs"
	"github.com/csssyntax/csssyntax/internal/logger"
	"github.com/csssyntax/csssyntax/internal/syntax_ast"
	"github.com/csssyntax/csssyntax/internal/syntax_matcher"
	"github.com/csssyntax/csssyntax/internal/syntax_parser"
	"github.com/csssyntax/csssyntax/internal/syntax_printer"
)

func validateColor(value StderrColor) logger.UseColor {
	switch value {
	case ColorIfTerminal:
		return logger.ColorIfTerminal
	case ColorNever:
		return logger.ColorNever
	case ColorAlways:
		return logger.ColorAlways
	default:
		panic("Invalid color")
	}
}

func validateLogLevel(value LogLevel) logger.LogLevel {
	switch value {
	case LogLevelSilent:
		return logger.LevelSilent
	case LogLevelInfo:
		return logger.LevelInfo
	case LogLevelWarning:
		return logger.LevelWarning
	case LogLevelError:
		return logger.LevelError
	default:
		panic("Invalid log level")
	}
}

func validateCharset(value Charset) css_printer.Options {
	switch value {
	case CharsetDefault, CharsetUTF8:
		return css_printer.Options{}
	case CharsetASCII:
		return css_printer.Options{ASCIIOnly: true}
	default:
		panic("Invalid charset")
	}
}

func validateLogOverrides(input map[string]LogLevel) map[logger.MsgID]logger.LogLevel {
	output := make(map[logger.MsgID]logger.LogLevel)
	for id, level := range input {
		logger.StringToMsgIDs(id, validateLogLevel(level), output)
	}
	return output
}

type logOptions struct {
	overrides  map[logger.MsgID]logger.LogLevel
	errorLimit int
	color      logger.UseColor
	level      logger.LogLevel
}

var silentLogOptions = logOptions{level: logger.LevelSilent}

func (options logOptions) newLog() logger.Log {
	if options.level == logger.LevelSilent {
		return logger.NewDeferLog(logger.LevelSilent, options.overrides)
	}
	log := logger.NewStderrLog(logger.OutputOptions{
		IncludeSource: true,
		ErrorLimit:    options.errorLimit,
		Color:         options.color,
		LogLevel:      options.level,
	})
	if options.overrides != nil {
		log.Overrides = options.overrides
	}
	return log
}

func convertLocationToPublic(loc *logger.MsgLocation) *Location {
	if loc == nil {
		return nil
	}
	return &Location{
		File:     loc.File,
		Line:     loc.Line,
		Column:   loc.Column,
		Length:   loc.Length,
		LineText: loc.LineText,
	}
}

func convertLocationToInternal(loc *Location) *logger.MsgLocation {
	if loc == nil {
		return nil
	}
	return &logger.MsgLocation{
		File:     loc.File,
		Line:     loc.Line,
		Column:   loc.Column,
		Length:   loc.Length,
		LineText: loc.LineText,
	}
}

func convertMessagesToPublic(kind logger.MsgKind, msgs []logger.Msg) []Message {
	var filtered []Message
	for _, msg := range msgs {
		if msg.Kind == kind {
			filtered = append(filtered, Message{
				Text:     msg.Data.Text,
				Location: convertLocationToPublic(msg.Data.Location),
			})
		}
	}
	return filtered
}

func finishResult(log logger.Log, result ValidateResult) ValidateResult {
	msgs := log.Done()
	result.Errors = convertMessagesToPublic(logger.Error, msgs)
	result.Warnings = convertMessagesToPublic(logger.Warning, msgs)
	if len(result.Errors) > 0 {
		result.Matched = false
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// Validate API

type validatorImpl struct {
	registry   *css_definitions.Registry
	grammars   *cache.GrammarCache
	logOptions logOptions
	printer    css_printer.Options
}

func readDefinitionFiles(fileSystem fs.FS, paths []string) ([]css_definitions.DefinitionTable, error) {
	tables := make([]css_definitions.DefinitionTable, 0, len(paths))
	for _, path := range paths {
		prettyPath := fs.PrettyPath(fileSystem, path)
		contents, canonicalErr, originalErr := fileSystem.ReadFile(path)
		if canonicalErr == syscall.ENOENT {
			return nil, fmt.Errorf("Could not find the definition file %q", prettyPath)
		}
		if originalErr != nil {
			return nil, fmt.Errorf("Could not read the definition file %q: %s", prettyPath, originalErr.Error())
		}
		tables = append(tables, css_definitions.DefinitionTable{PrettyPath: prettyPath, Contents: []byte(contents)})
	}
	return tables, nil
}

func newValidatorImpl(options ValidatorOptions, fileSystem fs.FS) (*Validator, error) {
	logOptions := logOptions{
		overrides:  validateLogOverrides(options.LogOverrides),
		errorLimit: options.ErrorLimit,
		color:      validateColor(options.Color),
		level:      validateLogLevel(options.LogLevel),
	}

	configOptions := config.DefaultOptions()
	configOptions.LogOverrides = logOptions.overrides
	configOptions.LogLevel = logOptions.level
	configOptions.SkipInitialValueCheck = options.SkipInitialValueCheck
	if options.StepLimit > 0 {
		configOptions.MatchStepLimit = options.StepLimit
	}

	tables, err := readDefinitionFiles(fileSystem, options.DefinitionFiles)
	if err != nil {
		return nil, err
	}

	log := logOptions.newLog()
	registry, err := css_definitions.Load(log, configOptions, tables...)
	log.Done()
	if err != nil {
		return nil, err
	}

	return &Validator{impl: &validatorImpl{
		registry:   registry,
		grammars:   cache.MakeGrammarCache(),
		logOptions: logOptions,
		printer:    validateCharset(options.Charset),
	}}, nil
}

func (impl *validatorImpl) validate(property string, value string) ValidateResult {
	log := impl.logOptions.newLog()

	// Property names are ASCII case-insensitive
	name := strings.ToLower(property)

	def, ok := impl.registry.Find(name)
	if !ok {
		text := fmt.Sprintf("Unknown property %q", property)
		if suggestion, ok := impl.registry.SuggestName(name); ok {
			text += fmt.Sprintf(" (did you mean %q?)", suggestion)
		}
		log.AddError(nil, logger.Range{}, text)
		return finishResult(log, ValidateResult{})
	}

	return matchValue(log, fmt.Sprintf("the property %q", def.Name), def.Syntax, impl.registry.MatchOptions(), impl.printer, value)
}

func (impl *validatorImpl) matchSyntax(grammar string, value string) ValidateResult {
	log := impl.logOptions.newLog()
	tree, ok := impl.grammars.Compile(log, grammar, func(log logger.Log, grammar string) (syntax_ast.Tree, bool) {
		return compileGrammar(log, impl.registry, grammar)
	})
	if !ok {
		return finishResult(log, ValidateResult{})
	}
	return matchValue(log, fmt.Sprintf("the syntax %q", grammar), tree, impl.registry.MatchOptions(), impl.printer, value)
}

func (impl *validatorImpl) property(name string) (PropertyInfo, bool) {
	def, ok := impl.registry.Find(strings.ToLower(name))
	if !ok {
		return PropertyInfo{}, false
	}
	return PropertyInfo{
		Name:               def.Name,
		Syntax:             syntax_printer.Print(def.Syntax),
		InitialValue:       def.InitialValueText,
		ExpandedProperties: def.ExpandedProperties,
		HasInitialValue:    def.HasInitialValue(),
		Inherits:           def.Inherits,
	}, true
}

func compileGrammar(log logger.Log, registry *css_definitions.Registry, grammar string) (syntax_ast.Tree, bool) {
	tree, ok := syntax_parser.Parse(log, logger.Source{PrettyPath: "<grammar>", Contents: grammar})
	if !ok {
		return syntax_ast.Tree{}, false
	}
	return registry.Resolve(log, grammar, tree), true
}

func matchValue(log logger.Log, owner string, tree syntax_ast.Tree, options syntax_matcher.Options, printer css_printer.Options, value string) ValidateResult {
	values, ok := css_parser.ParseValue(log, logger.Source{PrettyPath: "<value>", Contents: value})
	if !ok {
		return finishResult(log, ValidateResult{})
	}

	result := ValidateResult{Value: css_printer.Print(values, printer)}
	match, err := syntax_matcher.Match(log, tree, values, options)

	switch {
	case err != nil:
		log.AddError(nil, logger.Range{}, fmt.Sprintf("Could not check the value %q against %s: %s", value, owner, err.Error()))

	case match.Complete():
		result.Matched = true

	case match.Matched && len(match.MatchedValues) > 0:
		log.AddError(nil, logger.Range{}, fmt.Sprintf("The value %q is not valid for %s: unexpected %q after %q",
			value, owner, css_ast.ValuesToString(match.Remainder), css_ast.ValuesToString(match.MatchedValues)))

	default:
		log.AddError(nil, logger.Range{}, fmt.Sprintf("The value %q is not valid for %s", value, owner))
	}

	return finishResult(log, result)
}

////////////////////////////////////////////////////////////////////////////////
// Syntax API

func compileSyntaxImpl(grammar string) CompileResult {
	log := silentLogOptions.newLog()
	tree, ok := syntax_parser.Parse(log, logger.Source{PrettyPath: "<grammar>", Contents: grammar})
	result := CompileResult{Errors: convertMessagesToPublic(logger.Error, log.Done())}
	if ok {
		result.Syntax = syntax_printer.Print(tree)
	}
	return result
}

func matchSyntaxImpl(grammar string, value string) ValidateResult {
	log := silentLogOptions.newLog()
	registry := css_definitions.New(config.DefaultOptions())
	tree, ok := compileGrammar(log, registry, grammar)
	if !ok {
		return finishResult(log, ValidateResult{})
	}
	return matchValue(log, fmt.Sprintf("the syntax %q", grammar), tree, registry.MatchOptions(), css_printer.Options{}, value)
}

////////////////////////////////////////////////////////////////////////////////
// FormatMessages API

func formatMsgsImpl(msgs []Message, opts FormatMessagesOptions) []string {
	kind := logger.Error
	if opts.Kind == WarningMessage {
		kind = logger.Warning
	}

	formatted := make([]string, len(msgs))
	for i, msg := range msgs {
		internal := logger.Msg{
			Kind: kind,
			Data: logger.MsgData{
				Text:     msg.Text,
				Location: convertLocationToInternal(msg.Location),
			},
		}
		formatted[i] = internal.String(logger.OutputOptions{IncludeSource: true}, logger.TerminalInfo{UseColorEscapes: opts.Color})
	}
	return formatted
}
