// This API exposes the grammar compiler and the value matcher to Go code.
// Problems are never returned as Go errors. They are returned as "Message"
// values in the "Errors" and "Warnings" arrays of each result, and are also
// printed to stderr when the log level asks for it.
//
// Validate a property value:
//
//     validator, err := api.NewValidator(api.ValidatorOptions{})
//     if err != nil {
//         os.Exit(1)
//     }
//     result := validator.Validate("border", "1px solid black")
//     fmt.Println(result.Matched)
//
// Match a value against a grammar directly:
//
//     result := api.MatchSyntax("<length>{1,4} | auto", "1px 2px")
//     fmt.Println(result.Matched)
//
package api

import "github.com/csssyntax/csssyntax/internal/fs"

type Location struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string
}

type Message struct {
	Text     string
	Location *Location
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type LogLevel uint8

const (
	LogLevelSilent LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

type Charset uint8

const (
	CharsetDefault Charset = iota
	CharsetASCII
	CharsetUTF8
)

////////////////////////////////////////////////////////////////////////////////
// Validate API

type ValidatorOptions struct {
	Color    StderrColor
	LogLevel LogLevel

	// Changes the level of individual messages by name, such as
	// "case-insensitive-literal" or "unresolved-reference"
	LogOverrides map[string]LogLevel

	// The maximum number of match attempts for one value. Zero means the
	// default limit.
	StepLimit int

	// Stop printing messages after this many errors. Zero means no limit.
	ErrorLimit int

	SkipInitialValueCheck bool

	// Paths to JSON files with extra property definitions, in the same format
	// as the builtin table. Properties that are already defined are ignored
	// with a warning.
	DefinitionFiles []string

	// Controls how non-ASCII characters are printed in "ValidateResult.Value".
	// The default is "CharsetUTF8".
	Charset Charset
}

type ValidateResult struct {
	Errors   []Message
	Warnings []Message

	// The value after decoding, printed back out as CSS. Strings are only
	// quoted when needed and colors use the shortest hex form.
	Value string

	Matched bool
}

type PropertyInfo struct {
	Name               string
	Syntax             string
	InitialValue       string
	ExpandedProperties []string
	HasInitialValue    bool
	Inherits           bool
}

// A validator holds the loaded property tables. It can be used from
// multiple goroutines at once.
type Validator struct {
	impl *validatorImpl
}

func NewValidator(options ValidatorOptions) (*Validator, error) {
	return newValidatorImpl(options, fs.RealFS())
}

// Validate checks a value against the grammar of a property. Unknown
// properties are reported as an error with a suggestion when there is a
// close match.
func (v *Validator) Validate(property string, value string) ValidateResult {
	return v.impl.validate(property, value)
}

// MatchSyntax is like the package-level "MatchSyntax" except that the
// grammar may also refer to the typedefs and properties of this validator.
// Compiled grammars are cached, so checking many values against the same
// grammar text is cheap. The cache holds a bounded number of grammars and is
// emptied when it fills up.
func (v *Validator) MatchSyntax(grammar string, value string) ValidateResult {
	return v.impl.matchSyntax(grammar, value)
}

func (v *Validator) Property(name string) (PropertyInfo, bool) {
	return v.impl.property(name)
}

// Properties returns the names of all known properties in sorted order
func (v *Validator) Properties() []string {
	return v.impl.registry.Names()
}

////////////////////////////////////////////////////////////////////////////////
// Syntax API

type CompileResult struct {
	Errors []Message

	// The grammar printed in canonical form, with every group bracketed.
	// This is empty if there were errors.
	Syntax string
}

func CompileSyntax(grammar string) CompileResult {
	return compileSyntaxImpl(grammar)
}

// MatchSyntax checks a value against a grammar. References in the grammar
// can only be to builtin datatypes such as "<length>" and "<color()>".
func MatchSyntax(grammar string, value string) ValidateResult {
	return matchSyntaxImpl(grammar, value)
}

////////////////////////////////////////////////////////////////////////////////
// FormatMessages API

type MessageKind uint8

const (
	ErrorMessage MessageKind = iota
	WarningMessage
)

type FormatMessagesOptions struct {
	Kind  MessageKind
	Color bool
}

// FormatMessages renders messages the same way they are printed to stderr
func FormatMessages(msgs []Message, opts FormatMessagesOptions) []string {
	return formatMsgsImpl(msgs, opts)
}
