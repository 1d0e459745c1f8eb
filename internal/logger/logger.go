package logger

// Logging is designed to look and feel like clang's error format. Each
// message that refers to a grammar or value string contains the text of
// the line with the problem and a marker under the offending range.

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg

	Level     LogLevel
	Overrides map[MsgID]LogLevel
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelVerbose
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
	Info
	Note
	Debug
	Verbose
)

func (kind MsgKind) String() string {
	switch kind {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	case Note:
		return "note"
	case Debug:
		return "debug"
	case Verbose:
		return "verbose"
	default:
		panic("Internal error")
	}
}

type Msg struct {
	Notes []MsgData
	Data  MsgData
	Kind  MsgKind
	ID    MsgID
}

type MsgData struct {
	Location *MsgLocation
	Text     string
}

type MsgLocation struct {
	File     string
	LineText string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
}

type Loc struct {
	// This is the 0-based index of this location from the start of the file, in bytes
	Start int32
}

type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 {
	return r.Loc.Start + r.Len
}

// This type is just so we can use Go's native sort function
type SortableMsgs []Msg

func (a SortableMsgs) Len() int          { return len(a) }
func (a SortableMsgs) Swap(i int, j int) { a[i], a[j] = a[j], a[i] }

func (a SortableMsgs) Less(i int, j int) bool {
	ai := a[i]
	aj := a[j]
	aiLoc := ai.Data.Location
	ajLoc := aj.Data.Location
	if aiLoc == nil || ajLoc == nil {
		return aiLoc == nil && ajLoc != nil
	}
	if aiLoc.File != ajLoc.File {
		return aiLoc.File < ajLoc.File
	}
	if aiLoc.Line != ajLoc.Line {
		return aiLoc.Line < ajLoc.Line
	}
	if aiLoc.Column != ajLoc.Column {
		return aiLoc.Column < ajLoc.Column
	}
	if aiLoc.Length != ajLoc.Length {
		return aiLoc.Length < ajLoc.Length
	}
	if ai.Kind != aj.Kind {
		return ai.Kind < aj.Kind
	}
	return ai.Data.Text < aj.Data.Text
}

// A source is a single grammar or value string. Grammars from the resource
// tables use the table name and the entry name as the pretty path so that
// messages point at the entry that has the problem.
type Source struct {
	// This is used for error messages. It is never used to access a file.
	PrettyPath string

	Contents string

	Index uint32
}

func plural(prefix string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, prefix)
	}
	return fmt.Sprintf("%d %ss", count, prefix)
}

func errorAndWarningSummary(errors int, warnings int) string {
	switch {
	case errors == 0:
		return plural("warning", warnings)
	case warnings == 0:
		return plural("error", errors)
	default:
		return fmt.Sprintf("%s and %s",
			plural("warning", warnings),
			plural("error", errors))
	}
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
	Height          int
}

type UseColor uint8

const (
	ColorIfTerminal UseColor = iota
	ColorNever
	ColorAlways
)

type OutputOptions struct {
	IncludeSource bool
	ErrorLimit    int
	Color         UseColor
	LogLevel      LogLevel
}

func NewStderrLog(options OutputOptions) Log {
	var mutex sync.Mutex
	var msgs SortableMsgs
	terminalInfo := GetTerminalInfo(os.Stderr)
	errors := 0
	warnings := 0
	errorLimitWasHit := false

	switch options.Color {
	case ColorNever:
		terminalInfo.UseColorEscapes = false
	case ColorAlways:
		terminalInfo.UseColorEscapes = SupportsColorEscapes
	}

	return Log{
		Level:     options.LogLevel,
		Overrides: make(map[MsgID]LogLevel),

		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			msgs = append(msgs, msg)

			// Be silent if we're past the limit so we don't flood the terminal
			if errorLimitWasHit {
				return
			}

			switch msg.Kind {
			case Error:
				errors++
				if options.LogLevel <= LevelError {
					writeStringWithColor(os.Stderr, msg.String(options, terminalInfo))
				}
			case Warning:
				warnings++
				if options.LogLevel <= LevelWarning {
					writeStringWithColor(os.Stderr, msg.String(options, terminalInfo))
				}
			case Info:
				if options.LogLevel <= LevelInfo {
					writeStringWithColor(os.Stderr, msg.String(options, terminalInfo))
				}
			case Debug, Verbose:
				if options.LogLevel <= LevelDebug {
					writeStringWithColor(os.Stderr, msg.String(options, terminalInfo))
				}
			}

			// Silence further output if we reached the error limit
			if options.ErrorLimit != 0 && errors >= options.ErrorLimit {
				errorLimitWasHit = true
				if options.LogLevel <= LevelError {
					writeStringWithColor(os.Stderr, fmt.Sprintf(
						"%s reached (disable error limit with --error-limit=0)\n", errorAndWarningSummary(errors, warnings)))
				}
			}
		},

		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return errors > 0
		},

		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()

			// Print out a summary if the error limit wasn't hit
			if !errorLimitWasHit && options.LogLevel <= LevelInfo && (warnings != 0 || errors != 0) {
				writeStringWithColor(os.Stderr, fmt.Sprintf("%s\n", errorAndWarningSummary(errors, warnings)))
			}

			sort.Stable(msgs)
			return msgs
		},
	}
}

func PrintErrorToStderr(osArgs []string, text string) {
	PrintMessageToStderr(osArgs, Msg{Kind: Error, Data: MsgData{Text: text}})
}

func OutputOptionsForArgs(osArgs []string) OutputOptions {
	options := OutputOptions{IncludeSource: true}

	// Implement a mini argument parser so these options always work even if we
	// haven't yet gotten to the general-purpose argument parsing code
	for _, arg := range osArgs {
		switch arg {
		case "--color=false":
			options.Color = ColorNever
		case "--color=true", "--color":
			options.Color = ColorAlways
		case "--log-level=info":
			options.LogLevel = LevelInfo
		case "--log-level=warning":
			options.LogLevel = LevelWarning
		case "--log-level=error":
			options.LogLevel = LevelError
		case "--log-level=silent":
			options.LogLevel = LevelSilent
		}
	}

	return options
}

func PrintMessageToStderr(osArgs []string, msg Msg) {
	log := NewStderrLog(OutputOptionsForArgs(osArgs))
	log.AddMsg(msg)
	log.Done()
}

func NewDeferLog(level LogLevel, overrides map[MsgID]LogLevel) Log {
	var msgs SortableMsgs
	var mutex sync.Mutex
	var hasErrors bool

	return Log{
		Level:     level,
		Overrides: overrides,

		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},

		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},

		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.Stable(msgs)
			return msgs
		},
	}
}

type Colors struct {
	Reset     string
	Bold      string
	Dim       string
	Underline string

	Red     string
	Green   string
	Blue    string
	Cyan    string
	Magenta string
	Yellow  string
}

var TerminalColors = Colors{
	Reset:     "\033[0m",
	Bold:      "\033[1m",
	Dim:       "\033[37m",
	Underline: "\033[4m",

	Red:     "\033[31m",
	Green:   "\033[32m",
	Blue:    "\033[34m",
	Cyan:    "\033[36m",
	Magenta: "\033[35m",
	Yellow:  "\033[33m",
}

func (msg Msg) String(options OutputOptions, terminalInfo TerminalInfo) string {
	colors := Colors{}
	if terminalInfo.UseColorEscapes {
		colors = TerminalColors
	}

	kindColor := colors.Red
	switch msg.Kind {
	case Warning:
		kindColor = colors.Magenta
	case Info, Note:
		kindColor = colors.Blue
	case Debug, Verbose:
		kindColor = colors.Cyan
	}

	sb := strings.Builder{}
	writeMsgData(&sb, msg.Kind.String(), kindColor, msg.Data, options, colors)
	for _, note := range msg.Notes {
		writeMsgData(&sb, "note", colors.Dim, note, options, colors)
	}
	return sb.String()
}

func writeMsgData(sb *strings.Builder, kind string, kindColor string, data MsgData, options OutputOptions, colors Colors) {
	if data.Location == nil {
		sb.WriteString(fmt.Sprintf("%s%s%s: %s%s%s\n",
			colors.Bold, kindColor, kind,
			colors.Reset+colors.Bold, data.Text,
			colors.Reset))
		return
	}

	if !options.IncludeSource {
		sb.WriteString(fmt.Sprintf("%s%s: %s%s: %s%s%s\n",
			colors.Bold, data.Location.File,
			kindColor, kind,
			colors.Reset+colors.Bold, data.Text,
			colors.Reset))
		return
	}

	d := detailStruct(data)

	sb.WriteString(fmt.Sprintf("%s%s:%d:%d: %s%s: %s%s%s\n%s%s%s%s%s%s\n%s%s%s%s\n",
		colors.Bold, d.Path, d.Line, d.Column,
		kindColor, kind,
		colors.Reset+colors.Bold, d.Message,
		colors.Reset,
		colors.Reset, d.SourceBefore, colors.Green, d.SourceMarked, colors.Reset, d.SourceAfter,
		colors.Green, d.Indent, d.Marker, colors.Reset))
}

type MsgDetail struct {
	Path    string
	Line    int
	Column  int
	Message string

	// Source == SourceBefore + SourceMarked + SourceAfter
	Source       string
	SourceBefore string
	SourceMarked string
	SourceAfter  string

	Indent string
	Marker string
}

func computeLineAndColumn(contents string, offset int) (lineCount int, columnCount int, lineStart int, lineEnd int) {
	var prevCodePoint rune
	if offset > len(contents) {
		offset = len(contents)
	}

	// Scan up to the offset and count lines
	for i, codePoint := range contents[:offset] {
		switch codePoint {
		case '\n':
			lineStart = i + 1
			if prevCodePoint != '\r' {
				lineCount++
			}
		case '\r':
			lineStart = i + 1
			lineCount++
		}
		prevCodePoint = codePoint
	}

	// Scan to the end of the line (or end of file if this is the last line)
	lineEnd = len(contents)
loop:
	for i, codePoint := range contents[offset:] {
		switch codePoint {
		case '\r', '\n':
			lineEnd = offset + i
			break loop
		}
	}

	columnCount = offset - lineStart
	return
}

// Grammar strings are short, so this tracker recomputes line and column
// information on every request instead of caching line offsets.
type LineColumnTracker struct {
	source *Source
}

func MakeLineColumnTracker(source *Source) LineColumnTracker {
	return LineColumnTracker{source: source}
}

func (t *LineColumnTracker) MsgLocationOrNil(r Range) *MsgLocation {
	if t == nil || t.source == nil {
		return nil
	}

	// Convert the index into a line and column number
	lineCount, columnCount, lineStart, lineEnd := computeLineAndColumn(t.source.Contents, int(r.Loc.Start))

	return &MsgLocation{
		File:     t.source.PrettyPath,
		Line:     lineCount + 1, // 0-based to 1-based
		Column:   columnCount,
		Length:   int(r.Len),
		LineText: t.source.Contents[lineStart:lineEnd],
	}
}

func (t *LineColumnTracker) MsgData(r Range, text string) MsgData {
	return MsgData{
		Text:     text,
		Location: t.MsgLocationOrNil(r),
	}
}

func detailStruct(data MsgData) MsgDetail {
	loc := *data.Location
	lineText := loc.LineText

	// Clamp values in range
	if loc.Line < 0 {
		loc.Line = 0
	}
	if loc.Column < 0 {
		loc.Column = 0
	}
	if loc.Length < 0 {
		loc.Length = 0
	}
	if loc.Column > len(lineText) {
		loc.Column = len(lineText)
	}
	if loc.Length > len(lineText)-loc.Column {
		loc.Length = len(lineText) - loc.Column
	}

	indent := strings.Repeat(" ", loc.Column)
	marker := "^"
	if loc.Length > 1 {
		marker = strings.Repeat("~", loc.Length)
	}

	return MsgDetail{
		Path:    loc.File,
		Line:    loc.Line,
		Column:  loc.Column,
		Message: data.Text,

		Source:       lineText,
		SourceBefore: lineText[:loc.Column],
		SourceMarked: lineText[loc.Column : loc.Column+loc.Length],
		SourceAfter:  lineText[loc.Column+loc.Length:],

		Indent: indent,
		Marker: marker,
	}
}

func allowOverride(overrides map[MsgID]LogLevel, id MsgID, kind MsgKind) (MsgKind, bool) {
	if logLevel, ok := overrides[id]; ok {
		switch logLevel {
		case LevelVerbose:
			return Verbose, true
		case LevelDebug:
			return Debug, true
		case LevelInfo:
			return Info, true
		case LevelWarning:
			return Warning, true
		case LevelError:
			return Error, true
		default:
			// Setting the log level to "silent" silences this log message
			return MsgKind(0), false
		}
	}
	return kind, true
}

func (log Log) AddError(tracker *LineColumnTracker, r Range, text string) {
	log.AddMsg(Msg{
		Kind: Error,
		Data: tracker.MsgData(r, text),
	})
}

func (log Log) AddID(id MsgID, kind MsgKind, tracker *LineColumnTracker, r Range, text string) {
	if override, ok := allowOverride(log.Overrides, id, kind); ok {
		log.AddMsg(Msg{
			ID:   id,
			Kind: override,
			Data: tracker.MsgData(r, text),
		})
	}
}

// See https://no-color.org/
func hasNoColorEnvironmentVariable() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}
