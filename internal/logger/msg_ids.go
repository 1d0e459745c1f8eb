package logger

// Most non-error log messages are given a message ID that can be used to set
// the log level for that message. Errors do not get a message ID because you
// cannot turn errors into non-errors (otherwise an invalid grammar would be
// silently accepted). Internal log messages that are part of verbose output
// use "MsgID_None" instead.
type MsgID = uint8

const (
	MsgID_None MsgID = iota

	// Grammar compiler
	MsgID_Syntax_CompileFailed
	MsgID_Syntax_EmptyGroup

	// Property definitions
	MsgID_Definitions_InitialValueMismatch
	MsgID_Definitions_InitialWithExpanded
	MsgID_Definitions_UnresolvedReference
	MsgID_Definitions_DuplicateProperty

	// Value matcher
	MsgID_Match_CaseInsensitiveLiteral
	MsgID_Match_Unsupported

	MsgID_END // Keep this at the end (used only for tests)
)

func StringToMsgIDs(str string, logLevel LogLevel, overrides map[MsgID]LogLevel) {
	switch str {
	// Grammar compiler
	case "syntax-compile-failed":
		overrides[MsgID_Syntax_CompileFailed] = logLevel
	case "syntax-empty-group":
		overrides[MsgID_Syntax_EmptyGroup] = logLevel

	// Property definitions
	case "initial-value-mismatch":
		overrides[MsgID_Definitions_InitialValueMismatch] = logLevel
	case "initial-with-expanded":
		overrides[MsgID_Definitions_InitialWithExpanded] = logLevel
	case "unresolved-reference":
		overrides[MsgID_Definitions_UnresolvedReference] = logLevel
	case "duplicate-property":
		overrides[MsgID_Definitions_DuplicateProperty] = logLevel

	// Value matcher
	case "case-insensitive-literal":
		overrides[MsgID_Match_CaseInsensitiveLiteral] = logLevel
	case "unsupported-component":
		overrides[MsgID_Match_Unsupported] = logLevel

	default:
		// Ignore invalid entries since this message id may have
		// been renamed/removed since when this code was written
	}
}

func MsgIDToString(id MsgID) string {
	switch id {
	// Grammar compiler
	case MsgID_Syntax_CompileFailed:
		return "syntax-compile-failed"
	case MsgID_Syntax_EmptyGroup:
		return "syntax-empty-group"

	// Property definitions
	case MsgID_Definitions_InitialValueMismatch:
		return "initial-value-mismatch"
	case MsgID_Definitions_InitialWithExpanded:
		return "initial-with-expanded"
	case MsgID_Definitions_UnresolvedReference:
		return "unresolved-reference"
	case MsgID_Definitions_DuplicateProperty:
		return "duplicate-property"

	// Value matcher
	case MsgID_Match_CaseInsensitiveLiteral:
		return "case-insensitive-literal"
	case MsgID_Match_Unsupported:
		return "unsupported-component"
	}

	return ""
}
