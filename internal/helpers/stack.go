package helpers

import (
	"runtime/debug"
	"strings"
)

const modulePrefix = "github.com/csssyntax/csssyntax/"

// PrettyPrintedStack returns the current call stack with one frame per line
// in the form "function (file:line)". Frames outside of this module are
// left out since they are almost always runtime or testing internals.
func PrettyPrintedStack() string {
	lines := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "goroutine ") {
		lines = lines[1:]
	}

	sb := strings.Builder{}
	for i := 0; i+1 < len(lines); i += 2 {
		function := lines[i]
		location := strings.TrimPrefix(lines[i+1], "\t")
		if !strings.HasPrefix(function, modulePrefix) {
			continue
		}

		// "pkg.(*T).method(0x1, 0x2)" => "pkg.(*T).method"
		if strings.HasSuffix(function, ")") {
			if paren := strings.LastIndexByte(function, '('); paren > 0 {
				function = function[:paren]
			}
		}
		function = strings.TrimPrefix(function, modulePrefix)

		// "/path/to/file.go:12 +0x1f" => "file.go:12"
		if offset := strings.LastIndex(location, " +0x"); offset != -1 {
			location = location[:offset]
		}
		if slash := strings.LastIndexByte(location, '/'); slash != -1 {
			location = location[slash+1:]
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(function)
		sb.WriteString(" (")
		sb.WriteString(location)
		sb.WriteString(")")
	}
	return sb.String()
}
