//go:build windows
// +build windows

package logger

import (
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

const SupportsColorEscapes = true

var setConsoleTextAttribute = windows.NewLazySystemDLL("kernel32.dll").NewProc("SetConsoleTextAttribute")

func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	handle := windows.Handle(file.Fd())

	// Is this file descriptor a terminal?
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return
	}
	info.IsTTY = true
	info.UseColorEscapes = !hasNoColorEnvironmentVariable()

	// Get the width of the window
	var buffer windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(handle, &buffer); err == nil {
		info.Width = int(buffer.Size.X) - 1
		info.Height = int(buffer.Size.Y) - 1
	}
	return
}

const (
	foregroundBlue      = 1
	foregroundGreen     = 2
	foregroundRed       = 4
	foregroundIntensity = 8
	foregroundWhite     = foregroundRed | foregroundGreen | foregroundBlue
)

// The console doesn't understand escape sequences so each one is replaced
// with a call that sets the text attributes
var consoleAttributes = []struct {
	escape     string
	attributes uintptr
}{
	{TerminalColors.Reset, foregroundWhite},
	{TerminalColors.Bold, foregroundWhite | foregroundIntensity},
	{TerminalColors.Dim, foregroundWhite},
	{TerminalColors.Underline, foregroundWhite},
	{TerminalColors.Red, foregroundRed},
	{TerminalColors.Green, foregroundGreen},
	{TerminalColors.Blue, foregroundBlue},
	{TerminalColors.Cyan, foregroundGreen | foregroundBlue},
	{TerminalColors.Magenta, foregroundRed | foregroundBlue},
	{TerminalColors.Yellow, foregroundRed | foregroundGreen},
}

func writeStringWithColor(file *os.File, text string) {
	fd := file.Fd()

	for {
		start := strings.IndexByte(text, '\033')
		if start == -1 {
			break
		}
		file.WriteString(text[:start])
		text = text[start:]

		matched := false
		for _, entry := range consoleAttributes {
			if strings.HasPrefix(text, entry.escape) {
				setConsoleTextAttribute.Call(fd, entry.attributes)
				text = text[len(entry.escape):]
				matched = true
				break
			}
		}
		if !matched {
			file.WriteString(text[:1])
			text = text[1:]
		}
	}

	file.WriteString(text)
}
