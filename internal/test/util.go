package test

import (
	"fmt"
	"os"
	"testing"

	"github.com/csssyntax/csssyntax/internal/logger"
)

func AssertEqual(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		t.Fatalf("%s != %s", observed, expected)
	}
}

func AssertEqualWithDiff(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	if observed != expected {
		stringA := fmt.Sprintf("%v", observed)
		stringB := fmt.Sprintf("%v", expected)
		color := logger.GetTerminalInfo(os.Stdout).UseColorEscapes
		t.Fatal("\n" + Diff(stringB, stringA, color))
	}
}

func SourceForTest(contents string) logger.Source {
	return logger.Source{
		Index:      0,
		PrettyPath: "<stdin>",
		Contents:   contents,
	}
}
