package helpers

import (
	"testing"

	"github.com/csssyntax/csssyntax/internal/test"
)

func TestTypoDetector(t *testing.T) {
	detector := MakeTypoDetector([]string{"color", "counter-reset", "margin-top", "top"})

	expect := func(typo string, expected string) {
		t.Helper()
		corrected, ok := detector.MaybeCorrectTypo(typo)
		if expected == "" {
			test.AssertEqual(t, ok, false)
			return
		}
		test.AssertEqual(t, ok, true)
		test.AssertEqual(t, corrected, expected)
	}

	expect("colr", "color")
	expect("colour", "color")
	expect("colar", "color")
	expect("clor", "color")
	expect("oclor", "color")
	expect("COLR", "color")
	expect("counter-rest", "counter-reset")
	expect("margin-tpo", "margin-top")
	expect("margintop", "margin-top")
	expect("width", "")
	expect("tp", "")
}

func TestQuotedList(t *testing.T) {
	test.AssertEqual(t, QuotedList(nil), "")
	test.AssertEqual(t, QuotedList([]string{"a"}), "\"a\"")
	test.AssertEqual(t, QuotedList([]string{"a", "b"}), "\"a\" and \"b\"")
	test.AssertEqual(t, QuotedList([]string{"a", "b", "c"}), "\"a\", \"b\", and \"c\"")
}
