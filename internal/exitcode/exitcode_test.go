package exitcode_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/csssyntax/csssyntax/internal/exitcode"
	"github.com/csssyntax/csssyntax/internal/test"
)

func TestGet(t *testing.T) {
	base := exitcode.Set(errors.New(""), exitcode.Usage)
	wrapped := fmt.Errorf("wrapping: %w", base)

	testCases := map[string]struct {
		err  error
		code int
	}{
		"nil":     {nil, exitcode.Success},
		"default": {errors.New(""), exitcode.Failure},
		"set":     {exitcode.Set(errors.New(""), 3), 3},
		"wrapped": {wrapped, exitcode.Usage},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			test.AssertEqual(t, exitcode.Get(tc.err), tc.code)
		})
	}
}

func TestSet(t *testing.T) {
	err := errors.New("hello")
	coder := exitcode.Set(err, exitcode.Usage)
	test.AssertEqualWithDiff(t, coder.Error(), err.Error())
	test.AssertEqual(t, errors.Is(coder, err), true)
	test.AssertEqual(t, exitcode.Set(nil, exitcode.Usage), nil)
}
