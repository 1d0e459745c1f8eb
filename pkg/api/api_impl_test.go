package api

import (
	"strings"
	"testing"

	"github.com/csssyntax/csssyntax/internal/fs"
	"github.com/csssyntax/csssyntax/internal/test"
)

func TestDefinitionFiles(t *testing.T) {
	mockFS := fs.MockFS(map[string]string{
		"/project/defs/extra.json": `[{"name": "gap-size", "syntax": "<length>{1,2}"}]`,
		"/project/broken.json":     `{`,
	}, "/project")

	validator, err := newValidatorImpl(ValidatorOptions{DefinitionFiles: []string{"defs/extra.json"}}, mockFS)
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, len(validator.Properties()), 116)
	test.AssertEqual(t, validator.Validate("gap-size", "1px 2px").Matched, true)
	test.AssertEqual(t, validator.Validate("gap-size", "1px 2px 3px").Matched, false)

	_, err = newValidatorImpl(ValidatorOptions{DefinitionFiles: []string{"/project/missing.json"}}, mockFS)
	test.AssertEqualWithDiff(t, err.Error(), "Could not find the definition file \"missing.json\"")

	_, err = newValidatorImpl(ValidatorOptions{DefinitionFiles: []string{"broken.json"}}, mockFS)
	if err == nil || !strings.HasPrefix(err.Error(), "Could not parse the property definition table \"broken.json\": ") {
		t.Fatalf("Unexpected error %v", err)
	}
}

func TestValidateCharset(t *testing.T) {
	test.AssertEqual(t, validateCharset(CharsetDefault).ASCIIOnly, false)
	test.AssertEqual(t, validateCharset(CharsetUTF8).ASCIIOnly, false)
	test.AssertEqual(t, validateCharset(CharsetASCII).ASCIIOnly, true)
}
