package helpers

import (
	"strings"
	"unicode/utf8"
)

// This suggests a known name for a misspelled one. A suggestion is only made
// when the two differ by one missing, extra, replaced or swapped character,
// which catches the common slips ("colr", "colour", "counter-rest").
type TypoDetector struct {
	oneCharTypos map[string]string
	valid        map[string]bool
}

func MakeTypoDetector(valid []string) TypoDetector {
	detector := TypoDetector{
		oneCharTypos: make(map[string]string),
		valid:        make(map[string]bool, len(valid)),
	}

	// Add all combinations of each valid word with one character missing.
	// Short words are skipped since nearly everything is one edit away.
	for _, correct := range valid {
		lower := strings.ToLower(correct)
		detector.valid[lower] = true
		if len(lower) > 3 {
			for i, ch := range lower {
				deleted := lower[:i] + lower[i+utf8.RuneLen(ch):]
				if _, ok := detector.oneCharTypos[deleted]; !ok {
					detector.oneCharTypos[deleted] = correct
				}
			}
		}
	}

	return detector
}

func (detector TypoDetector) MaybeCorrectTypo(typo string) (string, bool) {
	typo = strings.ToLower(typo)

	// Check for a single missing character
	if corrected, ok := detector.oneCharTypos[typo]; ok {
		return corrected, true
	}

	// Check for a single extra or replaced character
	for i, ch := range typo {
		deleted := typo[:i] + typo[i+utf8.RuneLen(ch):]
		if detector.valid[deleted] {
			return deleted, true
		}
		if corrected, ok := detector.oneCharTypos[deleted]; ok {
			return corrected, true
		}
	}

	// Check for two adjacent characters that were swapped
	for i := 0; i+1 < len(typo); i++ {
		swapped := typo[:i] + string(typo[i+1]) + string(typo[i]) + typo[i+2:]
		if detector.valid[swapped] {
			return swapped, true
		}
	}

	return "", false
}
