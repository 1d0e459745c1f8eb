package helpers

import (
	"fmt"
	"strings"
)

// Formats ["a", "b"] as "a" and "b", and ["a", "b", "c"] as "a", "b", and "c"
func QuotedList(a []string) string {
	sb := strings.Builder{}
	for i, str := range a {
		if i > 0 {
			if len(a) > 2 {
				sb.WriteString(",")
			}
			if i+1 == len(a) {
				sb.WriteString(" and")
			}
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%q", str))
	}
	return sb.String()
}
