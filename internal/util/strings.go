package util

import (
	"fmt"
	"strings"
	"unicode"
)

// EscapeString makes s safe to print on one line. Newlines and tabs become
// \n and \t; other non-printable or non-ASCII runes become \xNN.
func EscapeString(s string) string {
	sb := strings.Builder{}
	for _, r := range s {
		switch {
		case r == '\n':
			sb.WriteString("\\n")
		case r == '\t':
			sb.WriteString("\\t")
		case unicode.IsPrint(r) && r < unicode.MaxASCII:
			sb.WriteRune(r)
		default:
			sb.WriteString(fmt.Sprintf("\\x%02X", r))
		}
	}
	return sb.String()
}
