package renamer

import "strings"

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Namer hands out short unique names: a, b, ..., z, ab, bb, ..., zb, ac, ...
// Digits are written least significant first.
type Namer struct {
	last int
}

func (n *Namer) Next() string {
	if n.last == 0 {
		n.last++
		return "a"
	}
	var sb strings.Builder
	for current := n.last; current > 0; current /= len(alphabet) {
		sb.WriteByte(alphabet[current%len(alphabet)])
	}
	n.last++
	return sb.String()
}
