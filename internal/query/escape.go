package query

import "strings"

// likeEscaper backslash-escapes the backend LIKE metacharacters, plus '*'
// so that a caller-supplied literal star stays distinguishable from the
// prefix wildcard appended afterward.
var likeEscaper = strings.NewReplacer(`%`, `\%`, `_`, `\_`, `*`, `\*`)

// SearchPattern converts a canonical key into a prefix-anchored LIKE
// pattern for use with ESCAPE '\'.
//
// The order matters: escape %, _ and literal * in the key content, append
// the dataset wildcard '*', translate unescaped '*' to the backend's '%',
// then restore escaped stars as literal '*'. Reordering these steps either
// double-escapes or lets user-supplied stars act as backend wildcards.
func SearchPattern(key string) string {
	escaped := likeEscaper.Replace(key) + "*"

	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		switch {
		case escaped[i] == '\\' && i+1 < len(escaped) && escaped[i+1] == '*':
			b.WriteByte('*')
			i++
		case escaped[i] == '*':
			b.WriteByte('%')
		default:
			b.WriteByte(escaped[i])
		}
	}
	return b.String()
}
