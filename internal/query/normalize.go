package query

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Raw input length bounds, measured in bytes before any transformation.
// The check order is load-bearing: clients depend on over-long input being
// rejected even when normalization would shrink it into range.
const (
	minRawLen = 3
	maxRawLen = 100
)

// ErrBadInput is returned for input rejected before any lookup work.
var ErrBadInput = errors.New("bad input")

var stripWildcards = strings.NewReplacer("*", "", "%", "")

// Normalize converts raw user input into the canonical search key.
// A key that ends up empty after transformation is passed through; it
// matches every tag, which is what the pre-normalization length floor
// already allowed for inputs like "***".
func Normalize(raw string) (string, error) {
	if len(raw) > maxRawLen {
		return "", fmt.Errorf("%w: longer than %d bytes", ErrBadInput, maxRawLen)
	}
	if len(raw) < minRawLen {
		return "", fmt.Errorf("%w: shorter than %d bytes", ErrBadInput, minRawLen)
	}

	key := norm.NFC.String(raw)
	key = strings.ToLower(key)
	key = stripWildcards.Replace(key)
	key = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, key)
	return key, nil
}
