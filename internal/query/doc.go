// Package query turns raw autocomplete input into a canonical search key
// and converts that key into a SQL LIKE pattern.
//
// Normalization applies, in order: Unicode NFC composition, lowercasing,
// removal of the literal wildcard characters '*' and '%', and removal of
// all Unicode whitespace. The result is the canonical key used both as the
// cache key and as the basis for the store lookup, so two raw inputs that
// normalize to the same key are the same query.
//
//	key, err := query.Normalize("  Fôo%Bar*")
//	// key == "fôobar"
//
// SearchPattern produces a prefix-anchored LIKE pattern from a canonical
// key. The dataset's own wildcard convention is '*'; the backend's is '%'.
// The pattern must be used with ESCAPE '\':
//
//	query.SearchPattern("cat")  // "cat%"
//	query.SearchPattern("50%")  // "50\%%"
package query
