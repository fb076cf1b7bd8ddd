// Package storage executes autocomplete lookups against the tags relation.
//
// The store is the source of truth; the process does not own or migrate
// its schema. Lookups run as an ordered list of strategies:
//
//   - Tier A matches the escaped, prefix-anchored pattern against tag
//     names, most-used first.
//   - Tier B runs only when Tier A returns nothing and broadens the match
//     to name substrings and antecedent (alias) names.
//
// Every query carries a 3 second deadline so a contended backend cannot
// hold a request open indefinitely. Failures are returned wrapped; retry
// policy, if any, belongs to the caller.
//
// # Build Tags
//
// Two interchangeable SQLite drivers are supported:
//
// CGO build (default):
//
//	CGO_ENABLED=1 go build ./...
//
// uses github.com/mattn/go-sqlite3. Pure Go build:
//
//	CGO_ENABLED=0 go build -tags "purego" ./...
//
// uses modernc.org/sqlite and needs no C compiler.
package storage
