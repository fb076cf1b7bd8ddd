// Package resolver orchestrates one autocomplete query end to end:
// normalize the raw input, check the shared result cache, and on a miss
// run the store lookup, serialize the records, and populate the cache.
//
// Concurrent misses for the same canonical key are collapsed into a single
// store lookup; late arrivals share the first lookup's result instead of
// issuing duplicate backend work.
//
// Failures split into two client-visible classes: query.ErrBadInput for
// rejected input, and ErrServer for everything backend-shaped. Backend
// causes are logged, never returned to clients.
package resolver
