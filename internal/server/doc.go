// Package server exposes the resolver over a single HTTP GET endpoint.
//
// The raw search prefix arrives in the search[name_matches] query
// parameter. Successful responses are long-lived cacheable JSON arrays;
// errors collapse to one of two generic JSON bodies with caching disabled.
// Every response carries permissive CORS headers so browser clients can
// query the endpoint directly.
package server
