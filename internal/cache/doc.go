// Package cache holds serialized autocomplete responses keyed by canonical
// search key.
//
// The cache is a fixed-capacity LRU with a per-entry time-to-live counted
// from insertion. Eviction order under concurrent access is approximate;
// the only hard guarantee is the capacity bound. Expired entries read as
// absent and are dropped lazily on the next Get.
//
// One instance is shared by every request handler; it is safe for
// unbounded concurrent readers and writers, and the last writer for a
// given key wins.
package cache
