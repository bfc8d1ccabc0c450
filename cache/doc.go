// Package cache provides a sharded LRU cache keyed by hashable keys.
//
// The text subsystem memoizes shaped glyph runs in it so static widgets
// are shaped once instead of once per frame; metric-driven widgets churn
// through it and rely on LRU eviction to bound memory. Sharding keeps
// lock contention low when shaping happens from more than one goroutine.
package cache
