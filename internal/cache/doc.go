// Package cache provides a small generic LRU cache.
//
// It memoizes values that are costly to build and keyed by a handful of
// parameters, such as gamma lookup tables:
//
//	c := cache.New[key, *Table](32)
//	t := c.GetOrCreate(k, build)
//
// A Cache is safe for concurrent use and must not be copied after creation.
package cache
