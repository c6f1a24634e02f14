// Package cache provides a small TTL cache with stampede protection.
//
// Concurrent misses for the same key are collapsed with singleflight so a slow
// stored procedure (the general product catalog) runs once per expiry window.
package cache
