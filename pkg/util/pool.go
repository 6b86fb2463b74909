package util

import "runtime"

// PoolSize returns the worker count for parallel file scanning.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32). Scanning is a mix of
// file reads and CPU-bound text scanning, so 2x cores keeps workers busy
// while a read is in flight; the cap bounds memory on high-core machines.
func PoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// PoolSizeWithOverride returns override when positive, PoolSize otherwise.
func PoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return PoolSize()
}
