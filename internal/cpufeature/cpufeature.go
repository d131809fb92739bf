// Package cpufeature gates the SIMD-friendly bulk decode path in package
// chunked behind runtime CPU feature detection, and exposes the cache-line
// size package sq's Prefetch uses as its stride ahead of a row scan.
package cpufeature

import "golang.org/x/sys/cpu"

// WideLanesAvailable reports whether the current CPU has a wide enough
// vector unit (AVX2 on amd64, NEON on arm64 — both guaranteed baseline on
// arm64, so always true there) to make chunk-at-a-time bulk unpacking
// worthwhile. Callers fall back to the scalar row-by-row path otherwise.
func WideLanesAvailable() bool {
	if cpu.ARM64.HasASIMD {
		return true
	}
	return cpu.X86.HasAVX2
}

// CacheLineSize reports the cache line size in bytes used to stride sq's
// row Prefetch hint. x/sys/cpu doesn't expose a portable line-size probe,
// so this is the conventional 64-byte line shared by all platforms this
// module targets.
func CacheLineSize() int {
	return 64
}
