// Package blockcache caches decoded chunk payloads (the output of
// unpacking one 1024-element chunk) keyed by page identity and chunk
// index, so a scan that revisits the same chunk — e.g. two overlapping
// logical ranges in one query — pays the bit-unpack cost once.
//
// Adapted from the block cache in the host's sequential-file reader: same
// tinylfu admission policy and maphash-based key hashing, but holding
// already-decoded chunks instead of raw file blocks, and with no
// background goroutine since decode is synchronous CPU work rather than
// blocking I/O.
package blockcache

import (
	"hash/maphash"
	"sync"

	"github.com/dgryski/go-tinylfu"
)

// Key identifies one chunk of one page. PageID is opaque to this package —
// callers typically derive it from a checksum or storage offset.
type Key struct {
	PageID   uint64
	ChunkIdx uint32
	BitWidth uint32 // included so a page re-encoded at a different width can't collide
}

var seed = maphash.MakeSeed()

func keyHash(k Key) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	var buf [16]byte
	buf[0] = byte(k.PageID)
	buf[1] = byte(k.PageID >> 8)
	buf[2] = byte(k.PageID >> 16)
	buf[3] = byte(k.PageID >> 24)
	buf[4] = byte(k.PageID >> 32)
	buf[5] = byte(k.PageID >> 40)
	buf[6] = byte(k.PageID >> 48)
	buf[7] = byte(k.PageID >> 56)
	buf[8] = byte(k.ChunkIdx)
	buf[9] = byte(k.ChunkIdx >> 8)
	buf[10] = byte(k.ChunkIdx >> 16)
	buf[11] = byte(k.ChunkIdx >> 24)
	buf[12] = byte(k.BitWidth)
	buf[13] = byte(k.BitWidth >> 8)
	buf[14] = byte(k.BitWidth >> 16)
	buf[15] = byte(k.BitWidth >> 24)
	h.Write(buf[:])
	return h.Sum64()
}

// Cache is a fixed-capacity, concurrency-safe decoded-chunk cache.
type Cache struct {
	mu sync.Mutex
	c  *tinylfu.T[Key, []byte]
}

// New returns a Cache admitting up to capacity chunks, sampling ~10x that
// many accesses for the admission policy's frequency sketch — the same
// ratio the host's block cache uses.
func New(capacity int) *Cache {
	return &Cache{c: tinylfu.New[Key, []byte](capacity, capacity*10, keyHash)}
}

// Get returns the cached chunk for key, if present.
func (c *Cache) Get(key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.c.Get(key)
}

// Add inserts or refreshes the cached chunk for key.
func (c *Cache) Add(key Key, decoded []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.c.Add(key, decoded)
}
