package blockcache

import "testing"

func TestCacheAddGet(t *testing.T) {
	c := New(16)
	key := Key{PageID: 1, ChunkIdx: 0, BitWidth: 11}
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Add(key, []byte{1, 2, 3})
	got, ok := c.Get(key)
	if !ok {
		t.Fatalf("expected hit after Add")
	}
	if len(got) != 3 || got[0] != 1 {
		t.Fatalf("got %v, want [1 2 3]", got)
	}
}

func TestCacheDistinguishesBitWidth(t *testing.T) {
	c := New(16)
	k1 := Key{PageID: 1, ChunkIdx: 0, BitWidth: 11}
	k2 := Key{PageID: 1, ChunkIdx: 0, BitWidth: 12}
	c.Add(k1, []byte{1})
	if _, ok := c.Get(k2); ok {
		t.Fatalf("key with different BitWidth should not collide")
	}
}
