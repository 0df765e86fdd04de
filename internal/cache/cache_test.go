package cache

import (
	"testing"
	"time"
)

func TestKeyDistinguishesCallerSuppliedParts(t *testing.T) {
	// A separator inside one part must not collide with a part boundary.
	tests := []struct {
		a []string
		b []string
	}{
		{[]string{"tokens", "all-2", "1", "12"}, []string{"tokens", "all", "2", "12"}},
		{[]string{"tokens", "all|2", "1", "12"}, []string{"tokens", "all", "2", "12"}},
		{[]string{"dex", "base", "0xa-0xb"}, []string{"dex", "base-0xa", "0xb"}},
	}
	for _, tt := range tests {
		if Key(tt.a...) == Key(tt.b...) {
			t.Fatalf("Key(%v) and Key(%v) collide: %q", tt.a, tt.b, Key(tt.a...))
		}
	}
}

func TestKeyStable(t *testing.T) {
	if Key("tokens", "all", "1", "12") != Key("tokens", "all", "1", "12") {
		t.Fatalf("identical parts must produce identical keys")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := New(10*time.Millisecond, time.Minute)
	c.Set(Key("tokens", "all"), "page-1", 10*time.Millisecond)

	if v, ok := c.Get(Key("tokens", "all")); !ok || v != "page-1" {
		t.Fatalf("fresh entry missing: %v %v", v, ok)
	}
	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get(Key("tokens", "all")); ok {
		t.Fatalf("entry should expire after its TTL")
	}
}

func TestTTLCacheNilSafe(t *testing.T) {
	var c *TTLCache
	if _, ok := c.Get("x"); ok {
		t.Fatalf("nil cache must miss")
	}
	c.Set("x", 1, time.Second)
	c.Delete("x")
}
