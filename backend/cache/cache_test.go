package cache

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string](1 * time.Second)
	defer c.Close()

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[int](100 * time.Millisecond)
	defer c.Close()

	c.Set("key1", 42)

	// Should exist immediately
	_, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1 immediately")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	val, found := c.Get("key1")
	if found {
		t.Error("Expected key1 to be expired")
	}
	if val != 0 {
		t.Errorf("Expected zero value for expired key, got %d", val)
	}
}

func TestKey(t *testing.T) {
	a := Key([]byte(`{"top_n_days":5}`))
	b := Key([]byte(`{"top_n_days":5}`))
	c := Key([]byte(`{"top_n_days":3}`))

	if a != b {
		t.Error("Expected identical content to share a key")
	}
	if a == c {
		t.Error("Expected different content to get different keys")
	}
	if len(a) != 64 {
		t.Errorf("Expected hex sha256 key, got %d chars", len(a))
	}
}

func TestCache_CloseTwice(t *testing.T) {
	c := New[string](time.Second)
	c.Close()
	c.Close()
}
