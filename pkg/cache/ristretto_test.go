package cache

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *RistrettoCache {
	t.Helper()
	c, err := NewRistrettoCache(&RistrettoConfig{
		NumCounters: 1000,
		MaxCost:     1 << 20,
		BufferItems: 64,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("NewRistrettoCache: %v", err)
	}
	t.Cleanup(c.Close)

	rc, ok := c.(*RistrettoCache)
	if !ok {
		t.Fatalf("cache type = %T, want *RistrettoCache", c)
	}
	return rc
}

func TestSetAndGet(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", "value", time.Minute)
	c.Wait()

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("Get miss after Set")
	}
	if got != "value" {
		t.Errorf("Get = %v, want value", got)
	}
}

func TestGetMiss(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("absent")
	if ok {
		t.Error("Get hit for absent key")
	}
}

func TestDelete(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", 42, time.Minute)
	c.Wait()
	c.Delete("key")

	_, ok := c.Get("key")
	if ok {
		t.Error("Get hit after Delete")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := newTestCache(t)

	c.Set("key", "value", 20*time.Millisecond)
	c.Wait()

	time.Sleep(60 * time.Millisecond)

	_, ok := c.Get("key")
	if ok {
		t.Error("Get hit after TTL expiry")
	}
}

func TestClear(t *testing.T) {
	c := newTestCache(t)

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Wait()

	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("Get hit after Clear")
	}
}
