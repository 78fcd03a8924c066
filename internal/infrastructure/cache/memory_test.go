package cache

import (
	"testing"
	"time"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ms := NewMemoryStore()

	ms.Set("k", "v", time.Minute)
	got, ok := ms.Get("k")
	if !ok || got != "v" {
		t.Fatalf("expected v, got %q ok=%v", got, ok)
	}

	if _, ok := ms.Get("absent"); ok {
		t.Fatalf("absent key must miss")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ms := NewMemoryStore()

	ms.Set("k", "v", -time.Second)
	if _, ok := ms.Get("k"); ok {
		t.Fatalf("expired key must miss")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	ms := NewMemoryStore()

	ms.Set("k", "v", time.Minute)
	ms.Delete("k")
	if _, ok := ms.Get("k"); ok {
		t.Fatalf("deleted key must miss")
	}
}
