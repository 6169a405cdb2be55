package cache

import (
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache()

	if err := c.Set("k", "v", time.Minute); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	value, found := c.Get("k")
	if !found {
		t.Fatal("Expected key to be found")
	}
	if value != "v" {
		t.Errorf("Expected value %q, got %v", "v", value)
	}

	if _, found := c.Get("missing"); found {
		t.Error("Expected missing key to not be found")
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	c := NewMemoryCache()

	c.Set("short", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected expired key to not be found")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache()

	c.Set("k", "v", time.Minute)
	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Expected deleted key to not be found")
	}
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	c := NewMemoryCache()

	c.Set("tasks:detail:1", "a", time.Minute)
	c.Set("tasks:detail:2", "b", time.Minute)
	c.Set("notes:detail:1", "c", time.Minute)

	if err := c.DeletePattern("tasks:*"); err != nil {
		t.Fatalf("DeletePattern() failed: %v", err)
	}

	if _, found := c.Get("tasks:detail:1"); found {
		t.Error("Expected tasks:detail:1 to be deleted")
	}
	if _, found := c.Get("tasks:detail:2"); found {
		t.Error("Expected tasks:detail:2 to be deleted")
	}
	if _, found := c.Get("notes:detail:1"); !found {
		t.Error("Expected notes:detail:1 to survive")
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		text    string
		pattern string
		want    bool
	}{
		{"anything", "*", true},
		{"tasks:detail:1", "tasks:*", true},
		{"notes:detail:1", "tasks:*", false},
		{"exact", "exact", true},
		{"exact", "other", false},
		{"short", "muchlongerprefix*", false},
	}

	for _, tt := range tests {
		if got := matchPattern(tt.text, tt.pattern); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.text, tt.pattern, got, tt.want)
		}
	}
}
