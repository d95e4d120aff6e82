package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_PutGet(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	fp := Fingerprint("diff text", "conventional", false, "claude-sonnet-4-20250514")

	// Miss before put
	if _, ok := c.Get(fp); ok {
		t.Error("Expected cache miss before put")
	}

	entry := Entry{
		Fingerprint: fp,
		Message:     "feat: add login endpoint",
		Cost:        0.0042,
		CreatedAt:   time.Now(),
	}
	if err := c.Put(entry); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := c.Get(fp)
	if !ok {
		t.Fatal("Expected cache hit after put")
	}
	if got.Message != entry.Message {
		t.Errorf("Message = %q, want %q", got.Message, entry.Message)
	}
	if got.Cost != entry.Cost {
		t.Errorf("Cost = %v, want %v", got.Cost, entry.Cost)
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("diff", "conventional", false, "gpt-4o")
	b := Fingerprint("diff", "conventional", false, "gpt-4o")
	if a != b {
		t.Errorf("same inputs produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(a))
	}
}

func TestFingerprint_SensitiveToEveryInput(t *testing.T) {
	base := Fingerprint("diff", "conventional", false, "gpt-4o")
	variants := map[string]string{
		"text":    Fingerprint("diff2", "conventional", false, "gpt-4o"),
		"style":   Fingerprint("diff", "casual", false, "gpt-4o"),
		"explain": Fingerprint("diff", "conventional", true, "gpt-4o"),
		"model":   Fingerprint("diff", "conventional", false, "claude-sonnet-4-20250514"),
	}
	for name, fp := range variants {
		if fp == base {
			t.Errorf("changing %s did not change the fingerprint", name)
		}
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 1, 0) // 1 second TTL
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	fp := Fingerprint("expiring", "conventional", false, "m")
	if err := c.Put(Entry{Fingerprint: fp, Message: "m", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	if _, ok := c.Get(fp); !ok {
		t.Error("Expected cache hit before expiration")
	}

	time.Sleep(1100 * time.Millisecond)

	if _, ok := c.Get(fp); ok {
		t.Error("Expected cache miss after TTL expiration")
	}
	// Expired entry is removed from disk
	if _, err := os.Stat(filepath.Join(dir, fp+".json")); !os.IsNotExist(err) {
		t.Error("Expected expired entry file to be removed")
	}
}

func TestCache_Disabled(t *testing.T) {
	c, err := New(false, "", 0, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if c.Enabled() {
		t.Error("Cache should be disabled")
	}

	// Operations should be no-ops
	if err := c.Put(Entry{Fingerprint: "fp", Message: "m"}); err != nil {
		t.Errorf("Put on disabled cache should not error: %v", err)
	}
	if _, ok := c.Get("fp"); ok {
		t.Error("Get on disabled cache should always miss")
	}
	if err := c.Clear(); err != nil {
		t.Errorf("Clear on disabled cache should not error: %v", err)
	}
}

func TestCache_OverwriteLastWins(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	fp := Fingerprint("same", "conventional", false, "m")
	if err := c.Put(Entry{Fingerprint: fp, Message: "first", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := c.Put(Entry{Fingerprint: fp, Message: "second", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := c.Get(fp)
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if got.Message != "second" {
		t.Errorf("Message = %q, want the last write", got.Message)
	}
}

func TestCache_Prune(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400, 3)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 0; i < 6; i++ {
		fp := Fingerprint(fmt.Sprintf("payload-%d", i), "conventional", false, "m")
		if err := c.Put(Entry{Fingerprint: fp, Message: "m", CreatedAt: time.Now()}); err != nil {
			t.Fatalf("Put error: %v", err)
		}
		// Make modification times distinguishable
		time.Sleep(10 * time.Millisecond)
	}

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries > 3 {
		t.Errorf("Entries = %d after prune, want <= 3", stats.Entries)
	}

	// The newest entry must have survived
	newest := Fingerprint("payload-5", "conventional", false, "m")
	if _, ok := c.Get(newest); !ok {
		t.Error("newest entry was pruned")
	}
}

func TestCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c, err := New(true, dir, 86400, 0)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	fp := Fingerprint("x", "conventional", false, "m")
	if err := c.Put(Entry{Fingerprint: fp, Message: "m", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, ok := c.Get(fp); ok {
		t.Error("Expected miss after Clear")
	}
	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("GetStats error: %v", err)
	}
	if stats.Entries != 0 {
		t.Errorf("Entries = %d after Clear, want 0", stats.Entries)
	}
}
