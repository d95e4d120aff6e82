package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"
)

// Entry is one cached generation result. Entries are never mutated; a new
// entry under a different fingerprint supersedes rather than replaces.
type Entry struct {
	Fingerprint string    `json:"fingerprint"`
	Message     string    `json:"message"`
	Cost        float64   `json:"cost"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Store provides file-based caching of generated commit messages.
type Store struct {
	dir        string
	ttlSeconds int
	maxEntries int
	enabled    bool
}

// New creates a Store. If dir is empty, the default cache directory is used.
// maxEntries <= 0 disables count-based eviction; ttlSeconds <= 0 disables
// age-based expiry.
func New(enabled bool, dir string, ttlSeconds, maxEntries int) (*Store, error) {
	if !enabled {
		return &Store{enabled: false}, nil
	}
	if dir == "" {
		d, err := defaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Store{
		dir:        dir,
		ttlSeconds: ttlSeconds,
		maxEntries: maxEntries,
		enabled:    true,
	}, nil
}

// Fingerprint derives the stable cache key from the redacted diff text plus
// all generation-affecting options. Changing any input changes the key.
func Fingerprint(redactedText, style string, explain bool, model string) string {
	h := sha256.New()
	for _, part := range []string{redactedText, style, fmt.Sprintf("%t", explain), model} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get retrieves an entry by fingerprint. Expired entries are removed and
// reported as a miss.
func (s *Store) Get(fingerprint string) (Entry, bool) {
	if !s.enabled {
		return Entry{}, false
	}
	data, err := os.ReadFile(s.entryPath(fingerprint))
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	if s.ttlSeconds > 0 && time.Since(entry.CreatedAt) > time.Duration(s.ttlSeconds)*time.Second {
		os.Remove(s.entryPath(fingerprint))
		return Entry{}, false
	}
	return entry, true
}

// Put stores an entry. The write goes through a temp file and rename so a
// concurrent reader never observes a partial entry; last write wins.
func (s *Store) Put(entry Entry) error {
	if !s.enabled {
		return nil
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		return fmt.Errorf("creating cache temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing cache temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.entryPath(entry.Fingerprint)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("committing cache entry: %w", err)
	}
	s.prune()
	return nil
}

// prune drops the oldest entries when the store exceeds maxEntries.
func (s *Store) prune() {
	if s.maxEntries <= 0 {
		return
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	type aged struct {
		name string
		mod  time.Time
	}
	var all []aged
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		all = append(all, aged{name: e.Name(), mod: info.ModTime()})
	}
	if len(all) <= s.maxEntries {
		return
	}
	sort.Slice(all, func(i, j int) bool { return all[i].mod.Before(all[j].mod) })
	for _, a := range all[:len(all)-s.maxEntries] {
		os.Remove(filepath.Join(s.dir, a.name))
	}
}

// Clear removes all cache entries.
func (s *Store) Clear() error {
	if !s.enabled || s.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".json" {
			os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	return nil
}

// Stats reports cache usage.
type Stats struct {
	Dir        string `json:"dir"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
}

// GetStats returns information about the cache.
func (s *Store) GetStats() (Stats, error) {
	stats := Stats{Dir: s.dir}
	if !s.enabled || s.dir == "" {
		return stats, nil
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()

		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if s.ttlSeconds > 0 && time.Since(entry.CreatedAt) > time.Duration(s.ttlSeconds)*time.Second {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Enabled returns whether caching is enabled.
func (s *Store) Enabled() bool {
	return s.enabled
}

func (s *Store) entryPath(fingerprint string) string {
	return filepath.Join(s.dir, fingerprint+".json")
}

func defaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "comet"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "comet"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "comet", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "comet", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "comet"), nil
	}
}
