package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/csheth/lockdam/internal/clock"
)

const (
	// CacheEnvVar overrides the cache directory.
	CacheEnvVar = "LOCKDAM_CACHE_DIR"
	// DefaultTTL is how long a stored excerpt is served before the source is
	// read again.
	DefaultTTL = 7 * 24 * time.Hour

	cacheSubdir = "lockdam/excerpts"
	textSuffix  = ".txt"
)

// Cache keeps extracted excerpts on disk, one text file per book slug.
type Cache struct {
	dir   string
	ttl   time.Duration
	clock clock.Clock
}

// CacheDir resolves the directory used when NewCache gets an empty dir.
func CacheDir() string {
	if dir := os.Getenv(CacheEnvVar); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(os.TempDir(), "lockdam-cache")
	}
	return filepath.Join(base, cacheSubdir)
}

// NewCache creates dir if needed. Empty dir means CacheDir(); a ttl of zero or
// less means DefaultTTL.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		dir = CacheDir()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create excerpt cache: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, clock: clock.Real{}}, nil
}

func (c *Cache) Dir() string {
	return c.dir
}

// Get returns the stored excerpt for slug unless it is missing or older than
// the TTL.
func (c *Cache) Get(slug string) (string, bool) {
	path := c.path(slug)
	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if c.clock.Now().Sub(info.ModTime()) > c.ttl {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Put stores text for slug. Readers see the old or the new file, never a
// partial one.
func (c *Cache) Put(slug, text string) error {
	key := cacheKey(slug)
	tmp, err := os.CreateTemp(c.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("store excerpt %s: %w", key, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store excerpt %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store excerpt %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), c.path(slug)); err != nil {
		return fmt.Errorf("store excerpt %s: %w", key, err)
	}
	return nil
}

func (c *Cache) path(slug string) string {
	return filepath.Join(c.dir, cacheKey(slug)+textSuffix)
}

// cacheKey reduces a slug to lowercase letters, digits and single dashes so
// it is always a plain file name inside the cache dir.
func cacheKey(slug string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(slug) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	key := strings.TrimSuffix(b.String(), "-")
	if key == "" {
		return "book"
	}
	return key
}
