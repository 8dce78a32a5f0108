// Package cache memoizes oracle replies in memory and on disk.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ppiankov/lexis/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

const keyPrefix = "lexis:v1:"

// CacheKey derives a stable key from an oracle kind and its inputs. Parts
// are length-prefixed so that ("ab", "c") and ("a", "bc") differ.
func CacheKey(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return keyPrefix + kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg: layered when a directory is set,
// memory-only otherwise. A disabled cache is nil.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.Dir) == "" {
		return NewMemoryCache(cfg.MemoryTTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}
