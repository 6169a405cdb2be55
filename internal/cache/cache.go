package cache

import (
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent from every level.
var ErrCacheMiss = errors.New("cache miss")

type Cache interface {
	Set(key string, value interface{}, ttl time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	DeletePattern(pattern string) error
	Exists(key string) (bool, error)
	Stats() map[string]interface{}
	Health() error
	Close() error
}
