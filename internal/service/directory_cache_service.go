package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"medical-appointments-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const directoryKeyPrefix = "directory:"

// Directory cache keys. Everything lives under one prefix so a single
// invalidation clears doctor and specialty listings together.
const (
	DoctorListKey    = directoryKeyPrefix + "doctors"
	SpecialtyListKey = directoryKeyPrefix + "specialties"
)

func DoctorKey(id int64) string {
	return fmt.Sprintf("%sdoctors:%d", directoryKeyPrefix, id)
}

func SpecialtyDoctorsKey(specialtyID int64) string {
	return fmt.Sprintf("%sspecialties:%d:doctors", directoryKeyPrefix, specialtyID)
}

// LoadFunc produces the value to cache on a miss.
type LoadFunc func(ctx context.Context) (interface{}, error)

// DirectoryCache caches the public doctor and specialty listings.
// Cache failures are logged and bypassed; they never fail a request.
type DirectoryCache interface {
	Fetch(ctx context.Context, key string, dest interface{}, load LoadFunc) error
	Invalidate(ctx context.Context)
}

type directoryCache struct {
	cacheRepo repository.CacheRepository
	ttl       time.Duration
	log       *logrus.Logger
	group     singleflight.Group

	// generation advances on every Invalidate. A load that started under an
	// older generation returns its value to callers but is not stored.
	mu         sync.RWMutex
	generation uint64
}

func NewDirectoryCache(cacheRepo repository.CacheRepository, ttl time.Duration, log *logrus.Logger) DirectoryCache {
	return &directoryCache{
		cacheRepo: cacheRepo,
		ttl:       ttl,
		log:       log,
	}
}

// Fetch decodes the cached JSON for key into dest, or runs load and caches its result.
// Concurrent misses on the same key share one load.
func (c *directoryCache) Fetch(ctx context.Context, key string, dest interface{}, load LoadFunc) error {
	cached, err := c.cacheRepo.Get(ctx, key)
	if err == nil {
		if err := json.Unmarshal(cached, dest); err == nil {
			return nil
		}
		c.log.Warnf("Failed to decode cached %s: %+v", key, err)
	} else if !errors.Is(err, repository.ErrCacheMiss) {
		c.log.Warnf("Failed to read cache %s: %+v", key, err)
	}

	generation := c.currentGeneration()
	flightKey := key + "@" + strconv.FormatUint(generation, 10)

	data, err, _ := c.group.Do(flightKey, func() (interface{}, error) {
		// Coalesced callers share this load, so it must outlive the first caller's request.
		loadCtx := context.WithoutCancel(ctx)

		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		c.store(loadCtx, key, encoded, generation)
		return encoded, nil
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(data.([]byte), dest)
}

func (c *directoryCache) currentGeneration() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// store writes the entry only if no Invalidate ran since the load began.
// Set runs under the read lock so it cannot interleave with Invalidate.
func (c *directoryCache) store(ctx context.Context, key string, encoded []byte, generation uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.generation != generation {
		c.log.Debugf("Skipping cache write for %s: invalidated during load", key)
		return
	}
	if err := c.cacheRepo.Set(ctx, key, encoded, c.ttl); err != nil {
		c.log.Warnf("Failed to write cache %s: %+v", key, err)
	}
}

func (c *directoryCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	c.mu.Unlock()

	if err := c.cacheRepo.DeletePrefix(ctx, directoryKeyPrefix); err != nil {
		c.log.Warnf("Failed to invalidate directory cache: %+v", err)
	}
}
