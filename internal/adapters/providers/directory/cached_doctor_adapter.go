package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/citasalud/scheduling-api/internal/domain/entities"
	"github.com/citasalud/scheduling-api/internal/domain/providers"
)

// CachedDoctorDirectory wraps a DoctorDirectory with read-through caching.
// Doctor attributes change rarely and the list workflow issues one lookup
// per appointment, so hits here remove most directory traffic. Not-found
// results are never cached.
type CachedDoctorDirectory struct {
	inner      providers.DoctorDirectory
	cache      providers.CacheProvider
	ttlSeconds int
}

// NewCachedDoctorDirectory creates a caching wrapper around a doctor directory
func NewCachedDoctorDirectory(inner providers.DoctorDirectory, cache providers.CacheProvider, ttlSeconds int) providers.DoctorDirectory {
	return &CachedDoctorDirectory{
		inner:      inner,
		cache:      cache,
		ttlSeconds: ttlSeconds,
	}
}

// GetByDNI returns a cached doctor when present, falling back to the
// directory otherwise.
func (c *CachedDoctorDirectory) GetByDNI(ctx context.Context, dni string) (*entities.Doctor, error) {
	key := doctorCacheKey(dni)

	if cached, err := c.cache.Get(ctx, key); err == nil {
		doctor := &entities.Doctor{}
		if err := json.Unmarshal(cached, doctor); err == nil {
			return doctor, nil
		}
		// Corrupt entry: drop it and fall through to the directory.
		_ = c.cache.Delete(ctx, key)
	}

	doctor, err := c.inner.GetByDNI(ctx, dni)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(doctor); err == nil {
		if err := c.cache.Set(ctx, key, payload, c.ttlSeconds); err != nil {
			log.Warn().Err(err).Str("dni", dni).Msg("failed to cache doctor lookup")
		}
	}

	return doctor, nil
}

func doctorCacheKey(dni string) string {
	return fmt.Sprintf("doctor:%s", dni)
}
