package inmemory

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"utmkit/cache/cacher"
)

// New returns an in-memory cache for default usage.
func New(defaultExp, defaultClearInterval time.Duration) cacher.Engine {
	return &inMemory{
		engine: gocache.New(defaultExp, defaultClearInterval),
	}
}

type inMemory struct {
	engine *gocache.Cache
}

func (i *inMemory) Get(key string) (*cacher.Entry, error) {
	data, found := i.engine.Get(key)
	if !found {
		return nil, cacher.ErrEntryNotFound
	}
	entry, ok := data.(cacher.Entry)
	if !ok {
		i.engine.Delete(key)
		return nil, cacher.ErrEntryNotFound
	}
	return &entry, nil
}

func (i *inMemory) Set(key string, entry *cacher.Entry, expiration time.Duration) error {
	i.engine.Set(key, *entry, expiration)
	return nil
}
