package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"utmkit/cache/cacher"
	"utmkit/cache/inmemory"
	"utmkit/models"
	"utmkit/repository"
)

const (
	defaultClearInterval = 24 * time.Hour
	defaultExp           = 1 * time.Hour
	linkExp              = 24 * time.Hour
	linkKey              = "link:%s"
	loadTimeout          = 30 * time.Second
)

// New wraps db so that URL to short-link lookups are served from engine.
// A short link never changes once created, so entries need no invalidation.
func New(db repository.Repository, engine cacher.Engine, logger *zap.Logger) repository.Repository {
	return &cacheLogic{
		db:     db,
		cache:  engine,
		logger: logger,
	}
}

// NewInMemory is New with a process-local engine.
func NewInMemory(db repository.Repository, logger *zap.Logger) repository.Repository {
	return New(db, inmemory.New(defaultExp, defaultClearInterval), logger)
}

type cacheLogic struct {
	db     repository.Repository
	cache  cacher.Engine
	group  singleflight.Group
	logger *zap.Logger
}

// FindLinkByURL caches links retrieved from the database. Misses are not
// cached because the link may be created a moment later.
func (r *cacheLogic) FindLinkByURL(ctx context.Context, url string) (*models.ShortLink, error) {
	key := fmt.Sprintf(linkKey, url)
	if link, ok := r.lookup(key); ok {
		return link, nil
	}

	// In case of cache stampede, only one goroutine per key reaches the
	// database; the rest share its result. The load is detached from the
	// caller that started it and each caller waits on its own ctx.
	ch := r.group.DoChan(key, func() (interface{}, error) {
		// a flight that started after the previous one stored its result
		if link, ok := r.lookup(key); ok {
			return link, nil
		}
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		link, err := r.db.FindLinkByURL(lctx, url)
		if err != nil {
			return nil, err
		}
		r.store(key, link)
		return link, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		link := *res.Val.(*models.ShortLink)
		return &link, nil
	}
}

// CreateLink writes through to the database and primes the cache.
func (r *cacheLogic) CreateLink(ctx context.Context, link *models.ShortLink) error {
	if err := r.db.CreateLink(ctx, link); err != nil {
		return err
	}
	r.store(fmt.Sprintf(linkKey, link.OriginalURL), link)
	return nil
}

func (r *cacheLogic) lookup(key string) (*models.ShortLink, bool) {
	entry, err := r.cache.Get(key)
	if err != nil {
		if !errors.Is(err, cacher.ErrEntryNotFound) {
			r.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return entry.Link(), true
}

func (r *cacheLogic) store(key string, link *models.ShortLink) {
	if err := r.cache.Set(key, cacher.FromLink(link), linkExp); err != nil {
		r.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// CreateHistory just wraps the db.CreateHistory().
func (r *cacheLogic) CreateHistory(ctx context.Context, record *models.UtmBuild) error {
	return r.db.CreateHistory(ctx, record)
}

// ListHistory just wraps the db.ListHistory().
func (r *cacheLogic) ListHistory(ctx context.Context, limit int) ([]models.UtmBuild, error) {
	return r.db.ListHistory(ctx, limit)
}

// GetLink just wraps the db.GetLink(); the click count must be fresh.
func (r *cacheLogic) GetLink(ctx context.Context, code string) (*models.ShortLink, error) {
	return r.db.GetLink(ctx, code)
}

// CodeExists just wraps the db.CodeExists().
func (r *cacheLogic) CodeExists(ctx context.Context, code string) (bool, error) {
	return r.db.CodeExists(ctx, code)
}

// Resolve just wraps the db.Resolve(); every redirect has to be counted.
func (r *cacheLogic) Resolve(ctx context.Context, code string) (string, error) {
	return r.db.Resolve(ctx, code)
}

func (r *cacheLogic) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *cacheLogic) Close() error {
	return r.db.Close()
}
