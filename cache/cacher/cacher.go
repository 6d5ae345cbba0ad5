package cacher

import (
	"errors"
	"time"

	"utmkit/models"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

// Entry is the cached part of a short link. Clicks are deliberately absent:
// they change on every redirect and are always read from the database.
type Entry struct {
	ID          uint
	ShortCode   string
	OriginalURL string
	CreatedAt   time.Time
}

func FromLink(link *models.ShortLink) *Entry {
	return &Entry{
		ID:          link.ID,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
	}
}

func (e *Entry) Link() *models.ShortLink {
	return &models.ShortLink{
		ID:          e.ID,
		ShortCode:   e.ShortCode,
		OriginalURL: e.OriginalURL,
		CreatedAt:   e.CreatedAt,
	}
}

type Engine interface {
	// Get returns ErrEntryNotFound on a miss.
	Get(key string) (*Entry, error)
	Set(key string, entry *Entry, expiration time.Duration) error
}
