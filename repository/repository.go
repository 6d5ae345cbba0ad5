package repository

import (
	"context"
	"errors"

	"utmkit/models"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert hits a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

type Repository interface {
	CreateHistory(ctx context.Context, record *models.UtmBuild) error
	// ListHistory returns at most limit records, newest first.
	ListHistory(ctx context.Context, limit int) ([]models.UtmBuild, error)

	FindLinkByURL(ctx context.Context, url string) (*models.ShortLink, error)
	GetLink(ctx context.Context, code string) (*models.ShortLink, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	CreateLink(ctx context.Context, link *models.ShortLink) error
	// Resolve counts one click on code and returns its original URL.
	Resolve(ctx context.Context, code string) (string, error)

	Ping(ctx context.Context) error
	Close() error
}

// UnimplementedRepository can be embedded by test doubles that only care
// about a few methods.
type UnimplementedRepository struct{}

func (UnimplementedRepository) CreateHistory(ctx context.Context, record *models.UtmBuild) error {
	return nil
}

func (UnimplementedRepository) ListHistory(ctx context.Context, limit int) ([]models.UtmBuild, error) {
	return nil, nil
}

func (UnimplementedRepository) FindLinkByURL(ctx context.Context, url string) (*models.ShortLink, error) {
	return nil, ErrRecordNotFound
}

func (UnimplementedRepository) GetLink(ctx context.Context, code string) (*models.ShortLink, error) {
	return nil, ErrRecordNotFound
}

func (UnimplementedRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func (UnimplementedRepository) CreateLink(ctx context.Context, link *models.ShortLink) error {
	return nil
}

func (UnimplementedRepository) Resolve(ctx context.Context, code string) (string, error) {
	return "", ErrRecordNotFound
}

func (UnimplementedRepository) Ping(ctx context.Context) error {
	return nil
}

func (UnimplementedRepository) Close() error {
	return nil
}
