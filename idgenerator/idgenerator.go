package idgenerator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"utmkit/apperrors"
	"utmkit/models"
	"utmkit/repository"
	"utmkit/validator"
)

const (
	totalLetters = 6
	encodedChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	maxAttempts  = 16

	// MaxURLLength matches the original_url column.
	MaxURLLength  = 2048
	flightTimeout = 30 * time.Second
)

type empty struct{}

var (
	validCharSet      = getValidCharSet()
	errInvalidLength  = errors.New("invalid length")
	errUnexpectedChar = errors.New("unexpected char")
	errReserved       = errors.New("reserved code")

	// reservedCodes are top-level paths the router serves itself; a link
	// under one of them could never be redirected.
	reservedCodes = map[string]empty{
		"health":  {},
		"ready":   {},
		"links":   {},
		"options": {},
		"shorten": {},
	}

	// ErrCodeSpaceExhausted means every attempt in one allocation collided.
	ErrCodeSpaceExhausted = errors.New("no free short code after retries")
)

func getValidCharSet() map[rune]empty {
	set := make(map[rune]empty, len(encodedChars))
	for _, c := range encodedChars {
		set[c] = empty{}
	}
	return set
}

// Validate reports whether id has the shape of a generated code.
func Validate(id string) error {
	if len(id) != totalLetters {
		return errInvalidLength
	}
	for _, r := range id {
		if _, ok := validCharSet[r]; !ok {
			return errUnexpectedChar
		}
	}
	if _, ok := reservedCodes[strings.ToLower(id)]; ok {
		return errReserved
	}
	return nil
}

// ShortURL joins the public redirect origin and a code.
func ShortURL(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/" + code
}

// newCodeFunc returns a goroutine-safe generator of uniformly drawn codes.
func newCodeFunc() func() string {
	generate, err := nanoid.CustomASCII(encodedChars, totalLetters)
	if err != nil {
		// the alphabet and length are constants
		panic(err)
	}
	var mu sync.Mutex
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return generate()
	}
}

type IDGenerator interface {
	// Get returns the short link for url, creating it on first use.
	Get(ctx context.Context, url string) (*models.ShortLink, error)
	Validate(id string) error
}

func New(db repository.Repository, logger *zap.Logger) IDGenerator {
	return &idGenerator{
		db:       db,
		logger:   logger,
		generate: newCodeFunc(),
	}
}

type idGenerator struct {
	db       repository.Repository
	logger   *zap.Logger
	generate func() string
	flight   singleflight.Group
}

func (i *idGenerator) Get(ctx context.Context, url string) (*models.ShortLink, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.MissingField("url")
	}
	if !validator.URL(url) {
		return nil, apperrors.InvalidURL("url")
	}
	if len(url) > MaxURLLength {
		return nil, apperrors.TooLong("url", MaxURLLength)
	}

	// The flight outlives the caller that started it, so it runs detached
	// from that caller's cancellation and every caller waits on its own ctx.
	ch := i.flight.DoChan(url, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return i.allocate(fctx, url)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			i.logger.Debug("shared allocation", zap.String("url", url))
		}
		link := *res.Val.(*models.ShortLink)
		return &link, nil
	}
}

func (i *idGenerator) allocate(ctx context.Context, url string) (*models.ShortLink, error) {
	link, err := i.db.FindLinkByURL(ctx, url)
	if err == nil {
		return link, nil
	}
	if !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, fmt.Errorf("find link: %w", err)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		code := i.generate()
		if err := Validate(code); err != nil {
			i.logger.Debug("generated code rejected", zap.String("code", code), zap.Error(err))
			continue
		}
		taken, err := i.db.CodeExists(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("check code: %w", err)
		}
		if taken {
			i.logger.Debug("code collision", zap.String("code", code))
			continue
		}

		link := &models.ShortLink{ShortCode: code, OriginalURL: url}
		err = i.db.CreateLink(ctx, link)
		if err == nil {
			i.logger.Info("short link created", zap.String("code", code), zap.String("url", url))
			return link, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("create link: %w", err)
		}

		// either the URL was shortened concurrently or the code was taken
		// between the check and the insert
		existing, ferr := i.db.FindLinkByURL(ctx, url)
		if ferr == nil {
			return existing, nil
		}
		if !errors.Is(ferr, repository.ErrRecordNotFound) {
			return nil, fmt.Errorf("find link: %w", ferr)
		}
		i.logger.Debug("code collision on insert", zap.String("code", code))
	}

	i.logger.Error("short code space exhausted", zap.String("url", url), zap.Int("attempts", maxAttempts))
	return nil, ErrCodeSpaceExhausted
}

func (i *idGenerator) Validate(id string) error {
	return Validate(id)
}
