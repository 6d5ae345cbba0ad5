package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"utmkit/models"
)

func NewPGRepo(port int, host, dbuser, dbname, password string) (Repository, error) {
	args := fmt.Sprintf("host=%s port=%v user=%s dbname=%s password=%s sslmode=disable TimeZone=UTC",
		host, port, dbuser, dbname, password)
	return open(postgres.Open(args), defaultConfig(), 0)
}

// NewSQLiteRepo opens a SQLite database at path. ":memory:" gives a private
// in-memory database.
func NewSQLiteRepo(path string) (Repository, error) {
	// SQLite allows a single writer; one connection also keeps ":memory:"
	// pointing at the same database.
	return open(sqlite.Open(path), defaultConfig(), 1)
}

// NewGormRepoForTestWith is just for testing purposes (no calling AutoMigrate())
func NewGormRepoForTestWith(dial gorm.Dialector, cfg gorm.Config) (Repository, error) {
	db, err := gorm.Open(dial, &cfg)
	if err != nil {
		return nil, err
	}
	return &gormRepository{db: db}, nil
}

func defaultConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

func open(dial gorm.Dialector, cfg *gorm.Config, maxOpenConns int) (*gormRepository, error) {
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}
	if maxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}
	if err := db.AutoMigrate(&models.UtmBuild{}, &models.ShortLink{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &gormRepository{db: db}, nil
}

type gormRepository struct {
	db *gorm.DB
}

func (g *gormRepository) CreateHistory(ctx context.Context, record *models.UtmBuild) error {
	return g.db.WithContext(ctx).Create(record).Error
}

func (g *gormRepository) ListHistory(ctx context.Context, limit int) ([]models.UtmBuild, error) {
	if limit <= 0 {
		limit = -1 // cancel limit condition
	}

	var records []models.UtmBuild
	if err := g.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (g *gormRepository) FindLinkByURL(ctx context.Context, url string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := g.db.WithContext(ctx).Where("original_url = ?", url).Take(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (g *gormRepository) GetLink(ctx context.Context, code string) (*models.ShortLink, error) {
	var link models.ShortLink
	if err := g.db.WithContext(ctx).Where("short_code = ?", code).Take(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (g *gormRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	if err := g.db.WithContext(ctx).
		Model(&models.ShortLink{}).
		Where("short_code = ?", code).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (g *gormRepository) CreateLink(ctx context.Context, link *models.ShortLink) error {
	err := g.db.WithContext(ctx).Create(link).Error
	if isDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

// Resolve bumps the counter with a single UPDATE so concurrent redirects of
// the same code never lose a click, then reads the URL in the same
// transaction.
func (g *gormRepository) Resolve(ctx context.Context, code string) (string, error) {
	var original string
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ShortLink{}).
			Where("short_code = ?", code).
			UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrRecordNotFound
		}

		var link models.ShortLink
		if err := tx.Select("original_url").Where("short_code = ?", code).Take(&link).Error; err != nil {
			return err
		}
		original = link.OriginalURL
		return nil
	})
	if err != nil {
		return "", err
	}
	return original, nil
}

func (g *gormRepository) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (g *gormRepository) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without error translation
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
