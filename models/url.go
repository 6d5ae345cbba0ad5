package models

import (
	"time"
)

// UtmBuild is one successful UTM build, kept for the history panel. Input
// length is not bounded, so the text columns are unsized.
type UtmBuild struct {
	ID           uint      `gorm:"primaryKey"`
	BaseURL      string    `gorm:"not null"`
	CampaignName string    `gorm:"not null"`
	Medium       string    `gorm:"not null"`
	Source       string    `gorm:"not null"`
	Content      *string
	FinalURL     string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"index"`
}

// ShortLink maps a short code to the URL it redirects to. Both columns are
// unique: one code per URL and one URL per code. OriginalURL stays sized so
// it can be indexed; callers reject longer URLs before inserting.
type ShortLink struct {
	ID          uint   `gorm:"primaryKey"`
	ShortCode   string `gorm:"size:16;uniqueIndex;not null"`
	OriginalURL string `gorm:"size:2048;uniqueIndex;not null"`
	Clicks      int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
}
