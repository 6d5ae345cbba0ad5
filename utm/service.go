package utm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"utmkit/models"
)

// HistoryLimit is how many builds History returns.
const HistoryLimit = 10

// HistoryStore is the part of the repository the service needs.
type HistoryStore interface {
	CreateHistory(ctx context.Context, record *models.UtmBuild) error
	ListHistory(ctx context.Context, limit int) ([]models.UtmBuild, error)
}

type Service struct {
	store  HistoryStore
	opts   Options
	logger *zap.Logger
}

func NewService(store HistoryStore, opts Options, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Build composes the URL and records it. Nothing is written when p is
// rejected.
func (s *Service) Build(ctx context.Context, p Params) (*Result, error) {
	res, err := Build(p, s.opts)
	if err != nil {
		return nil, err
	}

	record := &models.UtmBuild{
		BaseURL:      res.BaseURL,
		CampaignName: res.Params.CampaignName,
		Medium:       res.Params.Medium,
		Source:       res.Params.Source,
		FinalURL:     res.FinalURL,
	}
	if res.Params.Content != "" {
		content := res.Params.Content
		record.Content = &content
	}
	if err := s.store.CreateHistory(ctx, record); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	s.logger.Debug("utm build saved", zap.Uint("id", record.ID), zap.String("url", res.FinalURL))
	return res, nil
}

// History returns the most recent builds, newest first.
func (s *Service) History(ctx context.Context) ([]models.UtmBuild, error) {
	records, err := s.store.ListHistory(ctx, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}
