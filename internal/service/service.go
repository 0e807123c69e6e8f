package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"coolpc/catalog/internal/client"
	"coolpc/catalog/internal/domain"
	"coolpc/catalog/internal/repository"
	"coolpc/catalog/internal/state"

	log "github.com/sirupsen/logrus"
)

// Service orchestrates a catalog refresh: fetch the price list, parse it and
// rewrite the catalog document the store loads from. Repository and state
// manager are optional, a nil value disables that side channel.
type Service struct {
	client       client.CoolPCClient
	parser       *client.PriceListParser
	repository   repository.SnapshotRepository
	stateManager state.StateManager
	catalogPath  string
	minInterval  time.Duration
}

func NewService(
	client client.CoolPCClient,
	parser *client.PriceListParser,
	repository repository.SnapshotRepository,
	stateManager state.StateManager,
	catalogPath string,
	minIntervalMinutes int,
) *Service {
	return &Service{
		client:       client,
		parser:       parser,
		repository:   repository,
		stateManager: stateManager,
		catalogPath:  catalogPath,
		minInterval:  time.Duration(minIntervalMinutes) * time.Minute,
	}
}

// Refresh fetches and parses the price list and replaces the catalog
// document. The previous document stays untouched on any failure.
func (s *Service) Refresh(ctx context.Context) error {
	if s.stateManager != nil && s.minInterval > 0 {
		last, err := s.stateManager.LastFetch(ctx)
		if err != nil {
			log.Warnf("⚠️ Failed to read last fetch time, refreshing anyway: %v", err)
		} else if !last.IsZero() && time.Since(last) < s.minInterval {
			log.Infof("⏭️ Skipping refresh, last fetch was %v ago", time.Since(last).Round(time.Second))
			return nil
		}
	}

	html, err := s.client.FetchPriceList(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch price list: %w", err)
	}

	categories, err := s.parser.Parse(html)
	if err != nil {
		return fmt.Errorf("failed to parse price list: %w", err)
	}
	if len(categories) == 0 {
		return fmt.Errorf("price list parsed to zero categories, keeping previous document")
	}

	if err := s.writeDocument(categories); err != nil {
		return err
	}

	fetchedAt := time.Now()
	if s.repository != nil {
		if err := s.repository.SaveSnapshot(ctx, fetchedAt, categories); err != nil {
			log.Errorf("❌ Failed to archive catalog snapshot: %v", err)
		}
	}
	if s.stateManager != nil {
		if err := s.stateManager.SetLastFetch(ctx, fetchedAt); err != nil {
			log.Warnf("⚠️ Failed to record fetch time: %v", err)
		}
	}

	total := 0
	for _, category := range categories {
		for _, subcategory := range category.Subcategories {
			total += len(subcategory.Products)
		}
	}
	log.Infof("✅ Refreshed catalog document: %d categories, %d products", len(categories), total)
	return nil
}

// writeDocument writes atomically, a crash mid-write must not leave a
// truncated document behind.
func (s *Service) writeDocument(categories []domain.Category) error {
	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog document: %w", err)
	}

	tmpPath := s.catalogPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog document: %w", err)
	}
	if err := os.Rename(tmpPath, s.catalogPath); err != nil {
		return fmt.Errorf("failed to replace catalog document: %w", err)
	}

	return nil
}
