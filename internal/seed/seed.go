// Package seed applies an optional YAML list of items at startup.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/waygate-dev/waygate/internal/domain"
	"github.com/waygate-dev/waygate/internal/logger"
)

// Creator is how seeded items enter the system: through the same create
// path as user requests, so seeds get enriched like any other item.
type Creator interface {
	Create(ctx context.Context, raw string) (*domain.Item, error)
}

// Counter reports how many items are stored.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Seeder loads a seed file and creates its items.
type Seeder struct {
	filePath string
	store    Counter
	creator  Creator
	logger   logger.Logger
}

// New creates a Seeder for filePath.
func New(filePath string, store Counter, creator Creator, log logger.Logger) *Seeder {
	return &Seeder{
		filePath: filePath,
		store:    store,
		creator:  creator,
		logger:   log,
	}
}

// Apply creates the items listed in the seed file. It only runs against an
// empty store: there is no de-duplication, so re-seeding on every restart
// would multiply rows.
func (s *Seeder) Apply(ctx context.Context) error {
	if s.filePath == "" {
		return nil
	}

	n, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check store before seeding: %w", err)
	}
	if n > 0 {
		s.logger.Debug("store not empty, skipping seed file",
			logger.Int("existing_items", n))
		return nil
	}

	entries, err := Load(s.filePath)
	if err != nil {
		return err
	}

	created := 0
	for _, entry := range entries {
		if _, err := s.creator.Create(ctx, entry); err != nil {
			s.logger.Warn("failed to seed item",
				logger.String("item", entry),
				logger.Error(err))
			continue
		}
		created++
	}

	s.logger.Info("seed file applied",
		logger.String("file", s.filePath),
		logger.Int("items_created", created))
	return nil
}

// Load reads and parses a seed file: a YAML list of item strings.
func Load(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var raw []string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	entries := make([]string, 0, len(raw))
	for _, e := range raw {
		if e == "" {
			continue
		}
		entries = append(entries, e)
	}

	return entries, nil
}
