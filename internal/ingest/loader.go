package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/value-sniper/internal/config"
	"github.com/yourusername/value-sniper/internal/metrics"
	"github.com/yourusername/value-sniper/internal/models"
)

// Loader reads fixture datasets from local paths or HTTP sources, with a
// content-hash cache in front of the parser.
type Loader struct {
	reader  *Reader
	fetcher *Fetcher
	cache   *DatasetCache
	logger  *logrus.Logger
}

// NewLoader builds a loader from ingestion configuration.
func NewLoader(cfg *config.IngestConfig, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	separator := ';'
	if cfg.Separator != "" {
		separator = rune(cfg.Separator[0])
	}
	fetcherCfg := DefaultFetcherConfig()
	if cfg.TimeoutSeconds > 0 {
		fetcherCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	if cfg.MaxRetries > 0 {
		fetcherCfg.MaxRetries = cfg.MaxRetries
	}
	if cfg.RateLimit > 0 {
		fetcherCfg.RateLimit = cfg.RateLimit
	}

	return &Loader{
		reader:  NewReader(separator),
		fetcher: NewFetcher(fetcherCfg, logger),
		cache:   NewDatasetCache(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		logger:  logger,
	}
}

// Load reads and parses the dataset at source, which is either a local
// file path or an http(s) URL. Identical content parses once.
func (l *Loader) Load(ctx context.Context, source string) ([]*models.Fixture, error) {
	content, err := l.readSource(ctx, source)
	if err != nil {
		return nil, err
	}

	key := Fingerprint(content)
	if fixtures, ok := l.cache.Get(key); ok {
		metrics.DatasetLoadsTotal.WithLabelValues("hit").Inc()
		l.logger.WithField("source", source).Debug("Dataset cache hit")
		return fixtures, nil
	}
	metrics.DatasetLoadsTotal.WithLabelValues("miss").Inc()

	fixtures, err := l.reader.ReadFixtures(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", source, err)
	}

	l.cache.Put(key, fixtures)
	l.logger.WithFields(logrus.Fields{
		"source":   source,
		"fixtures": len(fixtures),
	}).Info("Dataset loaded")
	return fixtures, nil
}

func (l *Loader) readSource(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.fetcher.Fetch(ctx, source)
	}
	content, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return content, nil
}
