// Package fetch pulls articles from the configured RSS sources. Sources are
// fetched concurrently with a shared rate limit; a failing source logs and
// contributes nothing to the round.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/metrics"
)

// Logger defines the logging interface used by the fetcher.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Source is one RSS feed to poll. An empty Name is derived from the URL.
type Source struct {
	Name string
	URL  string
}

// sourceNamesByURLHint maps URL fragments to display names for feeds that do
// not carry a configured name.
var sourceNamesByURLHint = []struct {
	hint string
	name string
}{
	{"cointelegraph", "CoinTelegraph"},
	{"coindesk", "CoinDesk"},
	{"decrypt", "Decrypt"},
	{"theblock", "The Block"},
	{"bitcoinmagazine", "Bitcoin Magazine"},
}

// unknownSourceName is used when no URL hint matches.
const unknownSourceName = "Unknown"

// SourceNameFromURL derives a display name from a feed URL.
func SourceNameFromURL(url string) string {
	lowered := strings.ToLower(url)
	for _, entry := range sourceNamesByURLHint {
		if strings.Contains(lowered, entry.hint) {
			return entry.name
		}
	}
	return unknownSourceName
}

// Fetcher polls a fixed set of sources and returns their items as a single
// batch.
type Fetcher struct {
	logger  Logger
	parser  *gofeed.Parser
	limiter *rate.Limiter
	metrics *metrics.Metrics
	sources []Source
	timeout time.Duration
}

// New creates a fetcher. requestsPerSec bounds the aggregate request rate
// across all sources; timeout bounds each individual source fetch.
func New(logger Logger, m *metrics.Metrics, sources []Source, requestsPerSec float64, timeout time.Duration) *Fetcher {
	return &Fetcher{
		logger:  logger,
		parser:  gofeed.NewParser(),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		metrics: m,
		sources: sources,
		timeout: timeout,
	}
}

// fetchResult is the per-source join record.
type fetchResult struct {
	source string
	items  []*domain.ContentItem
	err    error
}

// FetchAll polls every source concurrently and returns the combined batch.
// Items keep source order within a source; source order in the batch follows
// completion order. Failed sources are logged and counted, never fatal.
func (f *Fetcher) FetchAll(ctx context.Context) []*domain.ContentItem {
	results := make(chan fetchResult, len(f.sources))

	for _, source := range f.sources {
		go func(src Source) {
			items, err := f.fetchSource(ctx, src)
			results <- fetchResult{source: src.Name, items: items, err: err}
		}(source)
	}

	var batch []*domain.ContentItem
	for range f.sources {
		result := <-results
		if result.err != nil {
			f.logger.Warn("source fetch failed",
				"source", result.source,
				"error", result.err,
			)
			f.metrics.FetchFailures.WithLabelValues(result.source).Inc()
			continue
		}
		f.metrics.FetchedItems.WithLabelValues(result.source).Add(float64(len(result.items)))
		batch = append(batch, result.items...)
	}

	f.logger.Info("fetch round complete",
		"sources", len(f.sources),
		"items", len(batch),
	)
	return batch
}

// fetchSource pulls one feed under the per-source timeout.
func (f *Fetcher) fetchSource(ctx context.Context, source Source) ([]*domain.ContentItem, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(source.URL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", source.URL, err)
	}

	name := source.Name
	if name == "" {
		name = SourceNameFromURL(source.URL)
	}

	items := make([]*domain.ContentItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		items = append(items, convertItem(entry, name))
	}
	return items, nil
}

// convertItem maps a feed entry onto the pipeline's content shape. IDs are
// derived from the entry link so refetches of the same article are stable.
func convertItem(entry *gofeed.Item, sourceName string) *domain.ContentItem {
	item := &domain.ContentItem{
		ID:      uuid.NewSHA1(uuid.NameSpaceURL, []byte(entry.Link)).String(),
		Title:   entry.Title,
		URL:     entry.Link,
		Summary: entry.Description,
		Source:  sourceName,
	}

	switch {
	case entry.PublishedParsed != nil:
		item.PublishedAt = entry.PublishedParsed.UTC().Format(time.RFC3339)
	case entry.Published != "":
		item.PublishedAt = entry.Published
	}

	if entry.Image != nil && entry.Image.URL != "" {
		item.ImageURL = entry.Image.URL
	} else {
		for _, enclosure := range entry.Enclosures {
			if enclosure != nil && strings.HasPrefix(enclosure.Type, "image/") {
				item.ImageURL = enclosure.URL
				break
			}
		}
	}

	return item
}
