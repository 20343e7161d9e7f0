package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/knowledge"
	"github.com/blockvibe/ranker/internal/scoring"
)

// englishStopwords drive the language heuristic. A text whose stopword ratio
// exceeds the threshold is tagged English, everything else undetermined.
var englishStopwords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

const englishStopwordThreshold = 0.1

// Language tags emitted by the detector.
var (
	langEnglish      = language.English.String()
	langUndetermined = language.Und.String()
)

// defaultEnrichConcurrency sizes the enrichment worker pool.
const defaultEnrichConcurrency = 4

// Enricher fills in the derived fields of a ContentItem: word count, image
// flag, language, credibility, quality, categories, tags and the keyword
// relevance used by the fetch stage.
type Enricher struct {
	logger      Logger
	quality     *scoring.QualityScorer
	producer    string
	concurrency int
	now         func() time.Time
}

// NewEnricher creates an enricher that stamps items with the given producer
// name.
func NewEnricher(logger Logger, quality *scoring.QualityScorer, producer string) *Enricher {
	return &Enricher{
		logger:      logger,
		quality:     quality,
		producer:    producer,
		concurrency: defaultEnrichConcurrency,
		now:         time.Now,
	}
}

// Enrich fills the derived fields of one item in place. Raw fields and Extra
// passthrough data are never touched.
func (e *Enricher) Enrich(ctx context.Context, item *domain.ContentItem) {
	text := item.Text()

	item.WordCount = len(strings.Fields(item.Summary))
	item.HasImage = item.ImageURL != ""
	item.Language = DetectLanguage(text)
	item.SourceCredibility = scoring.SourceCredibility(item.Source)
	item.QualityScore = e.quality.Score(ctx, item)
	item.Categories = knowledge.ExtractCategories(text)
	item.Tags = scoring.MatchedKeywords(text, knowledge.DefaultVocabulary, domain.MaxTags)
	item.RelevanceScore = scoring.KeywordRelevance(text, knowledge.DefaultVocabulary)
	item.ProcessedBy = e.producer
	item.ProcessedAt = e.now().UTC().Format(time.RFC3339)
}

// EnrichBatch enriches every item in the batch in place using a worker pool.
// Items are independent, so workers never touch the same record. Nil entries
// are skipped and logged; one bad record never sinks the batch.
func (e *Enricher) EnrichBatch(ctx context.Context, items []*domain.ContentItem) {
	if len(items) == 0 {
		return
	}

	jobs := make(chan *domain.ContentItem, len(items))

	var wg sync.WaitGroup
	for i := 0; i < e.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				e.Enrich(ctx, item)
			}
		}()
	}

	for i, item := range items {
		if item == nil {
			e.logger.Warn("skipping nil item in enrichment batch", "index", i)
			continue
		}
		jobs <- item
	}
	close(jobs)
	wg.Wait()

	e.logger.Debug("batch enriched", "items", len(items))
}

// DetectLanguage tags text as English when common English stopwords make up
// more than a tenth of its words, and undetermined otherwise.
func DetectLanguage(text string) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return langUndetermined
	}

	var hits int
	for _, word := range words {
		if englishStopwords[word] {
			hits++
		}
	}

	if float64(hits)/float64(len(words)) > englishStopwordThreshold {
		return langEnglish
	}
	return langUndetermined
}
