// Package pipeline orchestrates the per-municipality document run:
// cache-first discovery, bounded crawling, document acquisition, and
// classification-driven renaming.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/openfiscal/munidocs"
	"golang.org/x/sync/errgroup"
)

// Stage defaults.
const (
	// DefaultMaxChars is how much extracted text the classifier sees.
	DefaultMaxChars = 2000

	// DefaultCrawlBudget caps how many further-crawl links are followed
	// per entity.
	DefaultCrawlBudget = 5

	// DefaultConcurrency is how many entities run at once.
	DefaultConcurrency = 3
)

// Runner drives the pipeline. All collaborators are interfaces; the zero
// value of the knobs selects the defaults above.
type Runner struct {
	Cache      munidocs.CacheStore
	Renderer   munidocs.Renderer
	Discoverer munidocs.Discoverer
	Crawler    munidocs.CrawlService
	Classifier munidocs.Classifier
	Extractor  munidocs.TextExtractor
	Downloader munidocs.Downloader
	Store      munidocs.DocumentStore
	Ledger     munidocs.Ledger

	// DryRun reports what would happen without writing the cache, the
	// ledger, or any file.
	DryRun bool

	Concurrency int
	MaxChars    int
	CrawlBudget int
	Logger      *slog.Logger
}

// EntityResult summarizes one entity's run.
type EntityResult struct {
	Entity         string
	CacheHit       bool
	Discovered     int
	Downloaded     int
	AlreadyPresent int
	Renamed        int
	Failed         int
	Err            error
}

// RunSummary aggregates a whole run.
type RunSummary struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Results  []*EntityResult
}

// Run processes the entities concurrently. An entity failing is recorded in
// its result, never fatal to the run; Run only returns an error when the
// context is canceled.
func (r *Runner) Run(ctx context.Context, entities []munidocs.Entity) (*RunSummary, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	summary := &RunSummary{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		Results: make([]*EntityResult, len(entities)),
	}
	logger := r.logger().With("run", summary.RunID)
	logger.Info("run started", "entities", len(entities), "dryRun", r.DryRun)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, entity := range entities {
		g.Go(func() error {
			summary.Results[i] = r.runEntity(gctx, entity, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary.Duration = time.Since(summary.Started)
	logger.Info("run finished", "duration", summary.Duration)
	return summary, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// runEntity runs the full per-entity flow: cached document links when the
// cache knows the entity, discovery plus crawl otherwise, then
// acquisition and renaming over the union.
func (r *Runner) runEntity(ctx context.Context, entity munidocs.Entity, logger *slog.Logger) *EntityResult {
	result := &EntityResult{Entity: entity.Name}
	logger = logger.With("entity", entity.Name)

	if err := entity.Validate(); err != nil {
		result.Err = err
		return result
	}

	links, cacheHit, err := r.documentLinks(ctx, entity, logger)
	if err != nil {
		result.Err = err
		return result
	}
	links = filterYearRange(entity, links)
	result.CacheHit = cacheHit
	result.Discovered = len(links)
	logger.Info("discovery complete", "documents", len(links), "cacheHit", cacheHit)

	if len(links) == 0 {
		return result
	}

	if !cacheHit && !r.DryRun {
		slots := munidocs.AssignSlotKeys(links)
		if _, err := r.Cache.Merge(ctx, entity.Name, slots, entity.Website, discoveryMethod(links)); err != nil {
			logger.Error("cache merge failed", "error", err)
			result.Err = err
			return result
		}
	}

	r.acquire(ctx, entity, links, result, logger)
	r.renamePending(ctx, entity, result, logger)
	return result
}

// documentLinks returns the entity's document links, from the cache when
// possible and from discovery plus crawl otherwise.
func (r *Runner) documentLinks(ctx context.Context, entity munidocs.Entity, logger *slog.Logger) ([]munidocs.DiscoveredLink, bool, error) {
	rec, err := r.Cache.Lookup(ctx, entity.Name)
	if err == nil && len(rec.Documents) > 0 {
		return cachedLinks(rec), true, nil
	}
	if err != nil && munidocs.ErrorCode(err) != munidocs.ENOTFOUND {
		return nil, false, err
	}

	discovery := r.discover(ctx, entity, logger)
	links := discovery.DocumentLinks
	links = munidocs.MergeLinks(links, r.crawlForDocuments(ctx, discovery.FurtherCrawlLinks, logger)...)
	return links, false, nil
}

// discover renders the entity's website and search paths and runs the
// discovery engine against each page. Pages that fail to render or scan are
// logged and skipped.
func (r *Runner) discover(ctx context.Context, entity munidocs.Entity, logger *slog.Logger) *munidocs.Discovery {
	merged := &munidocs.Discovery{}
	for _, pageURL := range entityPages(entity) {
		page, err := r.Renderer.Render(ctx, pageURL)
		if err != nil {
			logger.Warn("render failed", "url", pageURL, "error", err)
			continue
		}
		d, err := r.Discoverer.Discover(ctx, page)
		page.Close()
		if err != nil {
			logger.Warn("discovery failed", "url", pageURL, "error", err)
			continue
		}
		merged.DocumentLinks = munidocs.MergeLinks(merged.DocumentLinks, d.DocumentLinks...)
		merged.FurtherCrawlLinks = munidocs.MergeLinks(merged.FurtherCrawlLinks, d.FurtherCrawlLinks...)
	}
	return merged
}

// crawlForDocuments follows up to CrawlBudget further-crawl links and runs
// page analysis over each crawled page. Failures are isolated: a crawl or
// analysis error costs that page's contribution, nothing more.
func (r *Runner) crawlForDocuments(ctx context.Context, crawlLinks []munidocs.DiscoveredLink, logger *slog.Logger) []munidocs.DiscoveredLink {
	if r.Crawler == nil || len(crawlLinks) == 0 {
		return nil
	}

	budget := r.CrawlBudget
	if budget <= 0 {
		budget = DefaultCrawlBudget
	}
	if len(crawlLinks) > budget {
		crawlLinks = crawlLinks[:budget]
	}
	seeds := make([]string, len(crawlLinks))
	for i, l := range crawlLinks {
		seeds[i] = l.URL
	}

	pages, err := r.Crawler.Crawl(ctx, seeds, munidocs.CrawlOptions{})
	if err != nil {
		logger.Warn("crawl failed", "seeds", len(seeds), "error", err)
		return nil
	}

	var links []munidocs.DiscoveredLink
	for _, page := range pages {
		for _, docURL := range page.DocumentURLs {
			links = munidocs.MergeLinks(links, munidocs.DiscoveredLink{
				URL:        docURL,
				Kind:       munidocs.LinkDocument,
				Strategy:   munidocs.StrategyCrawl,
				SourcePage: page.URL,
				Year:       munidocs.YearFromURL(docURL),
			})
		}

		found, err := r.Classifier.IdentifyDocuments(ctx, page.Markdown, page.URL)
		if err != nil {
			logger.Warn("page analysis failed", "url", page.URL, "error", err)
			continue
		}
		for i := range found {
			found[i].URL = absoluteURL(page.URL, found[i].URL)
		}
		links = munidocs.MergeLinks(links, found...)
	}
	return links
}

// acquire downloads every document link not already satisfied by a file on
// disk or a ledger entry with the same source URL.
func (r *Runner) acquire(ctx context.Context, entity munidocs.Entity, links []munidocs.DiscoveredLink, result *EntityResult, logger *slog.Logger) {
	records, err := r.Ledger.Records(ctx, entity.Name)
	if err != nil {
		logger.Error("ledger read failed", "error", err)
		result.Err = err
		return
	}
	knownSources := make(map[string]bool, len(records))
	for _, rec := range records {
		knownSources[rec.Discovery.SourceURL] = true
	}

	for _, link := range links {
		filename := munidocs.FilenameFromURL(link.URL, link.Year)
		if knownSources[link.URL] || r.Store.FileExists(entity.Name, filename) {
			result.AlreadyPresent++
			continue
		}
		if r.DryRun {
			logger.Info("would download", "url", link.URL, "filename", filename)
			continue
		}

		data, err := r.Downloader.Download(ctx, link.URL)
		if err != nil {
			logger.Warn("download failed", "url", link.URL, "error", err)
			result.Failed++
			continue
		}

		filename = munidocs.UniqueName(filename, func(name string) bool {
			return r.Store.FileExists(entity.Name, name)
		})
		if _, err := r.Store.SaveDocument(ctx, entity.Name, filename, data); err != nil {
			logger.Warn("save failed", "url", link.URL, "error", err)
			result.Failed++
			continue
		}

		rec := &munidocs.RenameRecord{
			Discovery: munidocs.DiscoveryMeta{
				SourceURL:    link.URL,
				SourcePage:   link.SourcePage,
				Strategy:     link.Strategy,
				Confidence:   link.Confidence,
				ContentHash:  fmt.Sprintf("%016x", xxhash.Sum64(data)),
				Size:         int64(len(data)),
				DownloadedAt: time.Now().UTC(),
			},
		}
		if err := r.Ledger.MergeRecord(ctx, entity.Name, filename, rec); err != nil {
			logger.Warn("ledger write failed", "filename", filename, "error", err)
			result.Failed++
			continue
		}
		knownSources[link.URL] = true
		result.Downloaded++
		logger.Info("downloaded", "url", link.URL, "filename", filename, "bytes", len(data))
	}
}

// renamePending runs the naming pipeline over every ledger entry that has
// not completed it.
func (r *Runner) renamePending(ctx context.Context, entity munidocs.Entity, result *EntityResult, logger *slog.Logger) {
	records, err := r.Ledger.Records(ctx, entity.Name)
	if err != nil {
		logger.Error("ledger read failed", "error", err)
		result.Err = err
		return
	}
	r.renameRecords(ctx, entity, records, result, logger)
}

// renameRecords resolves names for every record that has not completed the
// naming pipeline.
func (r *Runner) renameRecords(ctx context.Context, entity munidocs.Entity, records map[string]*munidocs.RenameRecord, result *EntityResult, logger *slog.Logger) {
	for filename, rec := range records {
		if rec.Renamed() {
			continue
		}
		if !r.Store.FileExists(entity.Name, filename) {
			logger.Warn("ledger entry without file", "filename", filename)
			continue
		}
		renamed, err := r.renameOne(ctx, entity, filename, rec, logger)
		if err != nil {
			logger.Warn("rename failed", "filename", filename, "error", err)
			result.Failed++
			continue
		}
		if renamed {
			result.Renamed++
		}
	}
}

// renameOne classifies one file and moves it to its standardized name. A
// document with no extractable text keeps its name; a failed classification
// falls back to the generic low-confidence name. Dry run resolves the
// candidate name and stops before the move and the ledger write.
func (r *Runner) renameOne(ctx context.Context, entity munidocs.Entity, filename string, rec *munidocs.RenameRecord, logger *slog.Logger) (bool, error) {
	maxChars := r.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	text, err := r.Extractor.ExtractText(ctx, r.Store.Path(entity.Name, filename), maxChars)
	if err != nil {
		return false, err
	}
	if text == "" {
		logger.Info("no extractable text, keeping name", "filename", filename)
		return false, nil
	}

	classification, err := r.Classifier.ClassifyDocument(ctx, text, entity.Name, filename)
	if err != nil {
		logger.Warn("classification failed, using fallback name", "filename", filename, "error", err)
		classification = &munidocs.Classification{
			DocumentType: "Financial Document",
			Confidence:   munidocs.ConfidenceLow,
			Rationale:    "classification unavailable",
		}
	}

	candidate := munidocs.CanonicalName(entity.Name, classification.DocumentType, classification.Year)
	if candidate != filename {
		candidate = munidocs.UniqueName(candidate, func(name string) bool {
			return r.Store.FileExists(entity.Name, name)
		})
	}

	if r.DryRun {
		logger.Info("would rename", "from", filename, "to", candidate, "confidence", classification.Confidence)
		return candidate != filename, nil
	}

	if candidate != filename {
		if err := r.Store.Rename(ctx, entity.Name, filename, candidate); err != nil {
			return false, err
		}
	}

	updated := &munidocs.RenameRecord{
		Discovery:            rec.Discovery,
		OriginalFilename:     filename,
		StandardizedFilename: candidate,
		DocumentType:         classification.DocumentType,
		DocumentYear:         classification.Year,
		Confidence:           classification.Confidence,
		Rationale:            classification.Rationale,
		RenamedAt:            time.Now().UTC(),
	}
	if err := r.Ledger.MoveRecord(ctx, entity.Name, filename, candidate, updated); err != nil {
		return false, err
	}

	logger.Info("renamed", "from", filename, "to", candidate, "confidence", classification.Confidence)
	return candidate != filename, nil
}

// RenameExisting runs the naming pipeline over every file already in the
// entity's folder, creating discovery-less ledger entries for files the
// ledger does not know.
func (r *Runner) RenameExisting(ctx context.Context, entity munidocs.Entity) (*EntityResult, error) {
	result := &EntityResult{Entity: entity.Name}
	logger := r.logger().With("entity", entity.Name)

	files, err := r.Store.ExistingFiles(ctx, entity.Name)
	if err != nil {
		return nil, err
	}
	records, err := r.Ledger.Records(ctx, entity.Name)
	if err != nil {
		return nil, err
	}

	for _, filename := range files {
		if _, ok := records[filename]; ok {
			continue
		}
		rec := &munidocs.RenameRecord{}
		if !r.DryRun {
			if err := r.Ledger.MergeRecord(ctx, entity.Name, filename, rec); err != nil {
				return nil, err
			}
		}
		records[filename] = rec
	}

	r.renameRecords(ctx, entity, records, result, logger)
	return result, nil
}

// entityPages returns the URLs discovery renders for an entity: the website
// plus each configured search path.
func entityPages(entity munidocs.Entity) []string {
	pages := []string{entity.Website}
	for _, p := range entity.SearchPaths {
		pages = append(pages, absoluteURL(entity.Website, p))
	}
	return pages
}

// absoluteURL resolves ref against base; unparseable inputs come back
// unchanged.
func absoluteURL(base, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(u).String()
}

// discoveryMethod tags the cache record with how the batch was found.
func discoveryMethod(links []munidocs.DiscoveredLink) string {
	method := munidocs.MethodCrawl
	for _, l := range links {
		switch l.Strategy {
		case munidocs.StrategyDirect, munidocs.StrategyExpanded, munidocs.StrategyArchive, munidocs.StrategyRelated:
			return munidocs.MethodBrowser
		case munidocs.StrategyAnalysis:
			method = munidocs.MethodAnalysis
		}
	}
	return method
}

// filterYearRange drops document links outside the entity's year
// restriction. Links with no identifiable year always pass.
func filterYearRange(entity munidocs.Entity, links []munidocs.DiscoveredLink) []munidocs.DiscoveredLink {
	if entity.YearRange == "" {
		return links
	}
	kept := links[:0]
	for _, link := range links {
		if entity.YearInRange(link.Year) {
			kept = append(kept, link)
		}
	}
	return kept
}

// cachedLinks rebuilds document links from a cache record.
func cachedLinks(rec *munidocs.CacheRecord) []munidocs.DiscoveredLink {
	links := make([]munidocs.DiscoveredLink, 0, len(rec.Documents))
	for key, u := range rec.Documents {
		links = append(links, munidocs.DiscoveredLink{
			URL:      u,
			Kind:     munidocs.LinkDocument,
			Strategy: munidocs.StrategyCached,
			Year:     munidocs.YearFromURL(key),
		})
	}
	return links
}
