package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/juliaafonsoo/scrape-data/internal/classify"
	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/config"
	"github.com/juliaafonsoo/scrape-data/internal/logging"
	"github.com/juliaafonsoo/scrape-data/internal/vision"
)

// timestampLayout matches the wall-clock format persisted in the
// collection's stats blocks.
const timestampLayout = "2006-01-02 15:04:05"

// Coordinator drives classification runs over a collection. It owns the
// rule cascade and the pacing limiter; per-run state (signal cache and
// call counter) lives in a runState so consecutive runs stay
// independent.
type Coordinator struct {
	cfg        *config.Config
	extractor  vision.Extractor
	classifier *classify.Classifier
	logger     *slog.Logger
	limiter    *rate.Limiter
	workers    int
	now        func() time.Time
}

// CoordinatorOption customizes optional coordinator behavior.
type CoordinatorOption func(*Coordinator)

// WithClock overrides the wall clock used for stats timestamps.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCoordinator wires a classification coordinator. The extractor is
// required; the logger may be nil for silent operation.
func NewCoordinator(cfg *config.Config, extractor vision.Extractor, logger *slog.Logger, opts ...CoordinatorOption) (*Coordinator, error) {
	if cfg == nil {
		return nil, Wrap(ErrConfiguration, "coordinator", "new", "configuration is required", nil)
	}
	if extractor == nil {
		return nil, Wrap(ErrConfiguration, "coordinator", "new", "signal extractor is required", nil)
	}

	limit := rate.Inf
	if cfg.Workflow.PacingDelayMS > 0 {
		limit = rate.Every(time.Duration(cfg.Workflow.PacingDelayMS) * time.Millisecond)
	}
	workers := cfg.Workflow.Workers
	if workers < 1 {
		workers = 1
	}

	coord := &Coordinator{
		cfg:        cfg,
		extractor:  extractor,
		classifier: classify.New(classify.WithExtraUtilityCompanies(cfg.Classifier.ExtraUtilityCompanies)),
		logger:     logging.NewComponentLogger(logger, "tagging"),
		limiter:    rate.NewLimiter(limit, 1),
		workers:    workers,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(coord)
	}
	return coord, nil
}

// runState holds the state scoped to one classification or
// reconciliation run. The cache maps resolved attachment paths to
// extracted signals so duplicate files cost one extraction.
type runState struct {
	mu       sync.Mutex
	cache    map[string]vision.Signals
	apiCalls int
}

func newRunState() *runState {
	return &runState{cache: make(map[string]vision.Signals)}
}

func (rs *runState) cached(path string) (vision.Signals, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	sig, ok := rs.cache[path]
	return sig, ok
}

func (rs *runState) store(path string, sig vision.Signals) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.cache[path] = sig
}

func (rs *runState) addCalls(n int) {
	if n == 0 {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.apiCalls += n
}

func (rs *runState) calls() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.apiCalls
}

// target pairs an attachment with its owning email for logging.
type target struct {
	emailID    int
	attachment *collection.Attachment
}

// Run classifies every image attachment in the collection, replacing
// each attachment's tag set with the single resulting tag. It records a
// stats block on the collection metadata and returns a copy of it.
func (c *Coordinator) Run(ctx context.Context, col *collection.Collection) (collection.ClassificationStats, error) {
	if col == nil {
		return collection.ClassificationStats{}, Wrap(ErrConfiguration, "coordinator", "run", "collection is required", nil)
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := c.logger.With(logging.String(logging.FieldRunID, runID))

	targets := imageTargets(col)
	log.InfoContext(ctx, "classification run starting",
		logging.Int("images", len(targets)),
		logging.Int("workers", c.workers))

	rs := newRunState()
	stats := collection.ClassificationStats{
		TotalImages: len(targets),
		RunID:       runID,
	}

	var mu sync.Mutex
	err := c.forEachTarget(ctx, targets, func(ctx context.Context, t target) {
		tag := c.classifyAttachment(ctx, rs, log, t)
		t.attachment.SetTag(tag.String())
		if tag != classify.TagNeedsReview {
			mu.Lock()
			stats.ClassifiedImages++
			mu.Unlock()
		}
	})

	stats.APICalls = rs.calls()
	stats.ProcessedAt = c.now().Format(timestampLayout)
	col.Metadata.ClassificationStats = &stats

	if err != nil {
		return stats, err
	}
	log.InfoContext(ctx, "classification run finished",
		logging.Int("classified", stats.ClassifiedImages),
		logging.Int("api_calls", stats.APICalls))
	return stats, nil
}

// forEachTarget feeds targets to a bounded worker pool. Each worker
// owns the attachments it receives, so tag writes never race; shared
// counters go through the runState mutex. The only error returned is
// context cancellation.
func (c *Coordinator) forEachTarget(ctx context.Context, targets []target, handle func(context.Context, target)) error {
	if c.workers == 1 {
		for _, t := range targets {
			if err := ctx.Err(); err != nil {
				return err
			}
			handle(ctx, t)
		}
		return nil
	}

	work := make(chan target)
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range work {
				handle(ctx, t)
			}
		}()
	}

feed:
	for _, t := range targets {
		select {
		case <-ctx.Done():
			break feed
		case work <- t:
		}
	}
	close(work)
	wg.Wait()
	return ctx.Err()
}

// classifyAttachment runs the per-attachment decision ladder: filename
// short-circuit, file presence, signal extraction (cached), photo
// heuristic, rule cascade. Every failure degrades to the manual-review
// sentinel; nothing per-attachment is fatal.
func (c *Coordinator) classifyAttachment(ctx context.Context, rs *runState, log *slog.Logger, t target) classify.Tag {
	att := t.attachment
	ctx = logging.WithAttachmentID(ctx, att.AttachmentID)
	log = log.With(
		logging.Int(logging.FieldEmailID, t.emailID),
		logging.Int(logging.FieldAttachmentID, att.AttachmentID))

	if classify.MatchesPhotoFilename(att.Filename) {
		log.DebugContext(ctx, "photo filename short-circuit",
			logging.String("filename", att.Filename),
			logging.String(logging.FieldTag, classify.TagFoto3x4.String()))
		return classify.TagFoto3x4
	}

	path := c.cfg.ResolveAttachmentPath(att.AnexoPath)
	if path == "" {
		log.WarnContext(ctx, "attachment has no file path, routing to manual review")
		return classify.TagNeedsReview
	}
	if _, err := os.Stat(path); err != nil {
		log.WarnContext(ctx, "attachment file unreadable, routing to manual review",
			logging.String(logging.FieldPath, path),
			logging.Error(fmt.Errorf("%w: %w", ErrFileMissing, err)))
		return classify.TagNeedsReview
	}

	sig, ok := rs.cached(path)
	if !ok {
		if err := c.limiter.Wait(ctx); err != nil {
			return classify.TagNeedsReview
		}
		extracted, calls, err := c.extractor.ExtractFile(ctx, path)
		rs.addCalls(calls)
		if err != nil {
			log.ErrorContext(ctx, "signal extraction failed, routing to manual review",
				logging.String(logging.FieldPath, path),
				logging.Error(err))
			return classify.TagNeedsReview
		}
		rs.store(path, extracted)
		sig = extracted
	}

	if classify.IsPhotoByContent(sig) {
		log.DebugContext(ctx, "photo detected by content",
			logging.String(logging.FieldTag, classify.TagFoto3x4.String()))
		return classify.TagFoto3x4
	}
	if tag, matched := c.classifier.ClassifyText(sig.Text); matched {
		log.DebugContext(ctx, "document classified",
			logging.String(logging.FieldTag, tag.String()))
		return tag
	}

	log.InfoContext(ctx, "no rule matched, routing to manual review",
		logging.String("filename", att.Filename))
	return classify.TagNeedsReview
}

// imageTargets collects pointers to every image attachment in stable
// collection order.
func imageTargets(col *collection.Collection) []target {
	var targets []target
	for i := range col.Emails {
		email := &col.Emails[i]
		for j := range email.Attachments {
			att := &email.Attachments[j]
			if att.IsImage() {
				targets = append(targets, target{emailID: email.EmailID, attachment: att})
			}
		}
	}
	return targets
}
