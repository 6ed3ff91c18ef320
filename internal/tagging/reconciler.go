package tagging

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/juliaafonsoo/scrape-data/internal/classify"
	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/logging"
)

// PendingItem describes one attachment currently carrying the
// manual-review tag.
type PendingItem struct {
	EmailID      int
	AttachmentID int
	Filename     string
	MimeType     string
	IsImage      bool
	Tags         []string
}

// ListPending enumerates every attachment tagged for manual review, in
// stable collection order, without modifying anything.
func ListPending(col *collection.Collection) []PendingItem {
	var pending []PendingItem
	if col == nil {
		return pending
	}
	for i := range col.Emails {
		email := &col.Emails[i]
		for j := range email.Attachments {
			att := &email.Attachments[j]
			if !att.HasTag(classify.TagNeedsReview.String()) {
				continue
			}
			pending = append(pending, PendingItem{
				EmailID:      email.EmailID,
				AttachmentID: att.AttachmentID,
				Filename:     att.Filename,
				MimeType:     att.MimeType,
				IsImage:      att.IsImage(),
				Tags:         append([]string(nil), att.Tags...),
			})
		}
	}
	return pending
}

// Reconcile re-runs the classification pipeline over attachments a
// previous run routed to manual review. When a concrete tag emerges the
// sentinel is removed and the new tag merged into the existing set;
// attachments that still resolve to manual review keep their tags
// untouched, which makes repeated reconciliation idempotent. Non-image
// attachments are counted but never processed.
func (c *Coordinator) Reconcile(ctx context.Context, col *collection.Collection) (collection.ManualReviewStats, error) {
	if col == nil {
		return collection.ManualReviewStats{}, Wrap(ErrConfiguration, "reconciler", "run", "collection is required", nil)
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := c.logger.With(
		logging.String(logging.FieldRunID, runID),
		logging.String("phase", "manual_review"))

	sentinel := classify.TagNeedsReview.String()
	var pending []target
	total := 0
	for i := range col.Emails {
		email := &col.Emails[i]
		for j := range email.Attachments {
			att := &email.Attachments[j]
			if !att.HasTag(sentinel) {
				continue
			}
			total++
			if att.IsImage() {
				pending = append(pending, target{emailID: email.EmailID, attachment: att})
			}
		}
	}

	log.InfoContext(ctx, "manual review pass starting",
		logging.Int("pending", total),
		logging.Int("images", len(pending)))

	rs := newRunState()
	stats := collection.ManualReviewStats{
		TotalManualFiles:    total,
		ImageFilesProcessed: len(pending),
		RunID:               runID,
	}

	var mu sync.Mutex
	err := c.forEachTarget(ctx, pending, func(ctx context.Context, t target) {
		tag := c.classifyAttachment(ctx, rs, log, t)
		if tag == classify.TagNeedsReview {
			return
		}
		t.attachment.RemoveTag(sentinel)
		t.attachment.AddTag(tag.String())
		mu.Lock()
		stats.ReclassifiedFiles++
		mu.Unlock()
	})

	stats.APICalls = rs.calls()
	stats.ProcessedAt = c.now().Format(timestampLayout)
	col.Metadata.ManualReviewStats = &stats

	if err != nil {
		return stats, err
	}
	log.InfoContext(ctx, "manual review pass finished",
		logging.Int("reclassified", stats.ReclassifiedFiles),
		logging.Int("api_calls", stats.APICalls))
	return stats, nil
}
