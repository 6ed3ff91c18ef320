// Package report aggregates collection state into run summaries: tag
// distribution, coverage, estimated analysis cost, and efficacy.
package report

import (
	"sort"

	"github.com/juliaafonsoo/scrape-data/internal/classify"
	"github.com/juliaafonsoo/scrape-data/internal/collection"
)

// costPerThousandCalls is the analysis service price in USD per 1000
// feature calls.
const costPerThousandCalls = 1.50

// TagCount pairs a tag with its occurrence count across image
// attachments.
type TagCount struct {
	Tag   string
	Count int
}

// Summary captures everything the report command renders.
type Summary struct {
	TotalEmails      int
	EmailsWithImages int
	TotalAttachments int
	TotalImages      int
	TaggedImages     int
	ManualReview     int
	Classification   *collection.ClassificationStats
	ManualReviewRun  *collection.ManualReviewStats

	counts map[string]int
}

// Build walks the collection and aggregates a summary. Only image
// attachments contribute to tag distribution and coverage figures.
func Build(col *collection.Collection) Summary {
	s := Summary{counts: make(map[string]int)}
	if col == nil {
		return s
	}

	s.TotalEmails = len(col.Emails)
	s.Classification = col.Metadata.ClassificationStats
	s.ManualReviewRun = col.Metadata.ManualReviewStats

	sentinel := classify.TagNeedsReview.String()
	for i := range col.Emails {
		email := &col.Emails[i]
		hasImage := false
		for j := range email.Attachments {
			att := &email.Attachments[j]
			s.TotalAttachments++
			if !att.IsImage() {
				continue
			}
			hasImage = true
			s.TotalImages++
			if len(att.Tags) > 0 {
				s.TaggedImages++
			}
			for _, tag := range att.Tags {
				s.counts[tag]++
			}
			if att.HasTag(sentinel) {
				s.ManualReview++
			}
		}
		if hasImage {
			s.EmailsWithImages++
		}
	}
	return s
}

// TagCounts returns the tag distribution ordered by descending count,
// ties broken alphabetically.
func (s Summary) TagCounts() []TagCount {
	out := make([]TagCount, 0, len(s.counts))
	for tag, count := range s.counts {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// TagShare returns a tag's share of all image attachments as a
// percentage.
func (s Summary) TagShare(count int) float64 {
	if s.TotalImages == 0 {
		return 0
	}
	return float64(count) / float64(s.TotalImages) * 100
}

// Efficacy is the share of image attachments that resolved to a
// concrete tag rather than manual review, as a percentage.
func (s Summary) Efficacy() float64 {
	if s.TotalImages == 0 {
		return 0
	}
	return float64(s.TotalImages-s.ManualReview) / float64(s.TotalImages) * 100
}

// APICalls sums the billable calls recorded by the classification and
// manual-review runs.
func (s Summary) APICalls() int {
	calls := 0
	if s.Classification != nil {
		calls += s.Classification.APICalls
	}
	if s.ManualReviewRun != nil {
		calls += s.ManualReviewRun.APICalls
	}
	return calls
}

// EstimatedCostUSD prices the recorded calls at the per-thousand rate.
func (s Summary) EstimatedCostUSD() float64 {
	return float64(s.APICalls()) / 1000 * costPerThousandCalls
}

// TestMode reports whether the recorded runs look like offline runs:
// images were processed yet no billable call was made.
func (s Summary) TestMode() bool {
	return s.Classification != nil && s.TotalImages > 0 && s.APICalls() == 0
}
