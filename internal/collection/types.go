package collection

import "strings"

// Attachment is a single file extracted from an email. Tags form a
// duplicate-free set; order carries no meaning.
type Attachment struct {
	AttachmentID int      `json:"attachmentID,omitempty"`
	Filename     string   `json:"filename"`
	MimeType     string   `json:"mimeType"`
	AnexoPath    string   `json:"anexoPath"`
	Size         int64    `json:"size,omitempty"`
	Tags         []string `json:"tag"`
}

// IsImage reports whether the attachment's MIME type indicates an
// image the analysis service can process.
func (a *Attachment) IsImage() bool {
	return strings.HasPrefix(a.MimeType, "image/")
}

// HasTag reports whether the tag set contains tag.
func (a *Attachment) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag inserts tag into the set if absent.
func (a *Attachment) AddTag(tag string) {
	if !a.HasTag(tag) {
		a.Tags = append(a.Tags, tag)
	}
}

// RemoveTag deletes tag from the set, preserving the other entries.
func (a *Attachment) RemoveTag(tag string) {
	kept := a.Tags[:0]
	for _, t := range a.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	a.Tags = kept
}

// SetTag replaces the whole tag set with a single tag.
func (a *Attachment) SetTag(tag string) {
	a.Tags = []string{tag}
}

// Email is a container of attachments plus sender context.
type Email struct {
	EmailID     int          `json:"emailID,omitempty"`
	From        string       `json:"from"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

// ClassificationStats summarizes one classification run.
type ClassificationStats struct {
	TotalImages      int    `json:"total_images"`
	ClassifiedImages int    `json:"classified_images"`
	APICalls         int    `json:"api_calls"`
	ProcessedAt      string `json:"processed_at"`
	RunID            string `json:"run_id,omitempty"`
}

// ManualReviewStats summarizes one reconciliation run over attachments
// previously routed to manual review.
type ManualReviewStats struct {
	TotalManualFiles    int    `json:"total_manual_files"`
	ImageFilesProcessed int    `json:"image_files_processed"`
	ReclassifiedFiles   int    `json:"reclassified_files"`
	APICalls            int    `json:"api_calls"`
	ProcessedAt         string `json:"processed_at"`
	RunID               string `json:"run_id,omitempty"`
}

// Metadata carries collection-level counters and run summaries.
type Metadata struct {
	TotalEmails         int                  `json:"total_emails,omitempty"`
	ProcessedAt         string               `json:"processed_at,omitempty"`
	ClassificationStats *ClassificationStats `json:"classification_stats,omitempty"`
	ManualReviewStats   *ManualReviewStats   `json:"manual_review_processing,omitempty"`
}

// Collection is the whole loaded file and the root owner of all
// entities within it.
type Collection struct {
	Metadata Metadata `json:"metadata"`
	Emails   []Email  `json:"emails"`
}

// AssignAttachmentIDs gives sequential IDs to attachments that lack
// one, continuing above the maximum ID already present. It returns the
// number of IDs assigned.
func (c *Collection) AssignAttachmentIDs() int {
	next := 0
	for i := range c.Emails {
		for j := range c.Emails[i].Attachments {
			if id := c.Emails[i].Attachments[j].AttachmentID; id > next {
				next = id
			}
		}
	}

	assigned := 0
	for i := range c.Emails {
		for j := range c.Emails[i].Attachments {
			if c.Emails[i].Attachments[j].AttachmentID == 0 {
				next++
				c.Emails[i].Attachments[j].AttachmentID = next
				assigned++
			}
		}
	}
	return assigned
}

// FindAttachment locates an attachment by ID. Returns nil when absent.
func (c *Collection) FindAttachment(attachmentID int) *Attachment {
	for i := range c.Emails {
		for j := range c.Emails[i].Attachments {
			if c.Emails[i].Attachments[j].AttachmentID == attachmentID {
				return &c.Emails[i].Attachments[j]
			}
		}
	}
	return nil
}
