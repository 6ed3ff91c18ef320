package report_test

import (
	"math"
	"testing"

	"github.com/juliaafonsoo/scrape-data/internal/classify"
	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/report"
	"github.com/juliaafonsoo/scrape-data/internal/testsupport"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func sampleCollection() *collection.Collection {
	review := classify.TagNeedsReview.String()
	col := &collection.Collection{
		Emails: []collection.Email{
			{
				EmailID: 1,
				Attachments: []collection.Attachment{
					testsupport.NewAttachment(1, "rg.jpg", classify.TagRG.String()),
					testsupport.NewAttachment(2, "cpf.jpg", classify.TagCPF.String()),
					testsupport.NewAttachment(3, "nota.jpg", review),
				},
			},
			{
				EmailID: 2,
				Attachments: []collection.Attachment{
					{AttachmentID: 4, Filename: "contrato.pdf", MimeType: "application/pdf", AnexoPath: "anexos/contrato.pdf"},
					testsupport.NewAttachment(5, "rg-verso.jpg", classify.TagRG.String()),
				},
			},
			{
				EmailID: 3,
				Attachments: []collection.Attachment{
					{AttachmentID: 6, Filename: "planilha.xlsx", MimeType: "application/vnd.ms-excel", AnexoPath: "anexos/planilha.xlsx"},
				},
			},
		},
	}
	col.Metadata.ClassificationStats = &collection.ClassificationStats{
		TotalImages: 4, ClassifiedImages: 3, APICalls: 7,
	}
	col.Metadata.ManualReviewStats = &collection.ManualReviewStats{APICalls: 3}
	return col
}

func TestBuildAggregates(t *testing.T) {
	s := report.Build(sampleCollection())

	if s.TotalEmails != 3 || s.EmailsWithImages != 2 {
		t.Fatalf("emails = %d with images %d, want 3 and 2", s.TotalEmails, s.EmailsWithImages)
	}
	if s.TotalAttachments != 6 || s.TotalImages != 4 {
		t.Fatalf("attachments = %d images %d, want 6 and 4", s.TotalAttachments, s.TotalImages)
	}
	if s.TaggedImages != 4 || s.ManualReview != 1 {
		t.Fatalf("tagged = %d manual = %d, want 4 and 1", s.TaggedImages, s.ManualReview)
	}
}

func TestTagCountsOrdering(t *testing.T) {
	s := report.Build(sampleCollection())

	counts := s.TagCounts()
	if len(counts) != 3 {
		t.Fatalf("counts = %v, want 3 entries", counts)
	}
	if counts[0].Tag != classify.TagRG.String() || counts[0].Count != 2 {
		t.Fatalf("counts[0] = %+v, want RG x2", counts[0])
	}
	// CPF and REVISAO_MANUAL tie at one; alphabetical order breaks it.
	if counts[1].Tag != classify.TagCPF.String() || counts[2].Tag != classify.TagNeedsReview.String() {
		t.Fatalf("tie order = %v", counts[1:])
	}
	if !almostEqual(s.TagShare(counts[0].Count), 50) {
		t.Fatalf("RG share = %f, want 50", s.TagShare(counts[0].Count))
	}
}

func TestCostAndEfficacy(t *testing.T) {
	s := report.Build(sampleCollection())

	if s.APICalls() != 10 {
		t.Fatalf("APICalls = %d, want 10", s.APICalls())
	}
	if !almostEqual(s.EstimatedCostUSD(), 0.015) {
		t.Fatalf("cost = %f, want 0.015", s.EstimatedCostUSD())
	}
	if !almostEqual(s.Efficacy(), 75) {
		t.Fatalf("efficacy = %f, want 75", s.Efficacy())
	}
	if s.TestMode() {
		t.Fatal("billable runs must not report test mode")
	}
}

func TestTestModeDetection(t *testing.T) {
	col := sampleCollection()
	col.Metadata.ClassificationStats.APICalls = 0
	col.Metadata.ManualReviewStats = nil

	s := report.Build(col)
	if !s.TestMode() {
		t.Fatal("zero-call run over images should report test mode")
	}
}

func TestBuildEmptyCollection(t *testing.T) {
	s := report.Build(nil)
	if s.TotalImages != 0 || s.APICalls() != 0 {
		t.Fatalf("summary = %+v, want zeros", s)
	}
	if !almostEqual(s.Efficacy(), 0) || s.TestMode() {
		t.Fatal("empty summary must stay inert")
	}
	if len(s.TagCounts()) != 0 {
		t.Fatal("empty summary must have no tag counts")
	}
}
