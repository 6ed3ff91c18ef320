package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/juliaafonsoo/scrape-data/internal/classify"
	"github.com/juliaafonsoo/scrape-data/internal/collection"
	"github.com/juliaafonsoo/scrape-data/internal/testsupport"
)

func TestClassifyCommandOffline(t *testing.T) {
	env := setupCLITestEnv(t)
	col := testsupport.NewCollection(
		testsupport.NewAttachment(1, "cpf-frente.jpg"),
		testsupport.NewAttachment(2, "foto-3x4.png"),
		testsupport.NewAttachment(3, "nota-fiscal.jpg"),
	)
	path := env.writeCollection(t, col)

	out, _, err := runCLI(t, env, "classify", path)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	requireContains(t, out, "Classification run")
	requireContains(t, out, "offline")

	saved, err := collection.NewStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("reload collection: %v", err)
	}
	if got := saved.FindAttachment(1); !got.HasTag(classify.TagCPF.String()) {
		t.Fatalf("attachment 1 tags = %v, want CPF", got.Tags)
	}
	if got := saved.FindAttachment(2); !got.HasTag(classify.TagFoto3x4.String()) {
		t.Fatalf("attachment 2 tags = %v, want FOTO_3X4", got.Tags)
	}
	if got := saved.FindAttachment(3); !got.HasTag(classify.TagNeedsReview.String()) {
		t.Fatalf("attachment 3 tags = %v, want REVISAO_MANUAL", got.Tags)
	}
	stats := saved.Metadata.ClassificationStats
	if stats == nil || stats.TotalImages != 3 || stats.APICalls != 0 {
		t.Fatalf("stats = %+v, want 3 images and 0 calls offline", stats)
	}
}

func TestReviewListCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	col := testsupport.NewCollection(
		testsupport.NewAttachment(1, "nota.jpg", classify.TagNeedsReview.String()),
		testsupport.NewAttachment(2, "cpf.jpg", classify.TagCPF.String()),
	)
	path := env.writeCollection(t, col)

	out, _, err := runCLI(t, env, "review", "list", path)
	if err != nil {
		t.Fatalf("review list: %v", err)
	}
	requireContains(t, out, "nota.jpg")
	requireContains(t, out, "1 attachments awaiting review")
}

func TestReviewProcessCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	att := testsupport.NewAttachment(1, "rg-frente.jpg", "URGENTE", classify.TagNeedsReview.String())
	col := testsupport.NewCollection(att)
	path := env.writeCollection(t, col)

	out, _, err := runCLI(t, env, "review", "process", path)
	if err != nil {
		t.Fatalf("review process: %v", err)
	}
	requireContains(t, out, "Manual review pass")

	saved, err := collection.NewStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("reload collection: %v", err)
	}
	got := saved.FindAttachment(1)
	if got.HasTag(classify.TagNeedsReview.String()) {
		t.Fatalf("tags = %v, sentinel should be gone", got.Tags)
	}
	if !got.HasTag(classify.TagRG.String()) || !got.HasTag("URGENTE") {
		t.Fatalf("tags = %v, want RG merged alongside URGENTE", got.Tags)
	}
}

func TestReportCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	col := testsupport.NewCollection(
		testsupport.NewAttachment(1, "rg.jpg", classify.TagRG.String()),
		testsupport.NewAttachment(2, "nota.jpg", classify.TagNeedsReview.String()),
	)
	col.Metadata.ClassificationStats = &collection.ClassificationStats{
		TotalImages: 2, ClassifiedImages: 1, APICalls: 4,
	}
	path := env.writeCollection(t, col)

	out, _, err := runCLI(t, env, "report", path)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	requireContains(t, out, "Tag distribution")
	requireContains(t, out, classify.TagRG.String())
	requireContains(t, out, "US$ 0.0060")
	requireContains(t, out, "50.0%")
}

func TestFoldersPreviewAndApply(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := filepath.Join(env.anexoDir, "Maria Souza <maria@example.com>")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, env, "folders", "preview")
	if err != nil {
		t.Fatalf("folders preview: %v", err)
	}
	requireContains(t, out, "maria@example.com>")
	requireContains(t, out, "1 to rename")

	out, _, err = runCLI(t, env, "folders", "apply")
	if err != nil {
		t.Fatalf("folders apply: %v", err)
	}
	requireContains(t, out, "Folder organization")
	if _, err := os.Stat(filepath.Join(env.anexoDir, "maria@example.com>")); err != nil {
		t.Fatalf("renamed folder missing: %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "sample", "config.toml")

	out, _, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}
