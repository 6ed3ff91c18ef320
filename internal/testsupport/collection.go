package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/juliaafonsoo/scrape-data/internal/collection"
)

// NewAttachment builds an image attachment fixture. The anexo path is
// relative so tests can anchor it under the config base path.
func NewAttachment(id int, filename string, tags ...string) collection.Attachment {
	return collection.Attachment{
		AttachmentID: id,
		Filename:     filename,
		MimeType:     "image/jpeg",
		AnexoPath:    filepath.Join("anexos", filename),
		Size:         2048,
		Tags:         tags,
	}
}

// NewCollection wraps attachments into a single-email collection.
func NewCollection(attachments ...collection.Attachment) *collection.Collection {
	return &collection.Collection{
		Metadata: collection.Metadata{TotalEmails: 1},
		Emails: []collection.Email{{
			EmailID:     1,
			From:        "Maria Souza <maria@example.com>",
			Subject:     "documentos",
			Attachments: attachments,
		}},
	}
}

// WriteCollection persists a collection fixture as JSON and returns the
// file path.
func WriteCollection(t testing.TB, dir string, col *collection.Collection) string {
	t.Helper()

	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		t.Fatalf("marshal collection: %v", err)
	}
	path := filepath.Join(dir, "emails.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write collection: %v", err)
	}
	return path
}

// MustOpenStore opens a collection store for tests.
func MustOpenStore(t testing.TB, path string) *collection.Store {
	t.Helper()
	return collection.NewStore(path)
}
