package vision

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// credentialsFile is the subset of the credentials JSON this adapter
// reads. Token exchange for service-account credentials is owned by an
// external collaborator; this adapter only accepts a ready-to-use API
// key.
type credentialsFile struct {
	APIKey string `json:"api_key"`
	Type   string `json:"type,omitempty"`
}

// LoadAPIKey reads the opaque credential handle from a JSON credentials
// file. It rejects OAuth client files, which cannot be used for
// server-to-server annotate calls.
func LoadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read credentials %s: %w", path, err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("parse credentials %s: %w", path, err)
	}
	if _, ok := probe["installed"]; ok {
		return "", fmt.Errorf("credentials %s: OAuth client file detected; an API key credential is required", path)
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parse credentials %s: %w", path, err)
	}
	key := strings.TrimSpace(creds.APIKey)
	if key == "" {
		return "", fmt.Errorf("credentials %s: api_key missing", path)
	}
	return key, nil
}
