package vision

import (
	"context"
	"path/filepath"
	"strings"
)

// OfflineExtractor substitutes deterministic synthetic signals for
// network calls. Signals are derived from the image filename so
// fixture-driven runs are reproducible; no call ever counts against the
// api_calls budget.
type OfflineExtractor struct{}

// NewOfflineExtractor returns the offline test-mode extractor.
func NewOfflineExtractor() *OfflineExtractor {
	return &OfflineExtractor{}
}

// ExtractFile fabricates signals from the basename of path. The file
// itself is never opened.
func (*OfflineExtractor) ExtractFile(ctx context.Context, path string) (Signals, int, error) {
	if err := ctx.Err(); err != nil {
		return Signals{}, 0, err
	}
	return syntheticSignals(filepath.Base(path)), 0, nil
}

func syntheticSignals(filename string) Signals {
	name := strings.ToLower(filename)

	switch {
	case strings.Contains(name, "foto") || strings.Contains(name, "3x4"):
		return Signals{
			Text:   "Nome da Pessoa",
			Labels: []string{"portrait", "person", "photograph"},
			Faces:  []BoundingBox{{X: 75, Y: 80, Width: 150, Height: 200}},
			Width:  300,
			Height: 400,
		}
	case strings.Contains(name, "rg") || strings.Contains(name, "identidade"):
		return Signals{
			Text:   "REPÚBLICA FEDERATIVA DO BRASIL REGISTRO GERAL 123456789",
			Labels: []string{"document", "identity document"},
		}
	case strings.Contains(name, "cpf"):
		return Signals{
			Text:   "RECEITA FEDERAL CPF 123.456.789-00",
			Labels: []string{"document"},
		}
	case strings.Contains(name, "cnh"):
		return Signals{
			Text:   "CARTEIRA NACIONAL DE HABILITAÇÃO DETRAN",
			Labels: []string{"document", "driving licence"},
		}
	case strings.Contains(name, "crm"):
		return Signals{
			Text:   "CONSELHO REGIONAL DE MEDICINA CRM-ES 12345",
			Labels: []string{"document"},
		}
	case strings.Contains(name, "sus") || strings.Contains(name, "cns"):
		return Signals{
			Text:   "SISTEMA ÚNICO DE SAÚDE CNS 7000000000000",
			Labels: []string{"document"},
		}
	default:
		return Signals{}
	}
}
