package textutil_test

import (
	"testing"

	"github.com/juliaafonsoo/scrape-data/internal/textutil"
)

func TestNormalizeStripsDiacriticsAndLowercases(t *testing.T) {
	cases := map[string]string{
		"CADASTRO DE PESSOAS FÍSICAS": "cadastro de pessoas fisicas",
		"Pós-Graduação":               "pos-graduacao",
		"residência médica":           "residencia medica",
		"Unimed Vitória":              "unimed vitoria",
		"ENEL":                        "enel",
		"":                            "",
	}
	for input, want := range cases {
		if got := textutil.Normalize(input); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeAccentedMatchesUnaccented(t *testing.T) {
	if textutil.Normalize("Certificação") != textutil.Normalize("certificacao") {
		t.Fatal("accented and unaccented variants should normalize identically")
	}
}

func TestNormalizeAll(t *testing.T) {
	got := textutil.NormalizeAll([]string{"Título de Eleitor", "CRM"})
	want := []string{"titulo de eleitor", "crm"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeAll[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	got := textutil.CollapseWhitespace("REGISTRO\nGERAL\n\n  123456")
	if got != "REGISTRO GERAL 123456" {
		t.Fatalf("CollapseWhitespace = %q", got)
	}
}
