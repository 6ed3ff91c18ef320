package classify

import (
	"regexp"
	"strings"

	"github.com/juliaafonsoo/scrape-data/internal/textutil"
)

// cpfPattern matches the canonical formatted CPF number. It fires even
// when no CPF keyword is present.
var cpfPattern = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}`)

// Short acronyms match on word boundaries so they do not fire inside
// unrelated words. Longer phrases match as plain substrings.
var (
	crmAcronym  = regexp.MustCompile(`\bcrm\b`)
	susAcronym  = regexp.MustCompile(`\bsus\b`)
	cnsAcronym  = regexp.MustCompile(`\bcns\b`)
	tseAcronym  = regexp.MustCompile(`\btse\b`)
	pisAcronym  = regexp.MustCompile(`\bpis\b`)
	ctpsAcronym = regexp.MustCompile(`\bctps\b`)
	aclsAcronym = regexp.MustCompile(`\bacls\b`)
	atlsAcronym = regexp.MustCompile(`\batls\b`)
	palsAcronym = regexp.MustCompile(`\bpals\b`)
	cvAcronym   = regexp.MustCompile(`\bcv\b`)
)

// defaultUtilityCompanies are known local utility and housing companies
// whose presence marks a proof-of-address document. Already in
// normalized form.
var defaultUtilityCompanies = []string{
	"empresa luz e forca santa maria",
	"edp es distrib de energia",
	"enel",
	"loga administracao",
	"ultragaz",
	"wk imoveis",
	"unimed vitoria",
}

type matcher func(text string) bool

func containsAny(keywords ...string) matcher {
	return func(text string) bool {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
		return false
	}
}

func matchesAny(patterns ...*regexp.Regexp) matcher {
	return func(text string) bool {
		for _, re := range patterns {
			if re.MatchString(text) {
				return true
			}
		}
		return false
	}
}

func anyOf(matchers ...matcher) matcher {
	return func(text string) bool {
		for _, m := range matchers {
			if m(text) {
				return true
			}
		}
		return false
	}
}

func allOf(matchers ...matcher) matcher {
	return func(text string) bool {
		for _, m := range matchers {
			if !m(text) {
				return false
			}
		}
		return true
	}
}

type rule struct {
	tag   Tag
	match matcher
}

// Classifier evaluates the ordered rule cascade over normalized OCR
// text.
type Classifier struct {
	rules     []rule
	utilities []string
}

// Option customizes classifier construction.
type Option func(*Classifier)

// WithExtraUtilityCompanies extends the built-in utility company list
// used for proof-of-address matching. Entries are normalized before
// use.
func WithExtraUtilityCompanies(names []string) Option {
	return func(c *Classifier) {
		c.utilities = append(c.utilities, textutil.NormalizeAll(names)...)
	}
}

// New builds a Classifier with the fixed cascade order.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		utilities: append([]string(nil), defaultUtilityCompanies...),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rules = c.buildCascade()
	return c
}

// buildCascade assembles the priority-ordered rule table. The order is
// fixed: earlier rules win when a document matches several.
func (c *Classifier) buildCascade() []rule {
	certificateTrigger := containsAny("certificado", "certificacao")

	return []rule{
		{TagRG, containsAny(
			"registro geral", "carteira de identidade", "identidade",
			"rg n", "rg:", "doc. identidade",
		)},
		{TagCPF, anyOf(
			containsAny("cadastro de pessoa fisica", "cadastro de pessoas fisicas", "cpf", "receita federal"),
			matchesAny(cpfPattern),
		)},
		{TagCNH, containsAny(
			"carteira nacional de habilitacao", "cnh", "detran", "habilitacao",
		)},
		{TagComprovanteEndereco, anyOf(
			c.matchUtilityCompany,
			containsAny("comprovante de endereco", "comprovante de residencia", "comprovante", "endereco"),
		)},
		{TagCartaoSUS, anyOf(
			containsAny("sistema unico de saude", "cartao nacional de saude"),
			matchesAny(susAcronym, cnsAcronym),
		)},
		{TagCRM, anyOf(
			containsAny("conselho regional de medicina"),
			matchesAny(crmAcronym),
		)},
		{TagTituloEleitor, anyOf(
			containsAny("titulo de eleitor", "titulo eleitor", "justica eleitoral"),
			matchesAny(tseAcronym),
		)},
		{TagDiplomaMedicina, allOf(
			containsAny("diploma", "bacharel"),
			containsAny("medicina"),
		)},
		{TagCertidaoCasamento, containsAny(
			"certidao de casamento", "cartorio", "casamento",
		)},
		{TagPIS, anyOf(
			containsAny("pasep", "programa de integracao social"),
			matchesAny(pisAcronym),
		)},
		{TagCarteiraTrabalho, anyOf(
			containsAny("carteira de trabalho", "ministerio do trabalho"),
			matchesAny(ctpsAcronym),
		)},
		// The certificate sub-cascade keeps a fixed acronym priority:
		// ACLS, then ATLS, then PALS, then the specialty and
		// post-graduate variants, then residency declarations, and only
		// then the generic bucket.
		{TagCertificadoACLS, allOf(certificateTrigger, matchesAny(aclsAcronym))},
		{TagCertificadoATLS, allOf(certificateTrigger, matchesAny(atlsAcronym))},
		{TagCertificadoPALS, allOf(certificateTrigger, matchesAny(palsAcronym))},
		{TagCertificadoEspec, allOf(certificateTrigger, containsAny("especialidade", "especializacao"))},
		{TagCertificadoPosGrad, allOf(certificateTrigger, containsAny("pos-graduacao", "pos graduacao"))},
		{TagDeclaracaoResidencia, allOf(certificateTrigger, containsAny("residencia medica", "programa de residencia"))},
		{TagCertificadoOutros, certificateTrigger},
		{TagDeclaracaoResidencia, containsAny(
			"residencia medica", "programa de residencia",
		)},
		{TagCurriculo, anyOf(
			containsAny("curriculo", "curriculum", "experiencia profissional"),
			matchesAny(cvAcronym),
		)},
	}
}

func (c *Classifier) matchUtilityCompany(text string) bool {
	for _, company := range c.utilities {
		if strings.Contains(text, company) {
			return true
		}
	}
	return false
}

// ClassifyText runs the cascade over raw OCR text. The text is
// normalized internally; callers may pass the extractor output
// verbatim. Returns false when no rule matches.
func (c *Classifier) ClassifyText(text string) (Tag, bool) {
	normalized := textutil.Normalize(text)
	for _, r := range c.rules {
		if r.match(normalized) {
			return r.tag, true
		}
	}
	return "", false
}
