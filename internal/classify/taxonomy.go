package classify

// Tag is a document-type label from the closed taxonomy.
type Tag string

const (
	TagRG                   Tag = "RG"
	TagCPF                  Tag = "CPF"
	TagCNH                  Tag = "CNH"
	TagFoto3x4              Tag = "FOTO_3X4"
	TagComprovanteEndereco  Tag = "COMPROVANTE_ENDERECO"
	TagCartaoSUS            Tag = "CARTAO_SUS"
	TagCRM                  Tag = "CRM"
	TagTituloEleitor        Tag = "TITULO_ELEITOR"
	TagDiplomaMedicina      Tag = "DIPLOMA_MEDICINA"
	TagCertidaoCasamento    Tag = "CERTIDAO_CASAMENTO"
	TagPIS                  Tag = "PIS"
	TagCarteiraTrabalho     Tag = "CARTEIRA_TRABALHO"
	TagCertificadoACLS      Tag = "CERTIFICADO_ACLS"
	TagCertificadoATLS      Tag = "CERTIFICADO_ATLS"
	TagCertificadoPALS      Tag = "CERTIFICADO_PALS"
	TagCertificadoOutros    Tag = "CERTIFICADO_CURSO_OUTROS"
	TagCertificadoEspec     Tag = "CERTIFICADO_ESPECIALIDADE"
	TagCertificadoPosGrad   Tag = "CERTIFICADO_POS_GRADUACAO"
	TagDeclaracaoResidencia Tag = "DECLARACAO_RESIDENCIA_MEDICA"
	TagCurriculo            Tag = "CURRICULO"

	// TagNeedsReview is the sentinel meaning no automated rule matched
	// and a human must decide.
	TagNeedsReview Tag = "REVISAO_MANUAL"
)

// AllTags lists every concrete tag in the taxonomy, excluding the
// manual-review sentinel.
var AllTags = []Tag{
	TagRG,
	TagCPF,
	TagCNH,
	TagFoto3x4,
	TagComprovanteEndereco,
	TagCartaoSUS,
	TagCRM,
	TagTituloEleitor,
	TagDiplomaMedicina,
	TagCertidaoCasamento,
	TagPIS,
	TagCarteiraTrabalho,
	TagCertificadoACLS,
	TagCertificadoATLS,
	TagCertificadoPALS,
	TagCertificadoOutros,
	TagCertificadoEspec,
	TagCertificadoPosGrad,
	TagDeclaracaoResidencia,
	TagCurriculo,
}

// IsValid reports whether tag belongs to the taxonomy, sentinel
// included.
func IsValid(tag Tag) bool {
	if tag == TagNeedsReview {
		return true
	}
	for _, t := range AllTags {
		if t == tag {
			return true
		}
	}
	return false
}

// String returns the wire representation of the tag.
func (t Tag) String() string {
	return string(t)
}
