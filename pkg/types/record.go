// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Field names shared by the parsers, the rule engine, and the template writer.
const (
	FieldCNPJ            = "cnpj"
	FieldCompanyName     = "razao_social"
	FieldTradeName       = "nome_fantasia"
	FieldStreet          = "logradouro"
	FieldNumber          = "numero"
	FieldComplement      = "complemento"
	FieldDistrict        = "bairro"
	FieldPostalCode      = "cep"
	FieldCity            = "cidade"
	FieldState           = "uf"
	FieldSegment         = "segmento"
	FieldStateReg        = "insc_estadual"
	FieldAddress         = "endereco"
	FieldPostalCodePart1 = "cep_parte1"
	FieldPostalCodePart2 = "cep_parte2"
	FieldCNPJPart1       = "cnpj_PART1"
	FieldCNPJPart2       = "cnpj_PARTE2"
	FieldRepresentative  = "representante"
)

// Record is the field record accumulated for one client across every
// document in a run. Keys are field names, values are extracted or derived
// text.
type Record map[string]string

// Get returns the value for key, or "" when the key is absent.
func (r Record) Get(key string) string {
	return r[key]
}

// Merge copies every entry of other into r. Later values overwrite earlier
// ones, including empty strings.
func (r Record) Merge(other Record) {
	for k, v := range other {
		r[k] = v
	}
}

// Clone returns an independent copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
