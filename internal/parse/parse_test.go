// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

const cnpjCard = `REPÚBLICA FEDERATIVA DO BRASIL
CADASTRO NACIONAL DA PESSOA JURÍDICA
NÚMERO DE INSCRIÇÃO
12.345.678/0001-99
MATRIZ
COMPROVANTE DE INSCRIÇÃO E DE SITUAÇÃO CADASTRAL
NOME EMPRESARIAL
ACME COMERCIO DE FERRAMENTAS LTDA
TÍTULO DO ESTABELECIMENTO (NOME DE FANTASIA)
ACME FERRAMENTAS
CÓDIGO E DESCRIÇÃO DA ATIVIDADE ECONÔMICA PRINCIPAL
47.44-0-01 - Comércio varejista de ferragens e ferramentas
LOGRADOURO
R DAS FLORES
NÚMERO
 120 
COMPLEMENTO
SALA 3
CEP
01.234-567
BAIRRO/DISTRITO
CENTRO
MUNICÍPIO
SAO PAULO
UF
SP
`

func TestCNPJ(t *testing.T) {
	got := CNPJ(cnpjCard, zap.NewNop())

	want := types.Record{
		types.FieldCNPJ:        "12.345.678/0001-99",
		types.FieldCompanyName: "ACME COMERCIO DE FERRAMENTAS LTDA",
		types.FieldTradeName:   "ACME FERRAMENTAS",
		types.FieldStreet:      "R DAS FLORES",
		types.FieldNumber:      "120",
		types.FieldComplement:  "SALA 3",
		types.FieldDistrict:    "CENTRO",
		types.FieldPostalCode:  "01.234-567",
		types.FieldCity:        "SAO PAULO",
		types.FieldState:       "SP",
		types.FieldSegment:     "47.44-0-01 - Comércio varejista de ferragens e ferramentas",
	}
	assert.Equal(t, want, got)
}

func TestCNPJMissingLabels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	got := CNPJ("NÚMERO DE INSCRIÇÃO\n12.345.678/0001-99\n", zap.New(core))

	assert.Len(t, got, len(CNPJFields), "every key is present")
	assert.Equal(t, "12.345.678/0001-99", got.Get(types.FieldCNPJ))
	assert.Equal(t, "", got.Get(types.FieldCompanyName))
	assert.Equal(t, "", got.Get(types.FieldNumber))
	assert.Equal(t, 1, logs.FilterMessage("company name not found in cnpj card").Len())
}

func TestCNPJNumberRequiresDigits(t *testing.T) {
	got := CNPJ("LOGRADOURO\nR A\nNÚMERO\nS/N\nCOMPLEMENTO\nLOJA\n", zap.NewNop())
	assert.Equal(t, "", got.Get(types.FieldNumber))
	assert.Equal(t, "R A", got.Get(types.FieldStreet))
	assert.Equal(t, "LOJA", got.Get(types.FieldComplement))
}

func TestCNPJCaseInsensitive(t *testing.T) {
	got := CNPJ("nome empresarial\nAcme Ltda\n", zap.NewNop())
	assert.Equal(t, "Acme Ltda", got.Get(types.FieldCompanyName))
}

func TestStateRegistration(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "colon", text: "INSCRIÇÃO: 123.456.789\n", want: "123.456.789"},
		{name: "dash", text: "Inscrição - 110.042.490.114\n", want: "110.042.490.114"},
		{name: "next line", text: "INSCRIÇÃO\n987-65\n", want: "987-65"},
		{name: "absent", text: "INSCRIÇÃO ESTADUAL\nISENTO\n", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StateRegistration(tt.text, zap.NewNop())
			assert.Equal(t, types.Record{types.FieldStateReg: tt.want}, got)
		})
	}
}

func TestDocument(t *testing.T) {
	logger := zap.NewNop()
	assert.Equal(t, "ACME LTDA", Document(types.KindCNPJ, "NOME EMPRESARIAL\nACME LTDA\n", logger).Get(types.FieldCompanyName))
	assert.Equal(t, "1", Document(types.KindStateRegistration, "INSCRIÇÃO: 1\n", logger).Get(types.FieldStateReg))
	assert.Nil(t, Document(types.KindUnrecognized, "anything", logger))
}

func TestCompileUnknownShapePanics(t *testing.T) {
	assert.Panics(t, func() {
		Compile([]FieldSpec{{Key: "x", Label: "X", Shape: Shape(99)}})
	})
}
