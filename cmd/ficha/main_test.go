// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/ficha-cadastral/internal/config"
	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader("\n"))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunMissingConfigKeyExitsWithConfigCode(t *testing.T) {
	path := writeConfig(t, `
Paths:
  InputFolder: entrada
  OutputFolder: saida
  ProcessedFolder: processados
  ErrorFolder: erros
  ExcelTemplate: modelo.xlsx
`)
	out, err := execute(t, "run", "--config", path, "--pause")
	require.Error(t, err)
	assert.NotContains(t, out, "Press Enter", "configuration errors exit without pausing")

	var ee *exitError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, exitConfig, ee.code)
	assert.ErrorIs(t, err, config.ErrMissingKey)
}

func TestRunEmptyInputFolder(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "entrada")
	require.NoError(t, os.MkdirAll(input, 0o755))

	path := writeConfig(t, fmt.Sprintf(`
Paths:
  InputFolder: %[1]s/entrada
  OutputFolder: %[1]s/saida
  ProcessedFolder: %[1]s/processados
  ErrorFolder: %[1]s/erros
  ExcelTemplate: %[1]s/modelo.xlsx
Settings:
  LogFile: %[1]s/logs/ficha.log
`, filepath.ToSlash(root)))

	out, err := execute(t, "run", "--config", path, "--pause")
	require.NoError(t, err)
	assert.Contains(t, out, "outcome no_input")
	assert.Contains(t, out, "Press Enter to exit")

	assert.DirExists(t, filepath.Join(root, "processados"))
	assert.DirExists(t, filepath.Join(root, "erros"))
	assert.NoDirExists(t, filepath.Join(root, "saida"))
	assert.FileExists(t, filepath.Join(root, "logs", "ficha.log"))
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ficha dev\n", out)
}

type stubExtractor map[string]string

func (s stubExtractor) Extract(_ context.Context, path string) (string, error) {
	text, ok := s[path]
	if !ok {
		return "", errors.New("unreadable")
	}
	return text, nil
}

func TestInspectFiles(t *testing.T) {
	ext := stubExtractor{
		"cartao.pdf": "NÚMERO DE INSCRIÇÃO\n12.345.678/0001-99\nNOME EMPRESARIAL\nACME LTDA\nCEP\n01234567\n",
		"ie.pdf":     "INSCRIÇÃO: 123.456.789\n",
		"blank.pdf":  "",
	}
	results := inspectFiles(context.Background(), ext, []string{"cartao.pdf", "ie.pdf", "blank.pdf", "broken.pdf"}, true, zap.NewNop())
	require.Len(t, results, 4)

	assert.Equal(t, types.KindCNPJ, results[0].Kind)
	assert.Equal(t, "ACME LTDA", results[0].Fields.Get(types.FieldCompanyName))
	assert.Equal(t, "12.345.678/0001", results[0].Fields.Get(types.FieldCNPJPart1))
	assert.Empty(t, results[0].Diagnostics, "a cep without hyphen is not split and not reported")

	assert.Equal(t, types.KindStateRegistration, results[1].Kind)
	assert.Equal(t, "123.456.789", results[1].Fields.Get(types.FieldStateReg))

	assert.Equal(t, "no text extracted", results[2].Error)
	assert.Equal(t, "unreadable", results[3].Error)
	assert.Equal(t, types.KindUnrecognized, results[3].Kind)

	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, results[:1]))
	assert.Contains(t, buf.String(), "kind: cnpj")
	assert.Contains(t, buf.String(), "razao_social: ACME LTDA")
}
