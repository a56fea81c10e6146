// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/ficha-cadastral/internal/parse"
	"github.com/pdiddy/ficha-cadastral/pkg/types"
)

// writePDF writes a minimal PDF with one page per content stream. Text is
// set in Courier with explicit widths so glyph positions are exact.
func writePDF(t *testing.T, path string, pages ...string) {
	t.Helper()

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>",
			strings.TrimSpace(strings.Repeat("600 ", 95))),
	}
	for i, content := range pages {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))
}

func TestExtractCNPJCardLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cartao.pdf")
	writePDF(t, path,
		"BT /F1 10 Tf 1 0 0 1 50 700 Tm (NOME EMPRESARIAL) Tj 1 0 0 1 50 688 Tm (ACME LTDA) Tj ET",
		"BT /F1 10 Tf 1 0 0 1 50 700 Tm (CEP) Tj 1 0 0 1 300 700 Tm (UF) Tj "+
			"1 0 0 1 50 688 Tm (01.234-567) Tj 1 0 0 1 300 688 Tm (SP) Tj ET",
	)

	text, err := NewPDFExtractor(zap.NewNop()).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "NOME EMPRESARIAL\nACME LTDA\nCEP\n01.234-567\nUF\nSP\n", text)

	rec := parse.CNPJ(text, zap.NewNop())
	assert.Equal(t, "ACME LTDA", rec.Get(types.FieldCompanyName))
	assert.Equal(t, "01.234-567", rec.Get(types.FieldPostalCode))
	assert.Equal(t, "SP", rec.Get(types.FieldState))
}

func TestExtractMissingOrEmptyPath(t *testing.T) {
	e := NewPDFExtractor(zap.NewNop())

	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "nonexistent file", path: filepath.Join(t.TempDir(), "missing.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := e.Extract(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Empty(t, text)
		})
	}
}

func TestExtractCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	text, err := NewPDFExtractor(nil).Extract(context.Background(), path)
	require.ErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, err.Error(), "broken.pdf")
	assert.Empty(t, text)
}

func TestExtractCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPDFExtractor(nil).Extract(ctx, path)
	require.ErrorIs(t, err, context.Canceled)
}
