package formatter

import (
	"testing"

	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"github.com/nerdneilsfield/go-report-formatter/internal/testutils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func readDoc(t *testing.T, body string, opts ...testutils.DocxOption) *docx.Document {
	t.Helper()
	doc, err := docx.Read(testutils.BuildDocx(t, body, opts...))
	require.NoError(t, err)
	return doc
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func classify(t *testing.T, doc *docx.Document) []Classification {
	t.Helper()
	result := NewClassifier(nil).Classify(doc.Blocks(), NewContext(false))
	require.Len(t, result, len(doc.Blocks()))
	return result
}

func roles(result []Classification) []Role {
	out := make([]Role, len(result))
	for i, c := range result {
		out[i] = c.Role
	}
	return out
}

func runFonts(t *testing.T, p *docx.Paragraph) (names []string, sizes []float64) {
	t.Helper()
	for _, r := range p.Runs() {
		name, _ := r.FontName()
		size, _ := r.FontSize()
		names = append(names, name)
		sizes = append(sizes, size)
	}
	return names, sizes
}

func assertIndentCleared(t *testing.T, p *docx.Paragraph) {
	t.Helper()
	for _, attr := range docx.IndentAttrs {
		v, ok := p.Indent(attr)
		require.True(t, ok, attr)
		require.Zero(t, v, attr)
	}
}
