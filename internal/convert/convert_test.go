package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerdneilsfield/go-report-formatter/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	xunicode "golang.org/x/text/encoding/unicode"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestConverter() *Converter {
	return NewConverter(nil, WithOfficeTool(NewOfficeTool("reportfmt-missing-soffice", nil)))
}

func TestDecodeText(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte("一、项目背景\n本项目预计投资100万元。"))
	require.NoError(t, err)
	utf16, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.UseBOM).NewEncoder().Bytes([]byte("表1 数据"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		data     []byte
		text     string
		encoding string
	}{
		{"utf-8", []byte("正文"), "正文", "utf-8"},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("正文")...), "正文", "utf-8"},
		{"gbk", gbk, "一、项目背景\n本项目预计投资100万元。", "gbk"},
		{"utf-16 le", utf16, "表1 数据", "utf-16"},
		{"empty", nil, "", "utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := decodeText(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.encoding, enc)
		})
	}
}

func TestTextLines(t *testing.T) {
	lines := textLines("  一、项目背景\r\n\r\n正文\x07内容\t\n\n")
	assert.Equal(t, []string{"一、项目背景", "", "正文内容", ""}, lines)
	assert.Nil(t, textLines(""))
}

func TestConvertText(t *testing.T) {
	path := writeFile(t, t.TempDir(), "报告.txt", []byte("7.9 系统架构\n\n本项目预计投资100万元。\n"))

	result, err := newTestConverter().Convert(context.Background(), path)
	require.NoError(t, err)

	assert.True(t, result.FromPlainText)
	assert.Equal(t, FormatText, result.SourceFormat)
	paragraphs := result.Document.Paragraphs()
	require.Len(t, paragraphs, 3)
	assert.Equal(t, "7.9 系统架构", paragraphs[0].Text())
	assert.True(t, paragraphs[1].IsBlank())
}

func TestConvertDocx(t *testing.T) {
	dir := t.TempDir()
	data := testutils.BuildDocx(t, testutils.Para("正文"))
	path := writeFile(t, dir, "报告.docx", data)

	result, err := newTestConverter().Convert(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, result.FromPlainText)
	assert.Equal(t, FormatDocx, result.SourceFormat)
	assert.Equal(t, "正文", result.Document.Paragraphs()[0].Text())

	t.Run("doc extension with docx content", func(t *testing.T) {
		path := writeFile(t, dir, "改名.doc", data)
		result, err := newTestConverter().Convert(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, FormatDoc, result.SourceFormat)
	})

	t.Run("source is untouched", func(t *testing.T) {
		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, data, after)
	})
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	c := newTestConverter()

	_, err := c.Convert(context.Background(), writeFile(t, dir, "a.pdf", []byte("%PDF")))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = c.Convert(context.Background(), writeFile(t, dir, "b.doc", []byte("plain text")))
	assert.ErrorIs(t, err, errUnrecognizedBytes)

	ole := append(append([]byte{}, oleMagic...), make([]byte, 512)...)
	_, err = c.Convert(context.Background(), writeFile(t, dir, "c.wps", ole))
	assert.ErrorIs(t, err, ErrConverterUnavailable)

	_, err = c.Convert(context.Background(), writeFile(t, dir, "d.docx", ole))
	assert.ErrorIs(t, err, ErrConverterUnavailable)

	_, err = c.Convert(context.Background(), filepath.Join(dir, "missing.docx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOfficeToolUnavailable(t *testing.T) {
	tool := NewOfficeTool("reportfmt-missing-soffice", nil)
	assert.False(t, tool.Available())

	_, err := tool.Version()
	assert.ErrorIs(t, err, ErrConverterUnavailable)
	assert.Contains(t, err.Error(), "LibreOffice")
}

func TestSniff(t *testing.T) {
	assert.True(t, isZip(testutils.BuildDocx(t, "")))
	assert.False(t, isZip([]byte("PK")))
	assert.True(t, isOLE(oleMagic))
	assert.False(t, hasWordStream(oleMagic))
}
