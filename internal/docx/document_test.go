package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nerdneilsfield/go-report-formatter/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDoc(t *testing.T, body string, opts ...testutils.DocxOption) *Document {
	t.Helper()
	doc, err := Read(testutils.BuildDocx(t, body, opts...))
	require.NoError(t, err)
	return doc
}

func zipEntry(t *testing.T, data []byte, name string) []byte {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range reader.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return content
		}
	}
	t.Fatalf("entry %s not found", name)
	return nil
}

func TestReadErrors(t *testing.T) {
	t.Run("not a zip", func(t *testing.T) {
		_, err := Read([]byte("plain text"))
		assert.ErrorIs(t, err, ErrNotDocx)
	})

	t.Run("missing main part", func(t *testing.T) {
		var buf bytes.Buffer
		w := zip.NewWriter(&buf)
		f, err := w.Create("docProps/app.xml")
		require.NoError(t, err)
		_, err = f.Write([]byte("<Properties/>"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		_, err = Read(buf.Bytes())
		assert.ErrorIs(t, err, ErrMissingMainPart)
	})
}

func TestBlocks(t *testing.T) {
	doc := readDoc(t,
		testutils.Para("一、项目背景")+
			testutils.TextTable([]string{"表1 数据", "说明"}, []string{"1", "2"})+
			`<w:bookmarkStart w:id="0" w:name="x"/>`+
			testutils.Para("")+
			testutils.SectPr(11906, 16838))

	blocks := doc.Blocks()
	require.Len(t, blocks, 3)
	assert.IsType(t, &Paragraph{}, blocks[0])
	assert.IsType(t, &Table{}, blocks[1])
	assert.IsType(t, &Paragraph{}, blocks[2])

	assert.Len(t, doc.Paragraphs(), 2)
	require.Len(t, doc.Tables(), 1)

	table := doc.Tables()[0]
	rows := table.Rows()
	require.Len(t, rows, 2)
	require.Len(t, rows[0].Cells(), 2)
	assert.Equal(t, "表1 数据", rows[0].Cells()[0].Text())
	assert.Len(t, table.Paragraphs(), 4)
}

func TestBytesPreservesUntouchedParts(t *testing.T) {
	settings := `<w:settings xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:zoom w:percent="120"/></w:settings>`
	doc := readDoc(t, testutils.Para("正文"), testutils.WithPart("word/settings.xml", settings))

	_, err := doc.Paragraphs()[0].SetOutlineLevel(2)
	require.NoError(t, err)

	data, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, settings, string(zipEntry(t, data, "word/settings.xml")))

	reloaded, err := Read(data)
	require.NoError(t, err)
	level, ok := reloaded.Paragraphs()[0].OutlineLevel()
	require.True(t, ok)
	assert.Equal(t, 1, level)
}

func TestSave(t *testing.T) {
	doc := readDoc(t, testutils.Para("正文"))
	dir := t.TempDir()
	target := filepath.Join(dir, "out.docx")

	require.NoError(t, doc.Save(target))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.docx", entries[0].Name())

	reopened, err := Open(target)
	require.NoError(t, err)
	assert.Equal(t, "正文", reopened.Paragraphs()[0].Text())

	assert.Error(t, doc.Save(filepath.Join(dir, "missing", "out.docx")))
}

func TestStyles(t *testing.T) {
	doc := readDoc(t,
		testutils.ParaXML(`<w:pStyle w:val="1"/>`, testutils.Run("概述", ""))+
			testutils.ParaXML(`<w:pStyle w:val="30"/>`, testutils.Run("细节", ""))+
			testutils.ParaXML(`<w:pStyle w:val="Heading2"/>`, testutils.Run("无样式表", "")),
		testutils.WithStyles(testutils.HeadingStyles))

	paragraphs := doc.Paragraphs()
	assert.Equal(t, "1", paragraphs[0].StyleID())
	assert.Equal(t, "heading 1", paragraphs[0].StyleName())
	assert.Equal(t, "标题 3", paragraphs[1].StyleName())
	assert.Equal(t, "Heading2", paragraphs[2].StyleName())

	name, ok := doc.styles.Name("2")
	require.True(t, ok)
	assert.Equal(t, "heading 2", name)
	_, ok = doc.styles.Name("missing")
	assert.False(t, ok)
}

func TestSections(t *testing.T) {
	t.Run("existing section", func(t *testing.T) {
		doc := readDoc(t,
			testutils.ParaXML(`<w:sectPr><w:pgSz w:w="16838" w:h="11906" w:orient="landscape"/></w:sectPr>`, testutils.Run("第一节", ""))+
				testutils.Para("第二节")+
				testutils.SectPr(11906, 16838))

		sections := doc.Sections()
		require.Len(t, sections, 2)

		sections[0].SetMargins(Margins{Top: 3.7, Bottom: 3.5, Left: 2.8, Right: 2.6})
		m := sections[0].Margins()
		assert.InDelta(t, 3.7, m.Top, 0.001)
		assert.InDelta(t, 3.5, m.Bottom, 0.001)
		assert.InDelta(t, 2.8, m.Left, 0.001)
		assert.InDelta(t, 2.6, m.Right, 0.001)

		sections[0].SetPageSize(A4WidthCm, A4HeightCm)
		w, h, ok := sections[0].PageSize()
		require.True(t, ok)
		assert.InDelta(t, 21.0, w, 0.001)
		assert.InDelta(t, 29.7, h, 0.001)
		assert.Nil(t, sections[0].el.SelectElement("w:pgSz").SelectAttr("w:orient"))
		assert.Equal(t, "11906", sections[0].el.SelectElement("w:pgSz").SelectAttrValue("w:w", ""))
	})

	t.Run("missing section is created", func(t *testing.T) {
		doc := readDoc(t, testutils.Para("正文"))
		assert.Empty(t, doc.Sections())

		section := doc.EnsureSection()
		section.SetMargins(Margins{Top: 1, Bottom: 1, Left: 1, Right: 1})
		require.Len(t, doc.Sections(), 1)
		assert.Equal(t, "851", section.el.SelectElement("w:pgMar").SelectAttrValue("w:header", ""))

		_, _, ok := section.PageSize()
		assert.False(t, ok)
	})
}

func TestNewFromParagraphs(t *testing.T) {
	doc := NewFromParagraphs([]string{"一、总体情况", "", "正文 & 数据 <1>"})

	paragraphs := doc.Paragraphs()
	require.Len(t, paragraphs, 3)
	assert.Equal(t, "一、总体情况", paragraphs[0].Text())
	assert.True(t, paragraphs[1].IsBlank())

	data, err := doc.Bytes()
	require.NoError(t, err)

	reloaded, err := Read(data)
	require.NoError(t, err)
	require.Len(t, reloaded.Paragraphs(), 3)
	assert.Equal(t, "正文 & 数据 <1>", reloaded.Paragraphs()[2].Text())

	sections := reloaded.Sections()
	require.Len(t, sections, 1)
	w, h, ok := sections[0].PageSize()
	require.True(t, ok)
	assert.InDelta(t, A4WidthCm, w, 0.001)
	assert.InDelta(t, A4HeightCm, h, 0.001)
	name, ok := reloaded.styles.Name("Normal")
	require.True(t, ok)
	assert.Equal(t, "Normal", name)
}
