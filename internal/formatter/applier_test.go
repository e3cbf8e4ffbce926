package formatter

import (
	"testing"

	"github.com/nerdneilsfield/go-report-formatter/internal/config"
	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"github.com/nerdneilsfield/go-report-formatter/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatBody(t *testing.T, cfg *config.Config, body string, opts ...testutils.DocxOption) (*docx.Document, *Report) {
	t.Helper()
	doc := readDoc(t, body, opts...)
	report := NewEngine(cfg, nil).Format(doc, false)
	return doc, report
}

func TestNumberedHeadingFormatting(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	doc, report := formatBody(t, cfg, testutils.ParaXML(
		`<w:keepNext/><w:ind w:left="420" w:leftChars="200" w:firstLineChars="200"/><w:spacing w:before="0" w:after="0"/>`,
		testutils.Run(" 7.9.4 数据处理流程", `<w:b/><w:sz w:val="28"/>`)))

	require.Equal(t, RoleHeading, report.Blocks[0].Role)
	assert.Equal(t, 3, report.Blocks[0].Level)

	p := doc.Paragraphs()[0]
	run := p.Runs()[0]
	name, _ := run.FontName()
	assert.Equal(t, "宋体", name)
	size, _ := run.FontSize()
	assert.Equal(t, 12.0, size)
	bold, ok := run.Bold()
	require.True(t, ok)
	assert.False(t, bold)
	color, _ := run.Color()
	assert.Equal(t, "000000", color)

	assertIndentCleared(t, p)
	before, _ := p.SpacingBefore()
	after, _ := p.SpacingAfter()
	assert.Equal(t, 24.0, before)
	assert.Equal(t, 24.0, after)
	line, rule, _ := p.LineSpacing()
	assert.Equal(t, cfg.LineSpacing, line)
	assert.Equal(t, "exact", rule)

	level, ok := p.OutlineLevel()
	require.True(t, ok)
	assert.Equal(t, 2, level)

	keepNext, _ := p.PaginationFlag("keepNext")
	assert.False(t, keepNext)
	assert.Equal(t, "7.9.4 数据处理流程", p.Text())
}

func TestHeadingWithoutOutlineTagging(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	cfg.SetOutline = false
	doc, _ := formatBody(t, cfg, testutils.Para("7.9 系统架构"))

	_, ok := doc.Paragraphs()[0].OutlineLevel()
	assert.False(t, ok)
}

func TestDeepHeadingUsesBodyFont(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	doc, report := formatBody(t, cfg, testutils.Para("1.2.3.4 运行环境"))

	require.Equal(t, 4, report.Blocks[0].Level)
	p := doc.Paragraphs()[0]
	run := p.Runs()[0]
	name, _ := run.FontName()
	latin, _ := run.LatinFontName()
	size, _ := run.FontSize()
	assert.Equal(t, cfg.BodyFont, name)
	assert.Equal(t, "Times New Roman", latin)
	assert.Equal(t, cfg.BodySize, size)

	before, _ := p.SpacingBefore()
	assert.Zero(t, before)
	level, _ := p.OutlineLevel()
	assert.Equal(t, 3, level)
	assertIndentCleared(t, p)
}

func TestTableCaptionFormatting(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	doc, report := formatBody(t, cfg,
		testutils.ParaXML(`<w:jc w:val="left"/><w:ind w:firstLineChars="200"/>`, testutils.Run("表3-1 年度预算", ""))+
			testutils.TextTable([]string{"项目", "金额"}))

	require.Equal(t, RoleTableCaption, report.Blocks[0].Role)
	p := doc.Paragraphs()[0]
	assert.Equal(t, docx.AlignCenter, p.Alignment())
	assertIndentCleared(t, p)

	names, sizes := runFonts(t, p)
	assert.Equal(t, []string{cfg.TableCaptionFont}, names)
	assert.Equal(t, []float64{cfg.TableCaptionSize}, sizes)
	bold, _ := p.Runs()[0].Bold()
	assert.Equal(t, cfg.TableCaptionBold, bold)

	level, ok := p.OutlineLevel()
	require.True(t, ok)
	assert.Equal(t, int(cfg.TableCaptionOutlineLevel)-1, level)
}

func TestCaptionOutlineNone(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	cfg.FigureCaptionOutlineLevel = config.OutlineNone
	body := `<w:p><w:r><w:drawing/></w:r></w:p>` + testutils.Para("图1 系统架构")
	doc, report := formatBody(t, cfg, body)

	require.Equal(t, RoleFigureCaption, report.Blocks[1].Role)
	_, ok := doc.Paragraphs()[1].OutlineLevel()
	assert.False(t, ok)
	assert.Equal(t, docx.AlignCenter, doc.Paragraphs()[1].Alignment())
}

func TestBodyFormatting(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	doc, report := formatBody(t, cfg, testutils.ParaXML(
		`<w:jc w:val="center"/><w:ind w:left="100" w:hanging="420"/><w:spacing w:before="240" w:after="120"/>`,
		testutils.Run("本项目预计投资100万元。", `<w:b/><w:color w:val="FF0000"/>`)))

	require.Equal(t, RoleBody, report.Blocks[0].Role)
	p := doc.Paragraphs()[0]
	assert.Equal(t, docx.AlignJustify, p.Alignment())

	chars, ok := p.Indent("firstLineChars")
	require.True(t, ok)
	assert.Equal(t, 200, chars)
	_, ok = p.Indent("hanging")
	assert.False(t, ok)

	before, _ := p.SpacingBefore()
	after, _ := p.SpacingAfter()
	assert.Zero(t, before)
	assert.Zero(t, after)

	run := p.Runs()[0]
	name, _ := run.FontName()
	latin, _ := run.LatinFontName()
	size, _ := run.FontSize()
	bold, _ := run.Bold()
	color, _ := run.Color()
	assert.Equal(t, cfg.BodyFont, name)
	assert.Equal(t, "Times New Roman", latin)
	assert.Equal(t, cfg.BodySize, size)
	assert.False(t, bold)
	assert.Equal(t, "000000", color)
}

func TestBodyWithoutLatinOverride(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	cfg.BodyUseTimesRoman = false
	doc, _ := formatBody(t, cfg, testutils.Para("2024年工作总结"))

	latin, _ := doc.Paragraphs()[0].Runs()[0].LatinFontName()
	assert.Equal(t, cfg.BodyFont, latin)
}

func TestLegacyHeadingFormattedAsBody(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	doc, report := formatBody(t, cfg, testutils.Para("一、项目背景"))

	require.Equal(t, RoleBody, report.Blocks[0].Role)
	p := doc.Paragraphs()[0]
	names, sizes := runFonts(t, p)
	assert.Equal(t, []string{cfg.BodyFont}, names)
	assert.Equal(t, []float64{cfg.BodySize}, sizes)
	chars, _ := p.Indent("firstLineChars")
	assert.Equal(t, 200, chars)
	_, ok := p.OutlineLevel()
	assert.False(t, ok)
}

func TestPictureTextFormatting(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	body := `<w:p><w:pPr><w:ind w:firstLineChars="200"/></w:pPr><w:r><w:drawing/></w:r>` + testutils.Run("一、示意图", "") + `</w:p>` +
		`<w:p><w:pPr><w:ind w:firstLineChars="200"/></w:pPr><w:r><w:drawing/></w:r>` + testutils.Run("示意图说明", "") + `</w:p>`
	doc, report := formatBody(t, cfg, body)

	require.Equal(t, RolePictureText, report.Blocks[0].Role)
	require.Equal(t, RolePictureText, report.Blocks[1].Role)

	legacy := doc.Paragraphs()[0]
	names, sizes := runFonts(t, legacy)
	assert.Equal(t, cfg.H1Font, names[1])
	assert.Equal(t, cfg.H1Size, sizes[1])
	assertIndentCleared(t, legacy)
	assert.True(t, legacy.HasDrawing())

	plain := doc.Paragraphs()[1]
	names, _ = runFonts(t, plain)
	assert.Equal(t, cfg.BodyFont, names[1])
	chars, _ := plain.Indent("firstLineChars")
	assert.Equal(t, 200, chars)
}

func TestTableContentFormatting(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	table := testutils.Table(
		testutils.Row(
			testutils.Cell(testutils.Para("表2 设备清单")),
			testutils.Cell(testutils.Para("")),
		),
		testutils.Row(
			testutils.Cell(testutils.ParaXML(`<w:outlineLvl w:val="1"/>`, testutils.Run("服务器", `<w:b/><w:sz w:val="21"/>`))),
			testutils.Cell(testutils.ParaXML(`<w:jc w:val="right"/>`, testutils.Run("12", ""))),
		),
	)
	doc, report := formatBody(t, cfg, table)

	require.Equal(t, RoleTableContent, report.Blocks[0].Role)
	assert.Equal(t, 1, report.Stats.Count(RoleTableCaption))

	cells := doc.Tables()[0].Paragraphs()
	require.Len(t, cells, 4)

	caption := cells[0]
	assert.Equal(t, docx.AlignCenter, caption.Alignment())
	names, _ := runFonts(t, caption)
	assert.Equal(t, []string{cfg.TableCaptionFont}, names)
	level, ok := caption.OutlineLevel()
	require.True(t, ok)
	assert.Equal(t, int(cfg.TableCaptionOutlineLevel)-1, level)

	server := cells[2]
	run := server.Runs()[0]
	name, _ := run.FontName()
	size, _ := run.FontSize()
	bold, _ := run.Bold()
	latin, _ := run.LatinFontName()
	assert.Equal(t, cfg.BodyFont, name)
	assert.Equal(t, 10.5, size)
	assert.True(t, bold)
	assert.Equal(t, "Times New Roman", latin)
	_, ok = server.OutlineLevel()
	assert.False(t, ok)

	amount := cells[3]
	size, _ = amount.Runs()[0].FontSize()
	assert.Equal(t, cfg.BodySize, size)
	assert.Equal(t, docx.AlignRight, amount.Alignment())
}

func TestPlainTextKeepsColor(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	doc := docx.NewFromParagraphs([]string{"7.9 系统架构", "正文内容"})
	NewEngine(cfg, nil).Format(doc, true)

	for _, p := range doc.Paragraphs() {
		_, ok := p.Runs()[0].Color()
		assert.False(t, ok, p.Text())
	}
}

func TestInvalidCaptionOutlineIsRejected(t *testing.T) {
	cfg := testutils.CreateTestConfig()
	cfg.TableCaptionOutlineLevel = 12
	log, logs := observedLogger()

	doc := readDoc(t, testutils.Para("表1 题注"))
	NewEngine(cfg, log).Format(doc, false)

	assert.Equal(t, 0, logs.FilterMessage("无效的大纲级别").Len(), "out of range levels are treated as unset")
	_, ok := doc.Paragraphs()[0].OutlineLevel()
	assert.False(t, ok)
}
