package testutils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" xmlns:v="urn:schemas-microsoft-com:vml" xmlns:o="urn:schemas-microsoft-com:office:office"><w:body>`

const documentFooter = `</w:body></w:document>`

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const packageRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// HeadingStyles 带有中英文标题样式的 styles.xml，样式 ID 与 Word 中文版一致
const HeadingStyles = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:style w:type="paragraph" w:default="1" w:styleId="a"><w:name w:val="Normal"/></w:style><w:style w:type="paragraph" w:styleId="1"><w:name w:val="heading 1"/><w:basedOn w:val="a"/></w:style><w:style w:type="paragraph" w:styleId="2"><w:name w:val="heading 2"/><w:basedOn w:val="a"/></w:style><w:style w:type="paragraph" w:styleId="30"><w:name w:val="标题 3"/><w:basedOn w:val="a"/></w:style></w:styles>`

type docxOptions struct {
	styles string
	extra  map[string]string
}

// DocxOption 构造测试文档的选项
type DocxOption func(*docxOptions)

// WithStyles 添加 word/styles.xml
func WithStyles(styles string) DocxOption {
	return func(o *docxOptions) {
		o.styles = styles
	}
}

// WithPart 添加额外的包部件
func WithPart(name, data string) DocxOption {
	return func(o *docxOptions) {
		o.extra[name] = data
	}
}

// BuildDocx 用正文 XML 片段构造 docx 数据
func BuildDocx(t testing.TB, body string, opts ...DocxOption) []byte {
	t.Helper()

	o := &docxOptions{extra: make(map[string]string)}
	for _, opt := range opts {
		opt(o)
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	write := func(name, data string) {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(data))
		require.NoError(t, err)
	}

	write("[Content_Types].xml", contentTypes)
	write("_rels/.rels", packageRels)
	write("word/document.xml", documentHeader+body+documentFooter)
	if o.styles != "" {
		write("word/styles.xml", o.styles)
	}
	for name, data := range o.extra {
		write(name, data)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Run 构造一个文本块，rPr 为 w:rPr 的内部 XML
func Run(text, rPr string) string {
	var sb strings.Builder
	sb.WriteString("<w:r>")
	if rPr != "" {
		sb.WriteString("<w:rPr>" + rPr + "</w:rPr>")
	}
	sb.WriteString(`<w:t xml:space="preserve">` + xmlEscaper.Replace(text) + "</w:t></w:r>")
	return sb.String()
}

// Para 构造只含一个文本块的段落
func Para(text string) string {
	if text == "" {
		return "<w:p/>"
	}
	return "<w:p>" + Run(text, "") + "</w:p>"
}

// ParaXML 构造段落，pPr 为 w:pPr 的内部 XML，runs 为文本块 XML
func ParaXML(pPr, runs string) string {
	if pPr == "" {
		return "<w:p>" + runs + "</w:p>"
	}
	return "<w:p><w:pPr>" + pPr + "</w:pPr>" + runs + "</w:p>"
}

// Picture 构造一个内嵌图片段落
func Picture() string {
	return `<w:p><w:r><w:drawing><wp:inline><wp:extent cx="100" cy="100"/></wp:inline></w:drawing></w:r></w:p>`
}

// EmbeddedObject 构造一个含 OLE 对象和文本的段落
func EmbeddedObject(text string) string {
	return `<w:p><w:r><w:object><v:shape id="_x0000_i1025"/></w:object></w:r>` + Run(text, "") + `</w:p>`
}

// Cell 构造单元格，内容为段落 XML
func Cell(paragraphs ...string) string {
	return `<w:tc><w:tcPr><w:tcW w:w="2000" w:type="dxa"/></w:tcPr>` + strings.Join(paragraphs, "") + "</w:tc>"
}

// Row 构造表格行
func Row(cells ...string) string {
	return "<w:tr>" + strings.Join(cells, "") + "</w:tr>"
}

// Table 构造表格
func Table(rows ...string) string {
	return `<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tblGrid><w:gridCol w:w="2000"/></w:tblGrid>` + strings.Join(rows, "") + "</w:tbl>"
}

// TextTable 用文本矩阵构造表格，每个单元格一个段落
func TextTable(rows ...[]string) string {
	var rowXML []string
	for _, row := range rows {
		var cells []string
		for _, text := range row {
			cells = append(cells, Cell(Para(text)))
		}
		rowXML = append(rowXML, Row(cells...))
	}
	return Table(rowXML...)
}

// SectPr 构造正文末尾的节属性
func SectPr(widthTwips, heightTwips int) string {
	return fmt.Sprintf(`<w:sectPr><w:pgSz w:w="%d" w:h="%d"/><w:pgMar w:top="1440" w:right="1800" w:bottom="1440" w:left="1800" w:header="851" w:footer="992" w:gutter="0"/></w:sectPr>`, widthTwips, heightTwips)
}
