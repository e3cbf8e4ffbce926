// Package docx 提供对 WordprocessingML 文档的读写，未修改的部件和元素原样保留。
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

var (
	// ErrNotDocx 文件不是 docx 压缩包
	ErrNotDocx = errors.New("not a docx package")
	// ErrMissingMainPart 缺少主文档部件
	ErrMissingMainPart = errors.New("main document part not found")
	// ErrMissingBody 主文档缺少 w:body
	ErrMissingBody = errors.New("document body not found")
)

const (
	defaultMainPart   = "word/document.xml"
	relTypeOfficeDoc  = "/officeDocument"
	relTypeStyles     = "/styles"
	packageRelsPart   = "_rels/.rels"
	contentTypesPart  = "[Content_Types].xml"
	defaultStylesPart = "word/styles.xml"
	relationshipTag   = "Relationship"
)

// part 压缩包中的一个条目
type part struct {
	header zip.FileHeader
	data   []byte
}

// Document 一个已加载到内存中的 docx 文档
type Document struct {
	parts    []*part
	mainPart string
	xml      *etree.Document
	body     *etree.Element
	styles   *Styles
}

// Open 从文件加载文档，源文件不会被修改
func Open(filePath string) (*Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Read 从内存中的 docx 数据加载文档
func Read(data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDocx, err)
	}

	d := &Document{}
	for _, file := range reader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}
		d.parts = append(d.parts, &part{
			header: zip.FileHeader{
				Name:     file.Name,
				Method:   file.Method,
				Modified: file.Modified,
			},
			data: content,
		})
	}

	d.mainPart = d.resolveMainPart()
	mainData, ok := d.partData(d.mainPart)
	if !ok {
		return nil, ErrMissingMainPart
	}

	d.xml = etree.NewDocument()
	if err := d.xml.ReadFromBytes(mainData); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", d.mainPart, err)
	}
	root := d.xml.Root()
	if root == nil {
		return nil, ErrMissingBody
	}
	d.body = root.SelectElement("w:body")
	if d.body == nil {
		return nil, ErrMissingBody
	}

	d.styles = parseStyles(d.partDataOrNil(d.resolveStylesPart()))
	return d, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (d *Document) partData(name string) ([]byte, bool) {
	for _, p := range d.parts {
		if p.header.Name == name {
			return p.data, true
		}
	}
	return nil, false
}

func (d *Document) partDataOrNil(name string) []byte {
	data, _ := d.partData(name)
	return data
}

// resolveMainPart 通过包关系找到主文档部件
func (d *Document) resolveMainPart() string {
	if target := d.relationshipTarget(packageRelsPart, relTypeOfficeDoc); target != "" {
		return strings.TrimPrefix(target, "/")
	}
	return defaultMainPart
}

// resolveStylesPart 通过主文档关系找到样式部件
func (d *Document) resolveStylesPart() string {
	dir := path.Dir(d.mainPart)
	relsPart := path.Join(dir, "_rels", path.Base(d.mainPart)+".rels")
	target := d.relationshipTarget(relsPart, relTypeStyles)
	if target == "" {
		return defaultStylesPart
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(dir, target)
}

func (d *Document) relationshipTarget(relsPart, typeSuffix string) string {
	data, ok := d.partData(relsPart)
	if !ok {
		return ""
	}
	rels := etree.NewDocument()
	if err := rels.ReadFromBytes(data); err != nil || rels.Root() == nil {
		return ""
	}
	for _, rel := range rels.Root().SelectElements(relationshipTag) {
		if strings.HasSuffix(rel.SelectAttrValue("Type", ""), typeSuffix) {
			return rel.SelectAttrValue("Target", "")
		}
	}
	return ""
}

// Blocks 返回正文中按顺序排列的段落和表格
func (d *Document) Blocks() []Block {
	var blocks []Block
	for _, el := range d.body.ChildElements() {
		switch {
		case isW(el, "p"):
			blocks = append(blocks, &Paragraph{el: el, doc: d})
		case isW(el, "tbl"):
			blocks = append(blocks, &Table{el: el, doc: d})
		}
	}
	return blocks
}

// Paragraphs 返回正文中的顶层段落
func (d *Document) Paragraphs() []*Paragraph {
	var paragraphs []*Paragraph
	for _, block := range d.Blocks() {
		if p, ok := block.(*Paragraph); ok {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// Tables 返回正文中的顶层表格
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, block := range d.Blocks() {
		if t, ok := block.(*Table); ok {
			tables = append(tables, t)
		}
	}
	return tables
}

// Bytes 序列化为 docx 数据，未修改的部件按原顺序原样写回
func (d *Document) Bytes() ([]byte, error) {
	mainData, err := d.xml.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", d.mainPart, err)
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, p := range d.parts {
		header := p.header
		dst, err := writer.CreateHeader(&header)
		if err != nil {
			return nil, err
		}
		data := p.data
		if p.header.Name == d.mainPart {
			data = mainData
		}
		if _, err := dst.Write(data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save 原子地保存到目标路径：先写入同目录临时文件，再重命名
func (d *Document) Save(filePath string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	tmp := filepath.Join(dir, "."+filepath.Base(filePath)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}
