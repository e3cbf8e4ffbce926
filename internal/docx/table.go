package docx

import "github.com/beevik/etree"

// Table 表格
type Table struct {
	el  *etree.Element
	doc *Document
}

func (*Table) block() {}

// Row 表格行
type Row struct {
	el  *etree.Element
	doc *Document
}

// Cell 单元格
type Cell struct {
	el  *etree.Element
	doc *Document
}

// Rows 返回表格的所有行
func (t *Table) Rows() []*Row {
	var rows []*Row
	for _, el := range t.el.SelectElements("w:tr") {
		rows = append(rows, &Row{el: el, doc: t.doc})
	}
	return rows
}

// Paragraphs 按行、单元格顺序返回所有单元格中的段落
func (t *Table) Paragraphs() []*Paragraph {
	var paragraphs []*Paragraph
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			paragraphs = append(paragraphs, cell.Paragraphs()...)
		}
	}
	return paragraphs
}

// Cells 返回行中的单元格
func (r *Row) Cells() []*Cell {
	var cells []*Cell
	for _, el := range r.el.SelectElements("w:tc") {
		cells = append(cells, &Cell{el: el, doc: r.doc})
	}
	return cells
}

// Paragraphs 返回单元格中的段落，不含嵌套表格
func (c *Cell) Paragraphs() []*Paragraph {
	var paragraphs []*Paragraph
	for _, el := range c.el.SelectElements("w:p") {
		paragraphs = append(paragraphs, &Paragraph{el: el, doc: c.doc})
	}
	return paragraphs
}

// Text 单元格文本，段落之间以换行分隔
func (c *Cell) Text() string {
	var text string
	for i, p := range c.Paragraphs() {
		if i > 0 {
			text += "\n"
		}
		text += p.Text()
	}
	return text
}
