package docx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// ErrInvalidOutlineLevel 大纲级别超出 1-9
var ErrInvalidOutlineLevel = errors.New("outline level must be within 1-9")

// Block 正文中的块：*Paragraph 或 *Table
type Block interface {
	block()
}

// Alignment 段落对齐方式
type Alignment string

const (
	AlignNone    Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// IndentAttrs w:ind 上所有表示缩进的属性，字符单位和长度单位都在内
var IndentAttrs = []string{
	"firstLine", "firstLineChars",
	"left", "leftChars",
	"start", "startChars",
	"right", "rightChars",
	"end", "endChars",
	"hanging", "hangingChars",
}

// paginationFlags 分页控制相关的 w:pPr 子元素
var paginationFlags = []string{"keepNext", "keepLines", "pageBreakBefore", "widowControl"}

// runContainers 段落中可以包含 w:r 的行内容器
var runContainers = map[string]bool{
	"hyperlink":  true,
	"ins":        true,
	"smartTag":   true,
	"fldSimple":  true,
	"customXml":  true,
	"moveTo":     true,
	"sdtContent": true,
	"sdt":        true,
}

// Paragraph 段落
type Paragraph struct {
	el  *etree.Element
	doc *Document
}

func (*Paragraph) block() {}

// Same 两个包装对象是否指向同一个段落
func (p *Paragraph) Same(other *Paragraph) bool {
	return other != nil && p.el == other.el
}

func (p *Paragraph) pPr() *etree.Element {
	return p.el.SelectElement("w:pPr")
}

func (p *Paragraph) ensurePPr() *etree.Element {
	return ensureFirstChild(p.el, "pPr")
}

func (p *Paragraph) prop(tag string) *etree.Element {
	pPr := p.pPr()
	if pPr == nil {
		return nil
	}
	return pPr.SelectElement("w:" + tag)
}

func (p *Paragraph) ensureProp(tag string) *etree.Element {
	return ensureChild(p.ensurePPr(), tag, pPrOrder)
}

// Runs 按文档顺序返回段落中的文本块
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	collectRuns(p.el, &runs)
	return runs
}

func collectRuns(parent *etree.Element, runs *[]*Run) {
	for _, child := range parent.ChildElements() {
		switch {
		case isW(child, "r"):
			*runs = append(*runs, &Run{el: child})
		case child.Space == "w" && runContainers[child.Tag]:
			collectRuns(child, runs)
		}
	}
}

// Text 返回段落文本，制表符为 \t，换行为 \n
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// IsBlank 去除空白后是否为空
func (p *Paragraph) IsBlank() bool {
	return strings.TrimSpace(p.Text()) == ""
}

// StyleID 段落样式 ID
func (p *Paragraph) StyleID() string {
	if el := p.prop("pStyle"); el != nil {
		return el.SelectAttrValue("w:val", "")
	}
	return ""
}

// StyleName 段落样式名称，样式表中找不到时返回样式 ID
func (p *Paragraph) StyleName() string {
	id := p.StyleID()
	if id == "" {
		return ""
	}
	if p.doc != nil && p.doc.styles != nil {
		if name, ok := p.doc.styles.Name(id); ok {
			return name
		}
	}
	return id
}

// Alignment 返回显式设置的对齐方式
func (p *Paragraph) Alignment() Alignment {
	el := p.prop("jc")
	if el == nil {
		return AlignNone
	}
	switch v := el.SelectAttrValue("w:val", ""); v {
	case "start":
		return AlignLeft
	case "end":
		return AlignRight
	default:
		return Alignment(v)
	}
}

// SetAlignment 设置对齐方式
func (p *Paragraph) SetAlignment(a Alignment) {
	if a == AlignNone {
		if pPr := p.pPr(); pPr != nil {
			if el := pPr.SelectElement("w:jc"); el != nil {
				pPr.RemoveChild(el)
			}
		}
		return
	}
	p.ensureProp("jc").CreateAttr("w:val", string(a))
}

// Indent 返回 w:ind 上某个缩进属性的值
func (p *Paragraph) Indent(attr string) (int, bool) {
	return attrInt(p.prop("ind"), attr)
}

// ClearIndentation 将所有单位下的缩进显式置零，而不是删除元素
func (p *Paragraph) ClearIndentation() {
	ind := p.ensureProp("ind")
	for _, attr := range IndentAttrs {
		setAttrInt(ind, attr, 0)
	}
}

// SetFirstLineChars 设置首行缩进字符数（单位为 1/100 字符）
func (p *Paragraph) SetFirstLineChars(hundredths int) {
	ind := p.ensureProp("ind")
	for _, attr := range []string{"firstLine", "hanging", "hangingChars"} {
		ind.RemoveAttr("w:" + attr)
	}
	setAttrInt(ind, "firstLineChars", hundredths)
}

// SpacingBefore 段前间距（磅）
func (p *Paragraph) SpacingBefore() (float64, bool) {
	twips, ok := attrInt(p.prop("spacing"), "before")
	return twipsToPoints(twips), ok
}

// SpacingAfter 段后间距（磅）
func (p *Paragraph) SpacingAfter() (float64, bool) {
	twips, ok := attrInt(p.prop("spacing"), "after")
	return twipsToPoints(twips), ok
}

// LineSpacing 行距（磅）和行距规则
func (p *Paragraph) LineSpacing() (float64, string, bool) {
	el := p.prop("spacing")
	twips, ok := attrInt(el, "line")
	if !ok {
		return 0, "", false
	}
	return twipsToPoints(twips), el.SelectAttrValue("w:lineRule", "auto"), true
}

// SetSpacing 设置段前段后间距（磅），同时关闭自动间距和按行计算的间距
func (p *Paragraph) SetSpacing(before, after float64) {
	spacing := p.ensureProp("spacing")
	spacing.RemoveAttr("w:beforeLines")
	spacing.RemoveAttr("w:afterLines")
	setAttrInt(spacing, "before", pointsToTwips(before))
	setAttrInt(spacing, "after", pointsToTwips(after))
	spacing.CreateAttr("w:beforeAutospacing", "0")
	spacing.CreateAttr("w:afterAutospacing", "0")
}

// SetLineSpacingExact 设置固定行距（磅）
func (p *Paragraph) SetLineSpacingExact(pt float64) {
	spacing := p.ensureProp("spacing")
	setAttrInt(spacing, "line", pointsToTwips(pt))
	spacing.CreateAttr("w:lineRule", "exact")
}

// RawOutlineLevel 返回 w:outlineLvl 的原始值
func (p *Paragraph) RawOutlineLevel() (string, bool) {
	el := p.prop("outlineLvl")
	if el == nil {
		return "", false
	}
	attr := el.SelectAttr("w:val")
	if attr == nil {
		return "", false
	}
	return attr.Value, true
}

// OutlineLevel 返回 0-8 的内部大纲级别；9 表示正文文本，视为未设置
func (p *Paragraph) OutlineLevel() (int, bool) {
	level, ok := attrInt(p.prop("outlineLvl"), "val")
	if !ok || level < 0 || level > 8 {
		return 0, false
	}
	return level, true
}

// SetOutlineLevel 设置 1-9 级大纲，返回原来的级别（1-9，0 表示未设置）
func (p *Paragraph) SetOutlineLevel(level int) (int, error) {
	if level < 1 || level > 9 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOutlineLevel, level)
	}
	previous := 0
	if old, ok := p.OutlineLevel(); ok {
		previous = old + 1
	}
	setAttrInt(p.ensureProp("outlineLvl"), "val", level-1)
	return previous, nil
}

// ClearOutlineLevel 移除大纲级别，返回是否存在过
func (p *Paragraph) ClearOutlineLevel() bool {
	el := p.prop("outlineLvl")
	if el == nil {
		return false
	}
	p.pPr().RemoveChild(el)
	return true
}

// HasDrawing 是否包含图片或绘图对象
func (p *Paragraph) HasDrawing() bool {
	return p.el.FindElement(".//w:drawing") != nil || p.el.FindElement(".//w:pict") != nil
}

// HasEmbeddedObject 是否包含嵌入对象（OLE）
func (p *Paragraph) HasEmbeddedObject() bool {
	return p.el.FindElement(".//w:object") != nil
}

// ResetPagination 关闭孤行控制、与下段同页、段中不分页和段前分页
func (p *Paragraph) ResetPagination() {
	for _, tag := range paginationFlags {
		p.ensureProp(tag).CreateAttr("w:val", "0")
	}
}

// PaginationFlag 返回分页控制项的取值
func (p *Paragraph) PaginationFlag(tag string) (bool, bool) {
	el := p.prop(tag)
	if el == nil {
		return false, false
	}
	return onOff(el), true
}

// StripLeadingWhitespace 删除开头只含空白的文本块，并去掉第一个文本块的前导空白
func (p *Paragraph) StripLeadingWhitespace() {
	for _, r := range p.Runs() {
		if r.hasNonText() {
			return
		}
		if strings.TrimSpace(r.Text()) == "" {
			if parent := r.el.Parent(); parent != nil {
				parent.RemoveChild(r.el)
			}
			continue
		}
		r.trimLeft()
		return
	}
}
