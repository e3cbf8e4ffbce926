package docx

import "github.com/beevik/etree"

// A4 纸张尺寸（厘米）
const (
	A4WidthCm  = 21.0
	A4HeightCm = 29.7
)

// 新建页边距时使用的页眉页脚距离（缇）
const (
	defaultHeaderTwips = 851
	defaultFooterTwips = 992
)

// Margins 页边距（厘米）
type Margins struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Section 节
type Section struct {
	el *etree.Element
}

// Sections 返回文档中所有节，包括段落中的分节符和正文末尾的节
func (d *Document) Sections() []*Section {
	var sections []*Section
	for _, el := range d.body.FindElements("./w:p/w:pPr/w:sectPr") {
		sections = append(sections, &Section{el: el})
	}
	if el := d.body.SelectElement("w:sectPr"); el != nil {
		sections = append(sections, &Section{el: el})
	}
	return sections
}

// EnsureSection 保证正文末尾存在节属性
func (d *Document) EnsureSection() *Section {
	if el := d.body.SelectElement("w:sectPr"); el != nil {
		return &Section{el: el}
	}
	return &Section{el: d.body.CreateElement("w:sectPr")}
}

// Margins 返回页边距，未设置的边为 0
func (s *Section) Margins() Margins {
	pgMar := s.el.SelectElement("w:pgMar")
	get := func(key string) float64 {
		twips, _ := attrInt(pgMar, key)
		return twipsToCm(twips)
	}
	return Margins{Top: get("top"), Bottom: get("bottom"), Left: get("left"), Right: get("right")}
}

// SetMargins 设置页边距
func (s *Section) SetMargins(m Margins) {
	pgMar := ensureChild(s.el, "pgMar", sectPrOrder)
	setAttrInt(pgMar, "top", cmToTwips(m.Top))
	setAttrInt(pgMar, "bottom", cmToTwips(m.Bottom))
	setAttrInt(pgMar, "left", cmToTwips(m.Left))
	setAttrInt(pgMar, "right", cmToTwips(m.Right))
	if pgMar.SelectAttr("w:header") == nil {
		setAttrInt(pgMar, "header", defaultHeaderTwips)
	}
	if pgMar.SelectAttr("w:footer") == nil {
		setAttrInt(pgMar, "footer", defaultFooterTwips)
	}
	if pgMar.SelectAttr("w:gutter") == nil {
		setAttrInt(pgMar, "gutter", 0)
	}
}

// PageSize 返回纸张宽高（厘米）
func (s *Section) PageSize() (width, height float64, ok bool) {
	pgSz := s.el.SelectElement("w:pgSz")
	w, okW := attrInt(pgSz, "w")
	h, okH := attrInt(pgSz, "h")
	if !okW || !okH {
		return 0, 0, false
	}
	return twipsToCm(w), twipsToCm(h), true
}

// SetPageSize 设置纸张宽高（厘米），纵向
func (s *Section) SetPageSize(width, height float64) {
	pgSz := ensureChild(s.el, "pgSz", sectPrOrder)
	setAttrInt(pgSz, "w", cmToTwips(width))
	setAttrInt(pgSz, "h", cmToTwips(height))
	pgSz.RemoveAttr("w:orient")
}
