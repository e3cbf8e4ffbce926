package docx

import (
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// themeFontAttrs 主题字体属性，会覆盖显式指定的字体
var themeFontAttrs = []string{"asciiTheme", "hAnsiTheme", "eastAsiaTheme", "cstheme"}

// textOnlyTags 只承载文本的 w:r 子元素
var textOnlyTags = map[string]bool{
	"rPr":                   true,
	"t":                     true,
	"tab":                   true,
	"br":                    true,
	"cr":                    true,
	"lastRenderedPageBreak": true,
	"softHyphen":            true,
	"noBreakHyphen":         true,
}

// Run 文本块
type Run struct {
	el *etree.Element
}

// RunFont 写入文本块的字体属性
type RunFont struct {
	EastAsia string  // 中文字体
	Latin    string  // 西文字体，为空时与中文字体相同
	Size     float64 // 字号（磅），0 表示不修改
	Bold     *bool   // nil 表示不修改
	Color    string  // 十六进制颜色，为空表示不修改
}

// Bool 返回布尔值指针，便于构造 RunFont
func Bool(v bool) *bool {
	return &v
}

func (r *Run) rPr() *etree.Element {
	return r.el.SelectElement("w:rPr")
}

func (r *Run) prop(tag string) *etree.Element {
	rPr := r.rPr()
	if rPr == nil {
		return nil
	}
	return rPr.SelectElement("w:" + tag)
}

func (r *Run) ensureProp(tag string) *etree.Element {
	return ensureChild(ensureFirstChild(r.el, "rPr"), tag, rPrOrder)
}

// Text 返回文本块的文本
func (r *Run) Text() string {
	var sb strings.Builder
	for _, child := range r.el.ChildElements() {
		if child.Space != "w" {
			continue
		}
		switch child.Tag {
		case "t":
			sb.WriteString(child.Text())
		case "tab":
			sb.WriteByte('\t')
		case "br":
			// 分页符和分栏符不产生新的文本行
			if child.SelectAttrValue("w:type", "textWrapping") == "textWrapping" {
				sb.WriteByte('\n')
			}
		case "cr":
			sb.WriteByte('\n')
		case "noBreakHyphen":
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// FontName 中文字体名称，未设置时返回西文字体名称
func (r *Run) FontName() (string, bool) {
	el := r.prop("rFonts")
	if el == nil {
		return "", false
	}
	for _, key := range []string{"w:eastAsia", "w:ascii", "w:hAnsi"} {
		if v := el.SelectAttrValue(key, ""); v != "" {
			return v, true
		}
	}
	return "", false
}

// LatinFontName 西文字体名称
func (r *Run) LatinFontName() (string, bool) {
	el := r.prop("rFonts")
	if el == nil {
		return "", false
	}
	v := el.SelectAttrValue("w:ascii", "")
	return v, v != ""
}

// FontSize 字号（磅）
func (r *Run) FontSize() (float64, bool) {
	halfPoints, ok := attrInt(r.prop("sz"), "val")
	if !ok || halfPoints <= 0 {
		return 0, false
	}
	return float64(halfPoints) / 2, true
}

// Bold 是否加粗
func (r *Run) Bold() (bool, bool) {
	el := r.prop("b")
	if el == nil {
		return false, false
	}
	return onOff(el), true
}

// Color 字体颜色
func (r *Run) Color() (string, bool) {
	el := r.prop("color")
	if el == nil {
		return "", false
	}
	v := el.SelectAttrValue("w:val", "")
	return v, v != ""
}

// SetFont 设置字体、字号、加粗和颜色
func (r *Run) SetFont(font RunFont) {
	if font.EastAsia != "" {
		latin := font.Latin
		if latin == "" {
			latin = font.EastAsia
		}
		rFonts := r.ensureProp("rFonts")
		for _, attr := range themeFontAttrs {
			rFonts.RemoveAttr("w:" + attr)
		}
		rFonts.CreateAttr("w:ascii", latin)
		rFonts.CreateAttr("w:hAnsi", latin)
		rFonts.CreateAttr("w:eastAsia", font.EastAsia)
	}

	if font.Bold != nil {
		val := "0"
		if *font.Bold {
			val = "1"
		}
		r.ensureProp("b").CreateAttr("w:val", val)
		r.ensureProp("bCs").CreateAttr("w:val", val)
	}

	if font.Color != "" {
		color := r.ensureProp("color")
		for _, attr := range []string{"themeColor", "themeTint", "themeShade"} {
			color.RemoveAttr("w:" + attr)
		}
		color.CreateAttr("w:val", font.Color)
	}

	if font.Size > 0 {
		halfPoints := pointsToHalfPoints(font.Size)
		setAttrInt(r.ensureProp("sz"), "val", halfPoints)
		setAttrInt(r.ensureProp("szCs"), "val", halfPoints)
	}
}

// hasNonText 是否包含图片、域代码等非文本内容
func (r *Run) hasNonText() bool {
	for _, child := range r.el.ChildElements() {
		if child.Space != "w" || !textOnlyTags[child.Tag] {
			return true
		}
		if child.Tag == "br" {
			if kind := child.SelectAttrValue("w:type", "textWrapping"); kind != "textWrapping" {
				return true
			}
		}
	}
	return false
}

// trimLeft 去掉文本块开头的空白
func (r *Run) trimLeft() {
	for _, child := range r.el.ChildElements() {
		if child.Space != "w" {
			return
		}
		switch child.Tag {
		case "tab", "br", "cr":
			r.el.RemoveChild(child)
		case "t":
			text := strings.TrimLeftFunc(child.Text(), unicode.IsSpace)
			if text == "" {
				r.el.RemoveChild(child)
				continue
			}
			child.SetText(text)
			return
		}
	}
}
