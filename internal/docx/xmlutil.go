package docx

import (
	"math"
	"strconv"

	"github.com/beevik/etree"
)

// pPrOrder w:pPr 子元素在 schema 中的顺序
var pPrOrder = []string{
	"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl",
	"numPr", "suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens",
	"kinsoku", "wordWrap", "overflowPunct", "topLinePunct", "autoSpaceDE", "autoSpaceDN",
	"bidi", "adjustRightInd", "snapToGrid", "spacing", "ind", "contextualSpacing",
	"mirrorIndents", "suppressOverlap", "jc", "textDirection", "textAlignment",
	"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr", "pPrChange",
}

// rPrOrder w:rPr 子元素在 schema 中的顺序
var rPrOrder = []string{
	"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
	"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish",
	"webHidden", "color", "spacing", "w", "kern", "position", "sz", "szCs", "highlight",
	"u", "effect", "bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang",
	"eastAsianLayout", "specVanish", "oMath", "rPrChange",
}

// sectPrOrder w:sectPr 子元素在 schema 中的顺序
var sectPrOrder = []string{
	"headerReference", "footerReference", "footnotePr", "endnotePr", "type", "pgSz",
	"pgMar", "paperSrc", "pgBorders", "lnNumType", "pgNumType", "cols", "formProt",
	"vAlign", "noEndnote", "titlePg", "textDirection", "bidi", "rtlGutter", "docGrid",
	"printerSettings", "sectPrChange",
}

func isW(el *etree.Element, tag string) bool {
	return el != nil && el.Space == "w" && el.Tag == tag
}

func orderIndex(order []string, tag string) int {
	for i, t := range order {
		if t == tag {
			return i
		}
	}
	return len(order)
}

// ensureChild 返回 w:<tag> 子元素，不存在时按 schema 顺序插入
func ensureChild(parent *etree.Element, tag string, order []string) *etree.Element {
	if child := parent.SelectElement("w:" + tag); child != nil {
		return child
	}

	child := etree.NewElement("w:" + tag)
	want := orderIndex(order, tag)
	for _, existing := range parent.ChildElements() {
		if existing.Space == "w" && orderIndex(order, existing.Tag) > want {
			parent.InsertChildAt(existing.Index(), child)
			return child
		}
	}
	parent.AddChild(child)
	return child
}

// ensureFirstChild 返回 w:<tag> 子元素，不存在时插入为第一个子元素
func ensureFirstChild(parent *etree.Element, tag string) *etree.Element {
	if child := parent.SelectElement("w:" + tag); child != nil {
		return child
	}
	child := etree.NewElement("w:" + tag)
	parent.InsertChildAt(0, child)
	return child
}

func attrInt(el *etree.Element, key string) (int, bool) {
	if el == nil {
		return 0, false
	}
	attr := el.SelectAttr("w:" + key)
	if attr == nil {
		return 0, false
	}
	n, err := strconv.Atoi(attr.Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func setAttrInt(el *etree.Element, key string, value int) {
	el.CreateAttr("w:"+key, strconv.Itoa(value))
}

// onOff 解析 ST_OnOff，未写 w:val 表示开启
func onOff(el *etree.Element) bool {
	switch el.SelectAttrValue("w:val", "true") {
	case "0", "false", "off":
		return false
	}
	return true
}

// 单位换算
const (
	twipsPerPoint = 20
	twipsPerCm    = 1440 / 2.54
)

func pointsToTwips(pt float64) int {
	return int(math.Round(pt * twipsPerPoint))
}

func twipsToPoints(twips int) float64 {
	return float64(twips) / twipsPerPoint
}

func cmToTwips(cm float64) int {
	return int(math.Round(cm * twipsPerCm))
}

func twipsToCm(twips int) float64 {
	return float64(twips) / twipsPerCm
}

func pointsToHalfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}
