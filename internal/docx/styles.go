package docx

import "github.com/beevik/etree"

// Style 样式表中的一个样式
type Style struct {
	ID      string
	Name    string
	Type    string
	BasedOn string
}

// Styles 样式表
type Styles struct {
	byID map[string]Style
}

// parseStyles 解析 styles.xml，无法解析时返回空样式表
func parseStyles(data []byte) *Styles {
	s := &Styles{byID: make(map[string]Style)}
	if len(data) == 0 {
		return s
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil || doc.Root() == nil {
		return s
	}

	for _, el := range doc.Root().SelectElements("w:style") {
		style := Style{
			ID:   el.SelectAttrValue("w:styleId", ""),
			Type: el.SelectAttrValue("w:type", ""),
		}
		if name := el.SelectElement("w:name"); name != nil {
			style.Name = name.SelectAttrValue("w:val", "")
		}
		if basedOn := el.SelectElement("w:basedOn"); basedOn != nil {
			style.BasedOn = basedOn.SelectAttrValue("w:val", "")
		}
		if style.ID != "" {
			s.byID[style.ID] = style
		}
	}
	return s
}

// Name 返回样式名称
func (s *Styles) Name(id string) (string, bool) {
	style, ok := s.byID[id]
	if !ok || style.Name == "" {
		return "", false
	}
	return style.Name, true
}
