package formatter

import "github.com/nerdneilsfield/go-report-formatter/internal/docx"

// Role 块在文档中的语义角色
type Role int

const (
	RoleBlank Role = iota
	RoleBody
	RoleHeading
	RoleTableCaption
	RoleFigureCaption
	RolePictureText
	RoleTableContent
)

var roleNames = map[Role]string{
	RoleBlank:         "blank",
	RoleBody:          "body",
	RoleHeading:       "heading",
	RoleTableCaption:  "table-caption",
	RoleFigureCaption: "figure-caption",
	RolePictureText:   "picture-text",
	RoleTableContent:  "table-content",
}

// String 返回角色名称
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// IsCaption 是否为题注
func (r Role) IsCaption() bool {
	return r == RoleTableCaption || r == RoleFigureCaption
}

// HeadingSource 标题级别的来源
type HeadingSource int

const (
	SourceNone HeadingSource = iota
	SourceOutline
	SourceStyle
	SourceNumbering
)

// String 返回来源名称
func (s HeadingSource) String() string {
	switch s {
	case SourceOutline:
		return "outline"
	case SourceStyle:
		return "style"
	case SourceNumbering:
		return "numbering"
	}
	return ""
}

// LegacyFamily 旧式标题编号，只用于图片段落选择字体
type LegacyFamily int

const (
	LegacyNone LegacyFamily = iota
	LegacyChineseNumeral
	LegacyBracketedChineseNumeral
	LegacyDigitDot
	LegacyBracketedDigit
)

// Classification 一个块的分类结果
type Classification struct {
	Index  int
	Block  docx.Block
	Role   Role
	Level  int           // 标题级别 1-9
	Source HeadingSource // 标题级别来源
	Legacy LegacyFamily  // 图片段落中的旧式编号

	// 表格首行中以“表”开头的段落
	InternalCaptions []*docx.Paragraph
}

// Paragraph 返回段落块，表格返回 nil
func (c Classification) Paragraph() *docx.Paragraph {
	p, _ := c.Block.(*docx.Paragraph)
	return p
}

// Label 用于日志和展示的角色描述
func (c Classification) Label() string {
	switch c.Role {
	case RoleHeading:
		return "heading-" + string(rune('0'+c.Level))
	default:
		return c.Role.String()
	}
}
