package formatter

import (
	"github.com/nerdneilsfield/go-report-formatter/internal/config"
	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"go.uber.org/zap"
)

const (
	// bodyFirstLineChars 正文首行缩进 2 个字符（单位为 1/100 字符）
	bodyFirstLineChars = 200
	// black 非纯文本来源的文档统一使用黑色字体
	black = "000000"
)

// Applier 按角色修改块的格式
type Applier struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewApplier 创建格式应用器
func NewApplier(cfg *config.Config, log *zap.Logger) *Applier {
	return &Applier{cfg: cfg, logger: logger.OrNop(log)}
}

// Apply 按分类结果修改块
func (a *Applier) Apply(c Classification, ctx *Context) {
	if c.Role == RoleBlank {
		return
	}

	if t, ok := c.Block.(*docx.Table); ok {
		a.applyTable(c, t, ctx)
		return
	}

	p := c.Paragraph()
	if p == nil {
		return
	}

	switch {
	case c.Role == RoleHeading:
		a.applyHeading(c, p, ctx)
	case c.Role.IsCaption():
		a.applyCaption(c.Index, c.Role, p, ctx)
	case c.Role == RolePictureText:
		a.applyPictureText(c, p, ctx)
	default:
		a.applyBody(p, ctx)
	}

	if ctx.NoIndent(c.Index) {
		p.ClearIndentation()
	}
	p.StripLeadingWhitespace()
	p.ResetPagination()
}

// font 构造字体设置，纯文本来源的文档不强制颜色
func (a *Applier) font(style config.TextStyle, latin string, ctx *Context) docx.RunFont {
	f := docx.RunFont{
		EastAsia: style.Font,
		Latin:    latin,
		Size:     style.Size,
		Bold:     docx.Bool(style.Bold),
	}
	if !ctx.FromPlainText {
		f.Color = black
	}
	return f
}

func applyFont(p *docx.Paragraph, font docx.RunFont) {
	for _, r := range p.Runs() {
		r.SetFont(font)
	}
}

func (a *Applier) applyHeading(c Classification, p *docx.Paragraph, ctx *Context) {
	if style, ok := a.cfg.HeadingStyle(c.Level); ok {
		applyFont(p, a.font(style, "", ctx))
		p.SetSpacing(style.SpaceBefore, style.SpaceAfter)
	} else {
		applyFont(p, a.font(a.cfg.BodyStyle(), a.cfg.BodyLatinFont(), ctx))
		p.SetSpacing(0, 0)
	}
	p.SetLineSpacingExact(a.cfg.LineSpacing)

	if a.cfg.SetOutline {
		a.setOutline(c.Index, p, c.Level)
	}

	a.logger.Debug("标题",
		zap.Int("block", c.Index+1),
		zap.Int("level", c.Level),
		zap.String("source", c.Source.String()),
		logger.PreviewField(p.Text()))
}

func (a *Applier) captionStyle(role Role) (config.TextStyle, config.OutlineLevel) {
	if role == RoleFigureCaption {
		return a.cfg.FigureCaptionStyle(), a.cfg.FigureCaptionOutlineLevel
	}
	return a.cfg.TableCaptionStyle(), a.cfg.TableCaptionOutlineLevel
}

func (a *Applier) applyCaption(index int, role Role, p *docx.Paragraph, ctx *Context) {
	style, outline := a.captionStyle(role)
	applyFont(p, a.font(style, "", ctx))
	p.SetAlignment(docx.AlignCenter)
	p.ClearIndentation()
	if outline.IsSet() {
		a.setOutline(index, p, int(outline))
	}

	a.logger.Debug("题注",
		zap.Int("block", index+1),
		zap.String("role", role.String()),
		logger.PreviewField(p.Text()))
}

func (a *Applier) applyPictureText(c Classification, p *docx.Paragraph, ctx *Context) {
	var style config.TextStyle
	latin := ""
	switch c.Legacy {
	case LegacyChineseNumeral:
		style, _ = a.cfg.HeadingStyle(1)
	case LegacyBracketedChineseNumeral:
		style, _ = a.cfg.HeadingStyle(2)
	default:
		style = a.cfg.BodyStyle()
		latin = a.cfg.BodyLatinFont()
	}
	applyFont(p, a.font(style, latin, ctx))
}

func (a *Applier) applyBody(p *docx.Paragraph, ctx *Context) {
	applyFont(p, a.font(a.cfg.BodyStyle(), a.cfg.BodyLatinFont(), ctx))
	p.SetSpacing(0, 0)
	p.SetLineSpacingExact(a.cfg.LineSpacing)
	p.SetFirstLineChars(bodyFirstLineChars)
	p.SetAlignment(docx.AlignJustify)
}

// applyTable 表格首行的“表”字段落按题注处理，其余单元格段落只换字体，保留原字号和加粗
func (a *Applier) applyTable(c Classification, t *docx.Table, ctx *Context) {
	for _, p := range t.Paragraphs() {
		if isInternalCaption(p, c.InternalCaptions) {
			a.applyCaption(c.Index, RoleTableCaption, p, ctx)
			p.StripLeadingWhitespace()
			p.ResetPagination()
			continue
		}

		for _, r := range p.Runs() {
			size, ok := r.FontSize()
			if !ok {
				size = a.cfg.BodySize
			}
			font := docx.RunFont{
				EastAsia: a.cfg.BodyFont,
				Latin:    a.cfg.TableLatinFont(),
				Size:     size,
			}
			if !ctx.FromPlainText {
				font.Color = black
			}
			r.SetFont(font)
		}

		if p.ClearOutlineLevel() {
			a.logger.Debug("清除表格内容的大纲级别", zap.Int("block", c.Index+1), logger.PreviewField(p.Text()))
		}
	}
}

func isInternalCaption(p *docx.Paragraph, captions []*docx.Paragraph) bool {
	for _, caption := range captions {
		if caption.Same(p) {
			return true
		}
	}
	return false
}

func (a *Applier) setOutline(index int, p *docx.Paragraph, level int) {
	previous, err := p.SetOutlineLevel(level)
	if err != nil {
		a.logger.Warn("无效的大纲级别", zap.Int("block", index+1), zap.Int("level", level), zap.Error(err))
		return
	}
	if previous != level {
		a.logger.Debug("设置大纲级别",
			zap.Int("block", index+1),
			zap.Int("from", previous),
			zap.Int("to", level))
	}
}
