package formatter

import (
	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"go.uber.org/zap"
)

// 题注查找方向
const (
	searchBackward = -1
	searchForward  = 1
)

// Classifier 为文档中的每个块确定角色
type Classifier struct {
	logger *zap.Logger
}

// NewClassifier 创建分类器
func NewClassifier(log *zap.Logger) *Classifier {
	return &Classifier{logger: logger.OrNop(log)}
}

// Classify 对块序列分类
//
// 先整体扫描表格和图片附近的题注，再逐块分类；两遍扫描必须按此顺序进行，
// 逐块分类会跳过题注扫描中已经处理过的块。
func (c *Classifier) Classify(blocks []docx.Block, ctx *Context) []Classification {
	c.scanCaptions(blocks, ctx)

	result := make([]Classification, 0, len(blocks))
	for i, block := range blocks {
		result = append(result, c.classifyBlock(i, block, ctx))
	}
	return result
}

// scanCaptions 为每个表格和图片段落查找相邻题注，先向前找，找不到再向后找
func (c *Classifier) scanCaptions(blocks []docx.Block, ctx *Context) {
	for i, block := range blocks {
		if !isCaptionAnchor(block) {
			continue
		}
		for _, direction := range []int{searchBackward, searchForward} {
			index, role, found := findCaption(blocks, i, direction, ctx)
			if !found {
				continue
			}
			ctx.MarkProcessed(index, role)
			ctx.MarkNoIndent(index)
			c.logger.Debug("找到题注",
				zap.Int("block", index+1),
				zap.Int("anchor", i+1),
				zap.String("role", role.String()),
				logger.PreviewField(blocks[index].(*docx.Paragraph).Text()))
			break
		}
	}
}

func isCaptionAnchor(block docx.Block) bool {
	switch b := block.(type) {
	case *docx.Table:
		return true
	case *docx.Paragraph:
		return b.HasDrawing()
	}
	return false
}

// findCaption 沿一个方向查找题注，遇到空段落、表格或非题注段落即停止
func findCaption(blocks []docx.Block, anchor, direction int, ctx *Context) (int, Role, bool) {
	for j := anchor + direction; j >= 0 && j < len(blocks); j += direction {
		if _, done := ctx.Processed(j); done {
			continue
		}
		p, ok := blocks[j].(*docx.Paragraph)
		if !ok || p.IsBlank() {
			return 0, RoleBlank, false
		}
		role, ok := captionRole(p.Text())
		if !ok {
			return 0, RoleBlank, false
		}
		return j, role, true
	}
	return 0, RoleBlank, false
}

func (c *Classifier) classifyBlock(index int, block docx.Block, ctx *Context) Classification {
	result := Classification{Index: index, Block: block}

	if role, ok := ctx.Processed(index); ok {
		result.Role = role
		return result
	}

	switch b := block.(type) {
	case *docx.Table:
		result.Role = RoleTableContent
		result.InternalCaptions = internalCaptions(b)
	case *docx.Paragraph:
		c.classifyParagraph(&result, b, ctx)
	}

	if result.Role != RoleBlank {
		ctx.MarkProcessed(index, result.Role)
	}
	return result
}

// internalCaptions 返回表格首行中以“表”开头的段落
func internalCaptions(t *docx.Table) []*docx.Paragraph {
	rows := t.Rows()
	if len(rows) == 0 {
		return nil
	}
	var captions []*docx.Paragraph
	for _, cell := range rows[0].Cells() {
		for _, p := range cell.Paragraphs() {
			if isTableCaptionText(p.Text()) {
				captions = append(captions, p)
			}
		}
	}
	return captions
}

func (c *Classifier) classifyParagraph(result *Classification, p *docx.Paragraph, ctx *Context) {
	text := p.Text()
	if p.IsBlank() {
		result.Role = RoleBlank
		return
	}

	// 以“表”开头的段落总是表格题注，优先于编号和大纲级别
	if isTableCaptionText(text) {
		result.Role = RoleTableCaption
		ctx.MarkNoIndent(result.Index)
		return
	}

	if level, source, ok := c.existingHeadingLevel(result.Index, p); ok {
		result.Role = RoleHeading
		result.Level = level
		result.Source = source
		ctx.MarkNoIndent(result.Index)
		return
	}

	if level, ok := numberedHeadingLevel(text); ok {
		result.Role = RoleHeading
		result.Level = level
		result.Source = SourceNumbering
		ctx.MarkNoIndent(result.Index)
		return
	}

	if p.HasDrawing() || p.HasEmbeddedObject() {
		result.Role = RolePictureText
		result.Legacy = legacyFamily(text)
		if result.Legacy != LegacyNone {
			ctx.MarkNoIndent(result.Index)
		}
		return
	}

	// 旧式的“一、”“（一）”“1.”“(1)”编号不再自动识别为标题
	result.Role = RoleBody
}

// existingHeadingLevel 读取段落已有的大纲级别或标题样式
func (c *Classifier) existingHeadingLevel(index int, p *docx.Paragraph) (int, HeadingSource, bool) {
	if level, ok := p.OutlineLevel(); ok {
		return level + 1, SourceOutline, true
	}
	if raw, ok := p.RawOutlineLevel(); ok && raw != "9" {
		c.logger.Warn("忽略无效的大纲级别",
			zap.Int("block", index+1),
			zap.String("value", raw),
			logger.PreviewField(p.Text()))
	}
	if level, ok := styleHeadingLevel(p.StyleName()); ok {
		return level, SourceStyle, true
	}
	return 0, SourceNone, false
}
