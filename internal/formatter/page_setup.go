package formatter

import (
	"github.com/nerdneilsfield/go-report-formatter/internal/config"
	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"go.uber.org/zap"
)

// ApplyPageSetup 为所有节设置页边距，纯文本来源的文档同时设为 A4 纸张
func ApplyPageSetup(doc *docx.Document, cfg *config.Config, fromPlainText bool, log *zap.Logger) {
	sections := doc.Sections()
	if len(sections) == 0 {
		sections = []*docx.Section{doc.EnsureSection()}
	}

	margins := docx.Margins{
		Top:    cfg.MarginTop,
		Bottom: cfg.MarginBottom,
		Left:   cfg.MarginLeft,
		Right:  cfg.MarginRight,
	}
	for _, section := range sections {
		section.SetMargins(margins)
		if fromPlainText {
			section.SetPageSize(docx.A4WidthCm, docx.A4HeightCm)
		}
	}

	if log != nil {
		log.Debug("页面设置完成",
			zap.Int("sections", len(sections)),
			zap.Bool("a4", fromPlainText))
	}
}
