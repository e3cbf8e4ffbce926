// Package formatter 识别报告中的标题、题注、正文和表格，并按配置统一格式
package formatter

import (
	"time"

	"github.com/nerdneilsfield/go-report-formatter/internal/config"
	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"go.uber.org/zap"
)

// Report 单个文档的格式化结果
type Report struct {
	Blocks   []Classification
	Stats    FormatStats
	Duration time.Duration
}

// FormatStats 各角色的块数
type FormatStats struct {
	Total  int
	Roles  map[Role]int
	Levels map[int]int // 各级标题数量
}

// Count 返回某个角色的块数
func (s FormatStats) Count(role Role) int {
	return s.Roles[role]
}

// Headings 标题总数
func (s FormatStats) Headings() int {
	return s.Roles[RoleHeading]
}

// Captions 题注总数，包含表格首行中的题注
func (s FormatStats) Captions() int {
	return s.Roles[RoleTableCaption] + s.Roles[RoleFigureCaption]
}

// Engine 报告格式化引擎，配置只读，可在多个文档间共享
type Engine struct {
	cfg        *config.Config
	logger     *zap.Logger
	classifier *Classifier
	applier    *Applier
}

// NewEngine 创建格式化引擎
func NewEngine(cfg *config.Config, log *zap.Logger) *Engine {
	log = logger.OrNop(log)
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Engine{
		cfg:        cfg,
		logger:     log,
		classifier: NewClassifier(log),
		applier:    NewApplier(cfg, log),
	}
}

// Config 返回引擎使用的配置
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Format 原地格式化文档
//
// 先分类全部块再逐块应用格式，最后设置页面。对已格式化的文档再次执行不会产生变化。
func (e *Engine) Format(doc *docx.Document, fromPlainText bool) *Report {
	start := time.Now()
	ctx := NewContext(fromPlainText)

	blocks := e.classifier.Classify(doc.Blocks(), ctx)
	for _, c := range blocks {
		e.applier.Apply(c, ctx)
	}
	ApplyPageSetup(doc, e.cfg, fromPlainText, e.logger)

	report := &Report{
		Blocks:   blocks,
		Stats:    collectStats(blocks),
		Duration: time.Since(start),
	}

	e.logger.Info("文档格式化完成",
		zap.Int("blocks", report.Stats.Total),
		zap.Int("headings", report.Stats.Headings()),
		zap.Int("captions", report.Stats.Captions()),
		zap.Int("tables", report.Stats.Count(RoleTableContent)),
		zap.Duration("duration", report.Duration))
	return report
}

// Classify 只识别块的角色，不修改文档
func (e *Engine) Classify(doc *docx.Document, fromPlainText bool) *Report {
	start := time.Now()
	blocks := e.classifier.Classify(doc.Blocks(), NewContext(fromPlainText))
	return &Report{
		Blocks:   blocks,
		Stats:    collectStats(blocks),
		Duration: time.Since(start),
	}
}

func collectStats(blocks []Classification) FormatStats {
	stats := FormatStats{
		Total:  len(blocks),
		Roles:  make(map[Role]int),
		Levels: make(map[int]int),
	}
	for _, c := range blocks {
		stats.Roles[c.Role]++
		if c.Role == RoleHeading {
			stats.Levels[c.Level]++
		}
		stats.Roles[RoleTableCaption] += len(c.InternalCaptions)
	}
	return stats
}

// FormatDocument 使用给定配置格式化文档并返回同一个文档
func FormatDocument(doc *docx.Document, cfg *config.Config, fromPlainText bool, log *zap.Logger) *docx.Document {
	NewEngine(cfg, log).Format(doc, fromPlainText)
	return doc
}
