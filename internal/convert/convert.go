// Package convert 将 docx、doc、wps 和 txt 输入统一转换为可格式化的 docx 文档
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFormat 不支持的文件格式
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrConverterUnavailable 找不到 LibreOffice
	ErrConverterUnavailable = errors.New("document converter unavailable")

	errUndecodableText   = errors.New("unable to detect text encoding")
	errUnrecognizedBytes = errors.New("file content is neither OOXML nor OLE2")
)

// DefaultTimeout 单个文件调用 LibreOffice 转换的默认超时
const DefaultTimeout = 2 * time.Minute

// SourceFormat 输入文件格式
type SourceFormat string

const (
	FormatDocx SourceFormat = "docx"
	FormatDoc  SourceFormat = "doc"
	FormatWPS  SourceFormat = "wps"
	FormatText SourceFormat = "txt"
)

// Result 转换结果
type Result struct {
	Document      *docx.Document
	FromPlainText bool
	SourceFormat  SourceFormat
	Encoding      string // 纯文本的原始编码
}

// Converter 文档转换器
type Converter struct {
	office  *OfficeTool
	timeout time.Duration
	tempDir string
	logger  *zap.Logger
}

// Option 转换器选项
type Option func(*Converter)

// WithOfficeTool 指定 LibreOffice 工具
func WithOfficeTool(tool *OfficeTool) Option {
	return func(c *Converter) {
		c.office = tool
	}
}

// WithTimeout 设置 LibreOffice 转换超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Converter) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTempDir 设置转换使用的临时目录
func WithTempDir(dir string) Option {
	return func(c *Converter) {
		c.tempDir = dir
	}
}

// NewConverter 创建转换器
func NewConverter(log *zap.Logger, opts ...Option) *Converter {
	log = logger.OrNop(log)
	c := &Converter{
		timeout: DefaultTimeout,
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.office == nil {
		c.office = NewOfficeTool("", log)
	}
	return c
}

// Convert 读取输入文件并转换为内存中的 docx 文档，源文件不会被修改
func (c *Converter) Convert(ctx context.Context, path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return c.convertDocx(ctx, path)
	case ".txt":
		return c.convertText(path)
	case ".doc":
		return c.convertLegacy(ctx, path, FormatDoc)
	case ".wps":
		return c.convertLegacy(ctx, path, FormatWPS)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

func (c *Converter) convertDocx(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := docx.Read(data)
	if errors.Is(err, docx.ErrNotDocx) && isOLE(data) {
		// 扩展名为 .docx 的旧版 Word 文档
		c.logger.Warn("文件内容为旧版 Word 格式，使用 LibreOffice 转换", zap.String("file", path))
		return c.convertLegacy(ctx, path, FormatDoc)
	}
	if err != nil {
		return nil, err
	}
	return &Result{Document: doc, SourceFormat: FormatDocx}, nil
}

func (c *Converter) convertText(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text, enc, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	c.logger.Debug("读取纯文本文件", zap.String("file", path), zap.String("encoding", enc))

	return &Result{
		Document:      docx.NewFromParagraphs(textLines(text)),
		FromPlainText: true,
		SourceFormat:  FormatText,
		Encoding:      enc,
	}, nil
}

func (c *Converter) convertLegacy(ctx context.Context, path string, format SourceFormat) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch {
	case isZip(data):
		// 扩展名为 .doc/.wps 的 OOXML 文档
		doc, err := docx.Read(data)
		if err != nil {
			return nil, err
		}
		return &Result{Document: doc, SourceFormat: format}, nil
	case isOLE(data):
		if !hasWordStream(data) {
			c.logger.Warn("OLE 文件中没有 WordDocument 流，仍尝试转换", zap.String("file", path))
		}
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), errUnrecognizedBytes)
	}

	tmp, err := os.MkdirTemp(c.tempDir, "reportfmt-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	convertCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	converted, err := c.office.ConvertToDocx(convertCtx, path, tmp)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("LibreOffice 转换完成",
		zap.String("file", path),
		zap.Duration("duration", time.Since(start)))

	doc, err := docx.Open(converted)
	if err != nil {
		return nil, err
	}
	return &Result{Document: doc, SourceFormat: format}, nil
}

var zipMagic = []byte("PK\x03\x04")

func isZip(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}
