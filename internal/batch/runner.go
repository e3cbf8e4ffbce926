// Package batch 批量转换、格式化并保存报告文件
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nerdneilsfield/go-report-formatter/internal/convert"
	"github.com/nerdneilsfield/go-report-formatter/internal/formatter"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"go.uber.org/zap"
)

// DefaultSuffix 输出文件名后缀
const DefaultSuffix = "_formatted"

var (
	// ErrOutputIsInput 输出路径与输入文件相同
	ErrOutputIsInput = errors.New("output path equals input path")
	// ErrOutputConflict 同一批次中多个输入对应同一个输出
	ErrOutputConflict = errors.New("output path already produced in this run")
)

// DocumentConverter 将输入文件转换为可格式化的文档
type DocumentConverter interface {
	Convert(ctx context.Context, path string) (*convert.Result, error)
}

// Observer 接收批处理事件，回调在处理文件的同一协程中执行
type Observer interface {
	OnStart(index, total int, input string)
	OnFinish(index, total int, result FileResult)
}

type nopObserver struct{}

func (nopObserver) OnStart(int, int, string)      {}
func (nopObserver) OnFinish(int, int, FileResult) {}

// FileResult 单个文件的处理结果
type FileResult struct {
	Input        string
	Output       string
	SourceFormat convert.SourceFormat
	Report       *formatter.Report
	Duration     time.Duration
	Err          error
}

// OK 是否处理成功
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Summary 批处理汇总
type Summary struct {
	Results   []FileResult
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// OK 是否全部成功
func (s Summary) OK() bool {
	return s.Failed == 0
}

// Runner 逐个处理输入文件，单个文件失败不影响其余文件
type Runner struct {
	converter DocumentConverter
	engine    *formatter.Engine
	outputDir string
	suffix    string
	observer  Observer
	logger    *zap.Logger
}

// Option Runner 选项
type Option func(*Runner)

// WithOutputDir 设置输出目录，为空时输出到输入文件所在目录
func WithOutputDir(dir string) Option {
	return func(r *Runner) {
		r.outputDir = dir
	}
}

// WithSuffix 设置输出文件名后缀
func WithSuffix(suffix string) Option {
	return func(r *Runner) {
		r.suffix = suffix
	}
}

// WithObserver 设置事件观察者
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewRunner 创建批处理器
func NewRunner(converter DocumentConverter, engine *formatter.Engine, log *zap.Logger, opts ...Option) *Runner {
	r := &Runner{
		converter: converter,
		engine:    engine,
		suffix:    DefaultSuffix,
		observer:  nopObserver{},
		logger:    logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OutputPath 返回输入文件对应的输出路径
func (r *Runner) OutputPath(input string) string {
	dir := r.outputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, stem+r.suffix+".docx")
}

// Run 按顺序处理所有输入；上下文取消后剩余文件记为失败
func (r *Runner) Run(ctx context.Context, inputs []string) Summary {
	start := time.Now()
	summary := Summary{Results: make([]FileResult, 0, len(inputs))}
	produced := make(map[string]string)

	for i, input := range inputs {
		var result FileResult
		if err := ctx.Err(); err != nil {
			result = FileResult{Input: input, Err: err}
		} else {
			r.observer.OnStart(i, len(inputs), input)
			result = r.processFile(ctx, input, produced)
		}

		if result.OK() {
			summary.Succeeded++
			r.logger.Info("格式化完成",
				zap.String("file", input),
				zap.String("output", result.Output),
				zap.Duration("duration", result.Duration))
		} else {
			summary.Failed++
			r.logger.Error("格式化失败", zap.String("file", input), zap.Error(result.Err))
		}
		summary.Results = append(summary.Results, result)
		r.observer.OnFinish(i, len(inputs), result)
	}

	summary.Duration = time.Since(start)
	return summary
}

func (r *Runner) processFile(ctx context.Context, input string, produced map[string]string) FileResult {
	start := time.Now()
	result := FileResult{Input: input, Output: r.OutputPath(input)}
	fail := func(err error) FileResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if err := r.checkOutput(input, result.Output, produced); err != nil {
		return fail(err)
	}

	converted, err := r.converter.Convert(ctx, input)
	if err != nil {
		return fail(err)
	}
	result.SourceFormat = converted.SourceFormat

	result.Report = r.engine.Format(converted.Document, converted.FromPlainText)

	if err := os.MkdirAll(filepath.Dir(result.Output), 0o755); err != nil {
		return fail(fmt.Errorf("failed to create output directory: %w", err))
	}
	if err := converted.Document.Save(result.Output); err != nil {
		return fail(err)
	}

	produced[absPath(result.Output)] = input
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) checkOutput(input, output string, produced map[string]string) error {
	key := absPath(output)
	if key == absPath(input) {
		return fmt.Errorf("%w: %s", ErrOutputIsInput, output)
	}
	if previous, ok := produced[key]; ok {
		return fmt.Errorf("%w: %s (from %s)", ErrOutputConflict, output, previous)
	}
	return nil
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
