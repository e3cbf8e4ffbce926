package cli

import (
	"fmt"
	"time"

	"github.com/nerdneilsfield/go-report-formatter/internal/batch"
	"github.com/nerdneilsfield/go-report-formatter/internal/config"
	"github.com/nerdneilsfield/go-report-formatter/internal/convert"
	"github.com/nerdneilsfield/go-report-formatter/internal/formatter"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// 命令行标志变量
	cfgFile         string
	outputDir       string
	outputSuffix    string
	fontCatalogPath string
	sofficePath     string
	convertTimeout  time.Duration
	debugMode       bool
	noProgress      bool
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reportfmt [flags] <file|dir>...",
		Short: "公文报告一键排版工具",
		Long: `公文报告一键排版工具，自动识别标题、图表题注、正文和表格，按配置统一字体、字号、
缩进、行距、大纲级别和页边距。

支持的输入格式:
  - .docx: Word 文档
  - .doc / .wps: 旧版 Word 和 WPS 文档（需要安装 LibreOffice）
  - .txt: 纯文本，每行一个段落

输出文件保存为 <原文件名>_formatted.docx，源文件不会被修改。`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runFormat,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径 (默认查找 ./reportfmt.json)")
	rootCmd.PersistentFlags().StringVar(&fontCatalogPath, "font-catalog", "", "字体目录 TOML 文件路径")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "启用调试日志")
	rootCmd.PersistentFlags().StringVar(&sofficePath, "soffice", "", "LibreOffice 可执行文件路径 (默认在 PATH 中查找)")
	rootCmd.PersistentFlags().DurationVar(&convertTimeout, "timeout", convert.DefaultTimeout, "单个文件调用 LibreOffice 转换的超时时间")

	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "输出目录 (默认与输入文件相同)")
	rootCmd.Flags().StringVar(&outputSuffix, "suffix", batch.DefaultSuffix, "输出文件名后缀")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "不显示进度条")

	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewFontsCommand())

	return rootCmd
}

// loadSettings 加载字体目录和排版配置，并检查字体名称
func loadSettings(log *zap.Logger) (*config.Config, *config.FontCatalog, error) {
	catalog, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.LoadConfig(cfgFile, catalog, log)
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}
	cfg.CheckFonts(catalog, log)
	return cfg, catalog, nil
}

func loadCatalog() (*config.FontCatalog, error) {
	if fontCatalogPath == "" {
		return config.DefaultFontCatalog(), nil
	}
	catalog, err := config.LoadFontCatalog(fontCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("加载字体目录失败: %w", err)
	}
	return catalog, nil
}

func newConverter(log *zap.Logger) *convert.Converter {
	return convert.NewConverter(log,
		convert.WithOfficeTool(convert.NewOfficeTool(sofficePath, log)),
		convert.WithTimeout(convertTimeout))
}

func runFormat(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(debugMode)
	defer func() {
		_ = log.Sync()
	}()

	cfg, _, err := loadSettings(log)
	if err != nil {
		return err
	}

	inputs, err := convert.ExpandInputs(args, outputSuffix)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("没有找到可处理的文件")
	}

	opts := []batch.Option{
		batch.WithOutputDir(outputDir),
		batch.WithSuffix(outputSuffix),
	}
	var progress *progressObserver
	if !noProgress {
		progress = newProgressObserver(len(inputs), cmd.ErrOrStderr())
		opts = append(opts, batch.WithObserver(progress))
	}

	runner := batch.NewRunner(newConverter(log), formatter.NewEngine(cfg, log), log, opts...)
	summary := runner.Run(cmd.Context(), inputs)
	progress.Stop()

	out := cmd.OutOrStdout()
	batch.RenderSummary(out, summary)
	batch.PrintResultLine(out, summary)

	if !summary.OK() {
		return fmt.Errorf("%d 个文件处理失败", summary.Failed)
	}
	return nil
}
