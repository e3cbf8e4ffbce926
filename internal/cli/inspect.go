package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/go-report-formatter/internal/docx"
	"github.com/nerdneilsfield/go-report-formatter/internal/formatter"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"github.com/spf13/cobra"
)

var (
	inspectShowBlank bool
	inspectWidth     int
)

// NewInspectCommand 创建 inspect 命令
func NewInspectCommand() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "只识别文档结构，不修改文件",
		Long: `识别文档中每个块的角色（标题、题注、正文、表格等）并以表格输出，不写入任何文件。

Examples:
  # 查看报告的识别结果
  reportfmt inspect 报告.docx

  # 同时列出空段落
  reportfmt inspect --blank 报告.docx`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	inspectCmd.Flags().BoolVar(&inspectShowBlank, "blank", false, "列出空段落")
	inspectCmd.Flags().IntVar(&inspectWidth, "width", logger.DefaultPreviewWidth, "文本预览宽度")

	return inspectCmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(debugMode)
	defer func() {
		_ = log.Sync()
	}()

	cfg, _, err := loadSettings(log)
	if err != nil {
		return err
	}

	result, err := newConverter(log).Convert(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	report := formatter.NewEngine(cfg, log).Classify(result.Document, result.FromPlainText)

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"#", "角色", "来源", "内容"})
	for _, c := range report.Blocks {
		if c.Role == formatter.RoleBlank && !inspectShowBlank {
			continue
		}
		tw.AppendRow(table.Row{c.Index + 1, c.Label(), c.Source.String(), blockPreview(c, inspectWidth)})
	}
	tw.AppendFooter(table.Row{"", "合计", "",
		fmt.Sprintf("%d 个块，%d 个标题，%d 个题注", report.Stats.Total, report.Stats.Headings(), report.Stats.Captions())})
	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}

func blockPreview(c formatter.Classification, width int) string {
	switch b := c.Block.(type) {
	case *docx.Table:
		rows := b.Rows()
		preview := fmt.Sprintf("[表格 %d 行]", len(rows))
		if len(c.InternalCaptions) > 0 {
			preview += " " + c.InternalCaptions[0].Text()
		}
		return logger.Preview(preview, width)
	case *docx.Paragraph:
		if b.HasDrawing() && b.IsBlank() {
			return "[图片]"
		}
		return logger.Preview(b.Text(), width)
	}
	return ""
}
