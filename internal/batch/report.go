package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/go-report-formatter/internal/formatter"
)

// RenderSummary 以表格形式输出每个文件的处理结果
func RenderSummary(w io.Writer, s Summary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	tw.AppendHeader(table.Row{"文件", "格式", "标题", "题注", "表格", "耗时", "结果"})
	for _, r := range s.Results {
		headings, captions, tables := "-", "-", "-"
		if r.Report != nil {
			headings = fmt.Sprint(r.Report.Stats.Headings())
			captions = fmt.Sprint(r.Report.Stats.Captions())
			tables = fmt.Sprint(r.Report.Stats.Count(formatter.RoleTableContent))
		}
		format := string(r.SourceFormat)
		if format == "" {
			format = "-"
		}
		tw.AppendRow(table.Row{
			filepath.Base(r.Input),
			format,
			headings,
			captions,
			tables,
			formatDuration(r.Duration),
			resultText(r),
		})
	}
	tw.AppendSeparator()
	tw.AppendFooter(table.Row{"合计", "", "", "", "", formatDuration(s.Duration),
		fmt.Sprintf("成功 %d / 失败 %d", s.Succeeded, s.Failed)})

	tw.SetStyle(table.StyleLight)
	tw.Render()
}

func resultText(r FileResult) string {
	if r.OK() {
		return "成功"
	}
	return "失败: " + r.Err.Error()
}

// PrintResultLine 输出带颜色的结果行
func PrintResultLine(w io.Writer, s Summary) {
	if s.OK() {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "全部 %d 个文件格式化完成\n", s.Succeeded)
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(w, "%d 个文件失败，%d 个成功\n", s.Failed, s.Succeeded)
	for _, r := range s.Results {
		if !r.OK() {
			color.New(color.FgYellow).Fprintf(w, "  %s: %v\n", r.Input, r.Err)
		}
	}
}

// formatDuration 格式化时间间隔
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d.Nanoseconds())/1e6)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
