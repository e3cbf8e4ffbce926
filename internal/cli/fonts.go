package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/go-report-formatter/internal/config"
	"github.com/spf13/cobra"
)

// NewFontsCommand 创建 fonts 命令
func NewFontsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "列出各角色可选字体和中文字号",
		Args:  cobra.NoArgs,
		RunE:  runFonts,
	}
}

func runFonts(cmd *cobra.Command, _ []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fonts := table.NewWriter()
	fonts.SetOutputMirror(out)
	fonts.AppendHeader(table.Row{"角色", "可选字体"})
	for _, role := range config.FontRoles {
		fonts.AppendRow(table.Row{role, strings.Join(catalog.Options(role), "、")})
	}
	fonts.SetStyle(table.StyleLight)
	fonts.Render()

	sizes := table.NewWriter()
	sizes.SetOutputMirror(out)
	sizes.AppendHeader(table.Row{"字号", "磅值"})
	for _, size := range catalog.Sizes {
		sizes.AppendRow(table.Row{size.Name, size.Points})
	}
	sizes.SetStyle(table.StyleLight)
	sizes.Render()
	return nil
}
