package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/go-report-formatter/internal/config"
	"github.com/nerdneilsfield/go-report-formatter/internal/logger"
	"github.com/spf13/cobra"
)

var (
	forceInit  bool
	showAsJSON bool
)

// NewConfigCommand 创建 config 命令
func NewConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "管理排版配置文件",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "写入默认配置文件",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "覆盖已存在的配置文件")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "显示当前生效的配置",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	showCmd.Flags().BoolVar(&showAsJSON, "json", false, "以 JSON 格式输出")

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultConfigName + ".json"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("配置文件已存在: %s (使用 --force 覆盖)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := config.SaveConfig(config.NewDefaultConfig(), path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已写入默认配置: %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	log := logger.NewLogger(debugMode)
	defer func() {
		_ = log.Sync()
	}()

	cfg, _, err := loadSettings(log)
	if err != nil {
		return err
	}

	values := cfg.ToMap()
	out := cmd.OutOrStdout()
	if showAsJSON {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"配置项", "值"})
	for _, key := range keys {
		tw.AppendRow(table.Row{key, values[key]})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}
