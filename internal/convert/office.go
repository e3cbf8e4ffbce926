package convert

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// versionCheckTimeout 检查 LibreOffice 版本的超时时间
const versionCheckTimeout = 5 * time.Second

// officeCommands 按优先级查找的 LibreOffice 命令
var officeCommands = []string{"soffice", "libreoffice"}

// installCommands 各操作系统的安装建议
var installCommands = map[string]string{
	"linux":   "sudo apt install libreoffice-writer",
	"darwin":  "brew install --cask libreoffice",
	"windows": "winget install TheDocumentFoundation.LibreOffice",
}

// OfficeTool 调用 LibreOffice 将旧版文档转换为 docx
type OfficeTool struct {
	command string // 用户指定的命令或路径，为空时自动查找

	mutex     sync.RWMutex
	checked   bool
	path      string
	version   string
	lookupErr error

	logger *zap.Logger
}

// NewOfficeTool 创建 LibreOffice 工具，command 为空时在 PATH 中查找
func NewOfficeTool(command string, logger *zap.Logger) *OfficeTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfficeTool{command: command, logger: logger}
}

// Available 检查 LibreOffice 是否可用，结果会被缓存
func (o *OfficeTool) Available() bool {
	_, err := o.Path()
	return err == nil
}

// Path 返回 LibreOffice 可执行文件路径
func (o *OfficeTool) Path() (string, error) {
	o.mutex.RLock()
	if o.checked {
		defer o.mutex.RUnlock()
		return o.path, o.lookupErr
	}
	o.mutex.RUnlock()

	o.mutex.Lock()
	defer o.mutex.Unlock()
	if !o.checked {
		o.path, o.version, o.lookupErr = o.lookup()
		o.checked = true
	}
	return o.path, o.lookupErr
}

// Version 返回 LibreOffice 版本信息
func (o *OfficeTool) Version() (string, error) {
	if _, err := o.Path(); err != nil {
		return "", err
	}
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.version, nil
}

func (o *OfficeTool) lookup() (string, string, error) {
	candidates := officeCommands
	if o.command != "" {
		candidates = []string{o.command}
	}

	for _, name := range candidates {
		path, err := exec.LookPath(name)
		if err != nil {
			o.logger.Debug("tool not found in PATH", zap.String("command", name))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), versionCheckTimeout)
		output, err := exec.CommandContext(ctx, path, "--version").Output()
		cancel()
		if err != nil {
			o.logger.Debug("tool version check failed", zap.String("path", path), zap.Error(err))
			continue
		}

		version := strings.TrimSpace(string(output))
		o.logger.Debug("tool available", zap.String("path", path), zap.String("version", version))
		return path, version, nil
	}

	return "", "", fmt.Errorf("%w: %s", ErrConverterUnavailable, InstallHint())
}

// InstallHint 返回当前系统的安装建议
func InstallHint() string {
	cmd, ok := installCommands[runtime.GOOS]
	if !ok {
		cmd = installCommands["linux"]
	}
	return "请安装 LibreOffice: " + cmd
}

// ConvertToDocx 将文档转换为 docx，输出到 outDir 并返回输出文件路径
func (o *OfficeTool) ConvertToDocx(ctx context.Context, input, outDir string) (string, error) {
	path, err := o.Path()
	if err != nil {
		return "", err
	}

	absInput, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}

	// 独立的用户配置目录，避免与正在运行的 LibreOffice 实例冲突
	profile := "-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(outDir, "profile"))
	args := []string{profile, "--headless", "--norestore", "--convert-to", "docx", "--outdir", outDir, absInput}

	o.logger.Debug("executing tool", zap.String("path", path), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, path, args...)
	output, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return "", fmt.Errorf("LibreOffice 转换超时或被取消: %w", ctx.Err())
	}
	if err != nil {
		return "", fmt.Errorf("LibreOffice 转换失败: %w: %s", err, strings.TrimSpace(string(output)))
	}

	base := strings.TrimSuffix(filepath.Base(absInput), filepath.Ext(absInput))
	converted := filepath.Join(outDir, base+".docx")
	if _, err := os.Stat(converted); err != nil {
		return "", fmt.Errorf("LibreOffice 未生成输出文件: %s", strings.TrimSpace(string(output)))
	}
	return converted, nil
}
