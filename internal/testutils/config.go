package testutils

import (
	"github.com/nerdneilsfield/go-report-formatter/internal/config"
)

// CreateTestConfig 创建通用测试配置，各级标题使用可区分的字体和字号
func CreateTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.H1Font = "黑体"
	cfg.H1Size = 16
	cfg.H2Font = "楷体_GB2312"
	cfg.H2Size = 15
	cfg.H3Font = "宋体"
	cfg.H3Size = 12
	cfg.H3SpaceBefore = 24
	cfg.H3SpaceAfter = 24
	return cfg
}
