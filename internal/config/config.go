package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// OutlineLevel 大纲级别，0 表示不设置
type OutlineLevel int

// OutlineNone 不设置大纲级别
const OutlineNone OutlineLevel = 0

// outlineNoneNames 配置文件中表示“不设置”的写法
var outlineNoneNames = map[string]bool{
	"":     true,
	"none": true,
	"无":    true,
}

// IsSet 是否设置了大纲级别
func (l OutlineLevel) IsSet() bool {
	return l >= 1 && l <= 9
}

// String 返回配置文件中的写法
func (l OutlineLevel) String() string {
	if !l.IsSet() {
		return "none"
	}
	return strconv.Itoa(int(l))
}

// ParseOutlineLevel 解析大纲级别，接受 1-9 的整数或 "none"
func ParseOutlineLevel(value interface{}) (OutlineLevel, error) {
	if value == nil {
		return OutlineNone, nil
	}
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if outlineNoneNames[strings.ToLower(s)] {
			return OutlineNone, nil
		}
		value = s
	}
	switch f := value.(type) {
	case float64:
		if f != math.Trunc(f) {
			return OutlineNone, fmt.Errorf("outline level %v is not an integer", f)
		}
	case float32:
		if float64(f) != math.Trunc(float64(f)) {
			return OutlineNone, fmt.Errorf("outline level %v is not an integer", f)
		}
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return OutlineNone, fmt.Errorf("invalid outline level %v: %w", value, err)
	}
	if n < 1 || n > 9 {
		return OutlineNone, fmt.Errorf("outline level %d out of range 1-9", n)
	}
	return OutlineLevel(n), nil
}

// Config 排版参数
type Config struct {
	LineSpacing float64 `mapstructure:"line_spacing"` // 固定行距（磅）

	// 页边距（厘米）
	MarginTop    float64 `mapstructure:"margin_top"`
	MarginBottom float64 `mapstructure:"margin_bottom"`
	MarginLeft   float64 `mapstructure:"margin_left"`
	MarginRight  float64 `mapstructure:"margin_right"`

	// 字体
	H1Font            string `mapstructure:"h1_font"`
	H2Font            string `mapstructure:"h2_font"`
	H3Font            string `mapstructure:"h3_font"`
	BodyFont          string `mapstructure:"body_font"`
	TableCaptionFont  string `mapstructure:"table_caption_font"`
	FigureCaptionFont string `mapstructure:"figure_caption_font"`

	// 字号（磅）
	H1Size            float64 `mapstructure:"h1_size"`
	H2Size            float64 `mapstructure:"h2_size"`
	H3Size            float64 `mapstructure:"h3_size"`
	BodySize          float64 `mapstructure:"body_size"`
	TableCaptionSize  float64 `mapstructure:"table_caption_size"`
	FigureCaptionSize float64 `mapstructure:"figure_caption_size"`

	// 段前段后（磅）
	H1SpaceBefore float64 `mapstructure:"h1_space_before"`
	H1SpaceAfter  float64 `mapstructure:"h1_space_after"`
	H2SpaceBefore float64 `mapstructure:"h2_space_before"`
	H2SpaceAfter  float64 `mapstructure:"h2_space_after"`
	H3SpaceBefore float64 `mapstructure:"h3_space_before"`
	H3SpaceAfter  float64 `mapstructure:"h3_space_after"`

	// 加粗
	H1Bold            bool `mapstructure:"h1_bold"`
	H2Bold            bool `mapstructure:"h2_bold"`
	H3Bold            bool `mapstructure:"h3_bold"`
	TableCaptionBold  bool `mapstructure:"table_caption_bold"`
	FigureCaptionBold bool `mapstructure:"figure_caption_bold"`

	// 题注大纲级别
	TableCaptionOutlineLevel  OutlineLevel `mapstructure:"table_caption_outline_level"`
	FigureCaptionOutlineLevel OutlineLevel `mapstructure:"figure_caption_outline_level"`

	SetOutline bool `mapstructure:"set_outline"` // 是否为标题写入大纲级别

	// 西文字体
	BodyUseTimesRoman  bool   `mapstructure:"body_use_times_roman"`
	TableUseTimesRoman bool   `mapstructure:"table_use_times_roman"`
	LatinFont          string `mapstructure:"latin_font"`
}

// TextStyle 某一角色的字体与段落间距
type TextStyle struct {
	Font        string
	Size        float64
	Bold        bool
	SpaceBefore float64
	SpaceAfter  float64
}

// NewDefaultConfig 创建一个新的默认配置
func NewDefaultConfig() *Config {
	return &Config{
		LineSpacing: 28,

		MarginTop:    3.7,
		MarginBottom: 3.5,
		MarginLeft:   2.8,
		MarginRight:  2.6,

		H1Font:            "黑体",
		H2Font:            "楷体_GB2312",
		H3Font:            "宋体",
		BodyFont:          "仿宋_GB2312",
		TableCaptionFont:  "黑体",
		FigureCaptionFont: "黑体",

		H1Size:            16,
		H2Size:            16,
		H3Size:            12,
		BodySize:          16,
		TableCaptionSize:  14,
		FigureCaptionSize: 14,

		H1SpaceBefore: 24,
		H1SpaceAfter:  24,
		H2SpaceBefore: 24,
		H2SpaceAfter:  24,
		H3SpaceBefore: 24,
		H3SpaceAfter:  24,

		H1Bold:            false,
		H2Bold:            true,
		H3Bold:            false,
		TableCaptionBold:  false,
		FigureCaptionBold: false,

		TableCaptionOutlineLevel:  8,
		FigureCaptionOutlineLevel: 6,

		SetOutline: true,

		BodyUseTimesRoman:  true,
		TableUseTimesRoman: true,
		LatinFont:          "Times New Roman",
	}
}

// HeadingStyle 返回 1-3 级标题的样式，其他级别返回 false
func (c *Config) HeadingStyle(level int) (TextStyle, bool) {
	switch level {
	case 1:
		return TextStyle{Font: c.H1Font, Size: c.H1Size, Bold: c.H1Bold, SpaceBefore: c.H1SpaceBefore, SpaceAfter: c.H1SpaceAfter}, true
	case 2:
		return TextStyle{Font: c.H2Font, Size: c.H2Size, Bold: c.H2Bold, SpaceBefore: c.H2SpaceBefore, SpaceAfter: c.H2SpaceAfter}, true
	case 3:
		return TextStyle{Font: c.H3Font, Size: c.H3Size, Bold: c.H3Bold, SpaceBefore: c.H3SpaceBefore, SpaceAfter: c.H3SpaceAfter}, true
	}
	return TextStyle{}, false
}

// BodyStyle 正文样式
func (c *Config) BodyStyle() TextStyle {
	return TextStyle{Font: c.BodyFont, Size: c.BodySize}
}

// TableCaptionStyle 表格题注样式
func (c *Config) TableCaptionStyle() TextStyle {
	return TextStyle{Font: c.TableCaptionFont, Size: c.TableCaptionSize, Bold: c.TableCaptionBold}
}

// FigureCaptionStyle 图片题注样式
func (c *Config) FigureCaptionStyle() TextStyle {
	return TextStyle{Font: c.FigureCaptionFont, Size: c.FigureCaptionSize, Bold: c.FigureCaptionBold}
}

// BodyLatinFont 正文使用的西文字体，未启用时返回空串
func (c *Config) BodyLatinFont() string {
	if c.BodyUseTimesRoman {
		return c.LatinFont
	}
	return ""
}

// TableLatinFont 表格内容使用的西文字体，未启用时返回空串
func (c *Config) TableLatinFont() string {
	if c.TableUseTimesRoman {
		return c.LatinFont
	}
	return ""
}

// ToMap 转换为扁平的配置文件键值
func (c *Config) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"line_spacing":                 c.LineSpacing,
		"margin_top":                   c.MarginTop,
		"margin_bottom":                c.MarginBottom,
		"margin_left":                  c.MarginLeft,
		"margin_right":                 c.MarginRight,
		"h1_font":                      c.H1Font,
		"h2_font":                      c.H2Font,
		"h3_font":                      c.H3Font,
		"body_font":                    c.BodyFont,
		"table_caption_font":           c.TableCaptionFont,
		"figure_caption_font":          c.FigureCaptionFont,
		"h1_size":                      c.H1Size,
		"h2_size":                      c.H2Size,
		"h3_size":                      c.H3Size,
		"body_size":                    c.BodySize,
		"table_caption_size":           c.TableCaptionSize,
		"figure_caption_size":          c.FigureCaptionSize,
		"h1_space_before":              c.H1SpaceBefore,
		"h1_space_after":               c.H1SpaceAfter,
		"h2_space_before":              c.H2SpaceBefore,
		"h2_space_after":               c.H2SpaceAfter,
		"h3_space_before":              c.H3SpaceBefore,
		"h3_space_after":               c.H3SpaceAfter,
		"h1_bold":                      c.H1Bold,
		"h2_bold":                      c.H2Bold,
		"h3_bold":                      c.H3Bold,
		"table_caption_bold":           c.TableCaptionBold,
		"figure_caption_bold":          c.FigureCaptionBold,
		"table_caption_outline_level":  outlineValue(c.TableCaptionOutlineLevel),
		"figure_caption_outline_level": outlineValue(c.FigureCaptionOutlineLevel),
		"set_outline":                  c.SetOutline,
		"body_use_times_roman":         c.BodyUseTimesRoman,
		"table_use_times_roman":        c.TableUseTimesRoman,
		"latin_font":                   c.LatinFont,
	}
}

func outlineValue(l OutlineLevel) interface{} {
	if !l.IsSet() {
		return "none"
	}
	return int(l)
}
