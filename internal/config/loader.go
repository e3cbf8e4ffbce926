package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix 环境变量前缀，例如 REPORTFMT_BODY_SIZE
const EnvPrefix = "REPORTFMT"

// DefaultConfigName 默认配置文件名（不含扩展名）
const DefaultConfigName = "reportfmt"

// LoadConfig 从 JSON 文件加载配置
//
// 文件不存在或格式错误时使用默认配置；单个字段无效时只回退该字段并记录警告。
// 只有在文件存在但无法读取时才返回错误。
func LoadConfig(configPath string, catalog *FontCatalog, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if catalog == nil {
		catalog = DefaultFontCatalog()
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		info, err := os.Stat(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("配置文件不存在，使用默认配置", zap.String("path", configPath))
			configPath = ""
		case err != nil:
			return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
		case info.IsDir():
			return nil, fmt.Errorf("config path %s is a directory", configPath)
		default:
			v.SetConfigFile(configPath)
			v.SetConfigType("json")
		}
	}
	if configPath == "" {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("json")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, DefaultConfigName))
		}
	}

	// 读取环境变量
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.Error("配置文件格式错误，使用默认配置", zap.String("path", configPath), zap.Error(err))
			v = viper.New()
			setDefaults(v)
			v.SetEnvPrefix(EnvPrefix)
			v.AutomaticEnv()
		}
	} else {
		logger.Debug("已加载配置文件", zap.String("path", v.ConfigFileUsed()))
	}

	b := &binder{v: v, catalog: catalog, logger: logger, defaults: NewDefaultConfig()}
	return b.bind(), nil
}

// SaveConfig 将配置保存为 JSON 文件
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		return errors.New("config path is empty")
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.MergeConfigMap(config.ToMap()); err != nil {
		return err
	}

	// 创建父目录（如果不存在）
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return v.WriteConfigAs(configPath)
}

// CheckFonts 检查配置中的字体是否在字体目录中，未收录时给出相近字体提示
//
// 未收录的字体仍然保留，系统中可能安装了目录以外的字体。
func (c *Config) CheckFonts(catalog *FontCatalog, logger *zap.Logger) []string {
	fonts := map[string]string{
		FontRoleH1:            c.H1Font,
		FontRoleH2:            c.H2Font,
		FontRoleH3:            c.H3Font,
		FontRoleBody:          c.BodyFont,
		FontRoleTableCaption:  c.TableCaptionFont,
		FontRoleFigureCaption: c.FigureCaptionFont,
	}

	var unknown []string
	for _, role := range FontRoles {
		font := fonts[role]
		if catalog.Known(role, font) {
			continue
		}
		unknown = append(unknown, role)
		if logger != nil {
			logger.Warn("字体不在可选列表中",
				zap.String("key", role+"_font"),
				zap.String("font", font),
				zap.Strings("suggestions", catalog.Suggest(role, font)))
		}
	}
	return unknown
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	for key, value := range NewDefaultConfig().ToMap() {
		v.SetDefault(key, value)
	}
}

// binder 逐字段读取并校验配置
type binder struct {
	v        *viper.Viper
	catalog  *FontCatalog
	logger   *zap.Logger
	defaults *Config
}

func (b *binder) bind() *Config {
	c := NewDefaultConfig()
	d := b.defaults

	b.positive("line_spacing", &c.LineSpacing, d.LineSpacing)
	b.nonNegative("margin_top", &c.MarginTop, d.MarginTop)
	b.nonNegative("margin_bottom", &c.MarginBottom, d.MarginBottom)
	b.nonNegative("margin_left", &c.MarginLeft, d.MarginLeft)
	b.nonNegative("margin_right", &c.MarginRight, d.MarginRight)

	b.font("h1_font", &c.H1Font, d.H1Font)
	b.font("h2_font", &c.H2Font, d.H2Font)
	b.font("h3_font", &c.H3Font, d.H3Font)
	b.font("body_font", &c.BodyFont, d.BodyFont)
	b.font("table_caption_font", &c.TableCaptionFont, d.TableCaptionFont)
	b.font("figure_caption_font", &c.FigureCaptionFont, d.FigureCaptionFont)
	b.font("latin_font", &c.LatinFont, d.LatinFont)

	b.size("h1_size", &c.H1Size, d.H1Size)
	b.size("h2_size", &c.H2Size, d.H2Size)
	b.size("h3_size", &c.H3Size, d.H3Size)
	b.size("body_size", &c.BodySize, d.BodySize)
	b.size("table_caption_size", &c.TableCaptionSize, d.TableCaptionSize)
	b.size("figure_caption_size", &c.FigureCaptionSize, d.FigureCaptionSize)

	b.nonNegative("h1_space_before", &c.H1SpaceBefore, d.H1SpaceBefore)
	b.nonNegative("h1_space_after", &c.H1SpaceAfter, d.H1SpaceAfter)
	b.nonNegative("h2_space_before", &c.H2SpaceBefore, d.H2SpaceBefore)
	b.nonNegative("h2_space_after", &c.H2SpaceAfter, d.H2SpaceAfter)
	b.nonNegative("h3_space_before", &c.H3SpaceBefore, d.H3SpaceBefore)
	b.nonNegative("h3_space_after", &c.H3SpaceAfter, d.H3SpaceAfter)

	b.flag("h1_bold", &c.H1Bold, d.H1Bold)
	b.flag("h2_bold", &c.H2Bold, d.H2Bold)
	b.flag("h3_bold", &c.H3Bold, d.H3Bold)
	b.flag("table_caption_bold", &c.TableCaptionBold, d.TableCaptionBold)
	b.flag("figure_caption_bold", &c.FigureCaptionBold, d.FigureCaptionBold)
	b.flag("set_outline", &c.SetOutline, d.SetOutline)
	b.flag("body_use_times_roman", &c.BodyUseTimesRoman, d.BodyUseTimesRoman)
	b.flag("table_use_times_roman", &c.TableUseTimesRoman, d.TableUseTimesRoman)

	b.outline("table_caption_outline_level", &c.TableCaptionOutlineLevel, d.TableCaptionOutlineLevel)
	b.outline("figure_caption_outline_level", &c.FigureCaptionOutlineLevel, d.FigureCaptionOutlineLevel)

	return c
}

func (b *binder) fallback(key string, value, def interface{}, err error) {
	b.logger.Warn("配置项无效，使用默认值",
		zap.String("key", key),
		zap.Any("value", value),
		zap.Any("default", def),
		zap.Error(err))
}

// get 读取原始值，显式写为 null 的字段视为无效
func (b *binder) get(key string) (interface{}, error) {
	raw := b.v.Get(key)
	if raw == nil {
		return nil, fmt.Errorf("value is null")
	}
	return raw, nil
}

func (b *binder) nonNegative(key string, dst *float64, def float64) {
	raw, err := b.get(key)
	var f float64
	if err == nil {
		f, err = cast.ToFloat64E(raw)
	}
	if err == nil && f < 0 {
		err = fmt.Errorf("value must not be negative")
	}
	if err != nil {
		b.fallback(key, raw, def, err)
		*dst = def
		return
	}
	*dst = f
}

func (b *binder) positive(key string, dst *float64, def float64) {
	raw, err := b.get(key)
	var f float64
	if err == nil {
		f, err = cast.ToFloat64E(raw)
	}
	if err == nil && f <= 0 {
		err = fmt.Errorf("value must be positive")
	}
	if err != nil {
		b.fallback(key, raw, def, err)
		*dst = def
		return
	}
	*dst = f
}

// size 字号，额外接受中文字号名称
func (b *binder) size(key string, dst *float64, def float64) {
	if s, ok := b.v.Get(key).(string); ok {
		if pt, found := b.catalog.SizeByName(s); found {
			*dst = pt
			return
		}
	}
	b.positive(key, dst, def)
}

func (b *binder) font(key string, dst *string, def string) {
	raw := b.v.Get(key)
	s, err := cast.ToStringE(raw)
	s = strings.TrimSpace(s)
	if err == nil && s == "" {
		err = fmt.Errorf("font name is empty")
	}
	if err != nil {
		b.fallback(key, raw, def, err)
		*dst = def
		return
	}
	*dst = s
}

func (b *binder) flag(key string, dst *bool, def bool) {
	raw, err := b.get(key)
	var v bool
	if err == nil {
		v, err = cast.ToBoolE(raw)
	}
	if err != nil {
		b.fallback(key, raw, def, err)
		*dst = def
		return
	}
	*dst = v
}

func (b *binder) outline(key string, dst *OutlineLevel, def OutlineLevel) {
	raw := b.v.Get(key)
	level, err := ParseOutlineLevel(raw)
	if err != nil {
		b.fallback(key, raw, def.String(), err)
		*dst = def
		return
	}
	*dst = level
}
