package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// 字体角色，对应配置项 <role>_font
const (
	FontRoleH1            = "h1"
	FontRoleH2            = "h2"
	FontRoleH3            = "h3"
	FontRoleBody          = "body"
	FontRoleTableCaption  = "table_caption"
	FontRoleFigureCaption = "figure_caption"
)

// FontRoles 按显示顺序排列的字体角色
var FontRoles = []string{
	FontRoleH1,
	FontRoleH2,
	FontRoleH3,
	FontRoleBody,
	FontRoleTableCaption,
	FontRoleFigureCaption,
}

// SizeName 中文字号与磅值的对应
type SizeName struct {
	Name   string  `toml:"name"`
	Points float64 `toml:"points"`
}

// FontCatalog 可选字体与中文字号表
type FontCatalog struct {
	Roles map[string][]string `toml:"roles"`
	Sizes []SizeName          `toml:"sizes"`
}

// DefaultFontCatalog 返回内置的字体目录
func DefaultFontCatalog() *FontCatalog {
	captionFonts := []string{"黑体", "宋体", "仿宋_GB2312", "仿宋"}
	return &FontCatalog{
		Roles: map[string][]string{
			FontRoleH1:            {"黑体", "方正黑体_GBK", "方正黑体简体", "华文黑体", "宋体"},
			FontRoleH2:            {"楷体_GB2312", "方正楷体_GBK", "楷体", "方正楷体简体", "华文楷体", "宋体"},
			FontRoleH3:            {"宋体", "仿宋_GB2312", "方正仿宋_GBK", "仿宋", "方正仿宋简体", "华文仿宋"},
			FontRoleBody:          {"仿宋_GB2312", "方正仿宋_GBK", "仿宋", "方正仿宋简体", "华文仿宋", "宋体"},
			FontRoleTableCaption:  append([]string(nil), captionFonts...),
			FontRoleFigureCaption: append([]string(nil), captionFonts...),
		},
		Sizes: []SizeName{
			{Name: "一号", Points: 26},
			{Name: "小一", Points: 24},
			{Name: "二号", Points: 22},
			{Name: "小二", Points: 18},
			{Name: "三号", Points: 16},
			{Name: "小三", Points: 15},
			{Name: "四号", Points: 14},
			{Name: "小四", Points: 12},
			{Name: "五号", Points: 10.5},
			{Name: "小五", Points: 9},
		},
	}
}

// LoadFontCatalog 从 TOML 文件加载字体目录，并合并到内置目录之上
func LoadFontCatalog(path string) (*FontCatalog, error) {
	catalog := DefaultFontCatalog()
	if path == "" {
		return catalog, nil
	}

	var loaded FontCatalog
	if _, err := toml.DecodeFile(path, &loaded); err != nil {
		return nil, fmt.Errorf("failed to decode font catalog %s: %w", path, err)
	}

	for role, fonts := range loaded.Roles {
		if len(fonts) > 0 {
			catalog.Roles[role] = fonts
		}
	}
	for _, size := range loaded.Sizes {
		if size.Name == "" || size.Points <= 0 {
			return nil, fmt.Errorf("invalid size entry %q in %s", size.Name, path)
		}
		catalog.setSize(size)
	}

	return catalog, nil
}

func (c *FontCatalog) setSize(size SizeName) {
	for i := range c.Sizes {
		if c.Sizes[i].Name == size.Name {
			c.Sizes[i].Points = size.Points
			return
		}
	}
	c.Sizes = append(c.Sizes, size)
}

// Options 返回某角色的可选字体
func (c *FontCatalog) Options(role string) []string {
	return c.Roles[role]
}

// Known 判断字体是否在某角色的可选列表中
func (c *FontCatalog) Known(role, font string) bool {
	for _, f := range c.Roles[role] {
		if f == font {
			return true
		}
	}
	return false
}

// SizeByName 将中文字号转换为磅值，兼容 "三号 (16pt)" 这类写法
func (c *FontCatalog) SizeByName(name string) (float64, bool) {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, " (（"); i > 0 {
		name = name[:i]
	}
	for _, s := range c.Sizes {
		if s.Name == name {
			return s.Points, true
		}
	}
	return 0, false
}

// NameForSize 返回磅值对应的中文字号
func (c *FontCatalog) NameForSize(points float64) (string, bool) {
	for _, s := range c.Sizes {
		if s.Points == points {
			return s.Name, true
		}
	}
	return "", false
}

// Suggest 为可能拼错的字体名给出候选，按相似度排序
func (c *FontCatalog) Suggest(role, font string) []string {
	font = strings.TrimSpace(font)
	if font == "" {
		return nil
	}

	seen := make(map[string]bool)
	var candidates []string
	for _, r := range FontRoles {
		for _, f := range c.Roles[r] {
			if !seen[f] {
				seen[f] = true
				candidates = append(candidates, f)
			}
		}
	}

	type scored struct {
		font     string
		distance int
		sameRole bool
	}
	var matches []scored
	for _, candidate := range candidates {
		if candidate == font {
			continue
		}
		distance := fuzzy.LevenshteinDistance(font, candidate)
		if !fuzzy.MatchNormalizedFold(font, candidate) && distance > 2 {
			continue
		}
		matches = append(matches, scored{font: candidate, distance: distance, sameRole: c.Known(role, candidate)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].sameRole != matches[j].sameRole {
			return matches[i].sameRole
		}
		return matches[i].distance < matches[j].distance
	})

	result := make([]string, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.font)
	}
	return result
}
