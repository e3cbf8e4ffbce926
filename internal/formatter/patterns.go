package formatter

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	tableCaptionPrefix  = "表"
	figureCaptionPrefix = "图"
)

var (
	// 单行编号标题：数字之间以半角或全角点分隔，编号后必须有空白和文字
	numberedHeadingPattern = regexp.MustCompile(`^(\d+(?:[.．]\d+)+)[.．]?[ \t\p{Zs}]+[\p{Han}A-Za-z]`)

	// 标题样式名称，如 "heading 2"、"Heading2"、"标题 3"
	headingStylePattern = regexp.MustCompile(`^(?i:heading|标题)\s*([1-9])$`)

	legacyPatterns = []struct {
		family  LegacyFamily
		pattern *regexp.Regexp
	}{
		{LegacyChineseNumeral, regexp.MustCompile(`^[一二三四五六七八九十百千万零]+\s*、`)},
		{LegacyBracketedChineseNumeral, regexp.MustCompile(`^[（(][一二三四五六七八九十百千万零]+[）)]`)},
		{LegacyDigitDot, regexp.MustCompile(`^\d+\s*[.．]`)},
		{LegacyBracketedDigit, regexp.MustCompile(`^[（(]\d+[）)]`)},
	}
)

// numberedHeadingLevel 识别单行编号标题，返回标题级别
//
// 一个点为 2 级，两个点为 3 级，三个点为 4 级，四个及以上为 5 级。
func numberedHeadingLevel(text string) (int, bool) {
	if strings.ContainsAny(text, "\n\r") {
		return 0, false
	}
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	m := numberedHeadingPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	dots := strings.Count(m[1], ".") + strings.Count(m[1], "．")
	switch {
	case dots == 1:
		return 2, true
	case dots == 2:
		return 3, true
	case dots == 3:
		return 4, true
	default:
		return 5, true
	}
}

// styleHeadingLevel 从段落样式名称中提取标题级别
func styleHeadingLevel(styleName string) (int, bool) {
	m := headingStylePattern.FindStringSubmatch(strings.TrimSpace(styleName))
	if m == nil {
		return 0, false
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return level, true
}

// legacyFamily 匹配旧式标题编号
func legacyFamily(text string) LegacyFamily {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	for _, lp := range legacyPatterns {
		if lp.pattern.MatchString(text) {
			return lp.family
		}
	}
	return LegacyNone
}

// captionRole 按前缀判断题注类型
func captionRole(text string) (Role, bool) {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, tableCaptionPrefix):
		return RoleTableCaption, true
	case strings.HasPrefix(text, figureCaptionPrefix):
		return RoleFigureCaption, true
	}
	return RoleBlank, false
}

func isTableCaptionText(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), tableCaptionPrefix)
}
