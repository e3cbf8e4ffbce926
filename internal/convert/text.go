package convert

import (
	"bytes"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// fallbackEncodings UTF-8 解码失败后依次尝试的编码
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"gbk", simplifiedchinese.GBK},
	{"gb18030", simplifiedchinese.GB18030},
}

// decodeText 检测并转换文本编码，返回 UTF-8 文本和识别出的编码
func decodeText(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "utf-8", nil
	}

	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):]), "utf-8", nil
	}

	if len(data) >= 2 {
		var utf16 encoding.Encoding
		switch {
		case data[0] == 0xFF && data[1] == 0xFE:
			utf16 = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)
		case data[0] == 0xFE && data[1] == 0xFF:
			utf16 = xunicode.UTF16(xunicode.BigEndian, xunicode.IgnoreBOM)
		}
		if utf16 != nil {
			if text, err := decodeWith(utf16, data[2:]); err == nil {
				return text, "utf-16", nil
			}
		}
	}

	if utf8.Valid(data) {
		return string(data), "utf-8", nil
	}

	var lastErr error
	for _, fb := range fallbackEncodings {
		text, err := decodeWith(fb.enc, data)
		if err != nil {
			lastErr = err
			continue
		}
		if isReasonableText(text) {
			return text, fb.name, nil
		}
	}
	if lastErr == nil {
		lastErr = errUndecodableText
	}
	return "", "", lastErr
}

func decodeWith(enc encoding.Encoding, data []byte) (string, error) {
	res, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(res) {
		return "", errUndecodableText
	}
	return string(res), nil
}

// isReasonableText 超过 90% 为可打印字符时认为解码结果合理
func isReasonableText(text string) bool {
	if text == "" {
		return false
	}
	printable, total := 0, 0
	for _, r := range text {
		total++
		if r != utf8.RuneError && (unicode.IsPrint(r) || unicode.IsSpace(r)) {
			printable++
		}
	}
	return float64(printable)/float64(total) > 0.9
}

// textLines 按行拆分文本，每行去除首尾空白和 XML 不允许的控制字符
func textLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(strings.Map(dropControl, line))
	}
	return lines
}

func dropControl(r rune) rune {
	if r == '\t' {
		return r
	}
	if unicode.IsControl(r) || r == '\uFEFF' {
		return -1
	}
	return r
}
