package convert

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions 支持的输入扩展名
var SupportedExtensions = []string{".docx", ".doc", ".wps", ".txt"}

// SupportedExtension 文件扩展名是否受支持，Word 锁文件（~$ 开头）除外
func SupportedExtension(path string) bool {
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// ExpandInputs 展开输入路径
//
// 目录递归查找受支持的文件，跳过文件名以 outputSuffix 结尾的已格式化输出；
// 直接指定的文件原样保留，由转换阶段报告不支持的格式。结果按输入顺序去重。
func ExpandInputs(paths []string, outputSuffix string) ([]string, error) {
	var result []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := path
		if abs, err := filepath.Abs(path); err == nil {
			key = abs
		}
		if !seen[key] {
			seen[key] = true
			result = append(result, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !SupportedExtension(p) || isOutput(p, outputSuffix) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func isOutput(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, suffix)
}
