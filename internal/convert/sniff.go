package convert

import (
	"bytes"

	"github.com/richardlehane/mscfb"
)

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// isOLE 是否为 OLE2 复合文档（.doc、.wps）
func isOLE(data []byte) bool {
	return bytes.HasPrefix(data, oleMagic)
}

// hasWordStream 复合文档中是否包含 WordDocument 流
func hasWordStream(data []byte) (found bool) {
	defer func() {
		if r := recover(); r != nil {
			found = false
		}
	}()

	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return false
	}
	for {
		entry, err := doc.Next()
		if err != nil {
			return false
		}
		if entry.Name == "WordDocument" {
			return true
		}
	}
}
