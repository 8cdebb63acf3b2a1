package util

import (
	"errors"
	"io"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "text/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// IsTextLike 文本类文档可以直接抽取正文
func IsTextLike(mimeType string) bool {
	return strings.HasPrefix(mimeType, "text/")
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatFileSize 按1024进制格式化文件大小，最多保留两位小数
// FormatFileSize(0) == "0 Bytes"
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	const unit = 1024.0
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(unit)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	if i < 0 {
		i = 0
	}

	value := float64(bytes) / math.Pow(unit, float64(i))
	rounded := math.Round(value*100) / 100

	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[i]
}

// SubjectFromFilename 没有显式学科时用文件名推导分组标签
func SubjectFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.TrimSpace(base)
	if base == "" {
		return "General"
	}

	words := strings.Fields(base)
	for i, w := range words {
		// 按rune取首字符，文件名可能是中文等多字节字符
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
