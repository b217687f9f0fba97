package extract

import "strings"

// decodeText reads bytes as UTF-8, dropping invalid sequences and a leading BOM.
func decodeText(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	return strings.TrimPrefix(text, "\ufeff")
}
