package logic

import (
	"fmt"
	"strings"
)

// BuildNarration 拼朗读文案：正文 + 署名短语
// 必须保持确定性：同一条名言每次生成的文案一模一样，音频指纹缓存才站得住
func BuildNarration(content, author string) string {
	content = strings.TrimSpace(content)
	if content != "" && !strings.HasSuffix(content, ".") &&
		!strings.HasSuffix(content, "!") && !strings.HasSuffix(content, "?") {
		content += "."
	}

	author = strings.TrimSpace(author)
	if author == "" {
		return content
	}
	return fmt.Sprintf("%s By %s.", content, author)
}
