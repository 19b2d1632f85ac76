package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespaceRe = regexp.MustCompile(`[\r\n\t ]+`)
	spacesRe     = regexp.MustCompile(` +`)
	octetRe      = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	entityRe     = regexp.MustCompile(`^&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
)

// 连同内容一起删除的标签
const strippedElements = "script, style"

// 内容按文本解析的标签，内容需要再去一次标签
const (
	rcdataElements  = "textarea, title"
	rawtextElements = "iframe, noembed, noframes, noscript, xmp, plaintext"
)

// SanitizeTextField 清理用户提交的单行文本
//
// 规则：非法 UTF-8 返回空串；含 '<' 时先把没有闭合 '>' 的 '<' 转义为 &lt;，
// 再去掉所有标签（script/style 连同内容），实体保持原样；换行、制表符和连续
// 空白合并为一个空格；去掉 %XX 形式的百分号编码；首尾去空白。
func SanitizeTextField(s string) string {
	if s == "" || !utf8.ValidString(s) {
		return ""
	}

	filtered := s
	if strings.Contains(filtered, "<") {
		filtered = escapeUnclosedLessThan(filtered)
		filtered = stripAllTags(filtered)
		// 合并换行后不能拼出新的标签
		filtered = strings.ReplaceAll(filtered, "<\n", "&lt;\n")
	}
	filtered = whitespaceRe.ReplaceAllString(filtered, " ")
	filtered = strings.TrimSpace(filtered)

	found := false
	for octetRe.MatchString(filtered) {
		filtered = octetRe.ReplaceAllString(filtered, "")
		found = true
	}
	if found {
		filtered = strings.TrimSpace(spacesRe.ReplaceAllString(filtered, " "))
	}
	return filtered
}

// escapeUnclosedLessThan 转义在下一个 '<' 或结尾之前没有 '>' 的片段，
// 避免解析器把 "a<b" 这样的文本当成标签吞掉
func escapeUnclosedLessThan(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '<')
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i:]

		end := strings.IndexAny(s[1:], "<>")
		switch {
		case end < 0:
			b.WriteString(escapeHTML(s))
			return b.String()
		case s[1+end] == '>':
			b.WriteString(s[:end+2])
			s = s[end+2:]
		default:
			b.WriteString(escapeHTML(s[:end+1]))
			s = s[end+1:]
		}
	}
}

// escapeHTML 转义特殊字符，已有的实体不重复转义
func escapeHTML(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#039;")
		case '&':
			if entityRe.MatchString(s[i:]) {
				b.WriteByte(c)
			} else {
				b.WriteString("&amp;")
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// stripAllTags 解析HTML片段并只保留文本，文本中的实体不解码
func stripAllTags(s string) string {
	// 解析器会解码实体，先把 '&' 转义一次，解析后正好还原成输入的样子
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(s, "&", "&amp;")))
	if err != nil {
		// 解析失败时不保留任何可能的标记
		return ""
	}
	doc.Find(strippedElements).Remove()

	// textarea/title 的内容已解码，iframe 等的内容保留了上面的转义
	restripText(doc.Find(rcdataElements), false)
	restripText(doc.Find(rawtextElements), true)

	return doc.Text()
}

func restripText(sel *goquery.Selection, escaped bool) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "#text" {
			return
		}
		node := s.Nodes[0]
		raw := node.Data
		if escaped {
			raw = strings.ReplaceAll(raw, "&amp;", "&")
		}
		if strings.Contains(raw, "<") {
			raw = stripAllTags(raw)
		}
		node.Data = raw
	})
}
