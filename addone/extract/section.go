package extract

import (
	"regexp"
	"strings"
)

// commandEchoRegex 判断一行是否为命令回显：提示符（# / > / ]）后面紧跟
// show 或 display 关键字。图表行等普通输出虽然可能含 # 字符，但不会
// 同时带命令关键字
var commandEchoRegex = regexp.MustCompile(`(?i)^\s*\S*[#>\]]\s*(show|display)\b`)

// CommandSection 从整份抓取文本中切出指定命令的输出段：
// 从该命令的回显行之后开始，到下一条命令回显或文本结束为止。
// 找不到回显时返回空串
func CommandSection(raw, command string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	lowerCommand := strings.ToLower(command)

	start := -1
	for i, ln := range lines {
		if commandEchoRegex.MatchString(ln) && strings.Contains(strings.ToLower(ln), lowerCommand) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	end := len(lines)
	for i := start; i < len(lines); i++ {
		if commandEchoRegex.MatchString(lines[i]) {
			end = i
			break
		}
	}
	return strings.Join(lines[start:end], "\n")
}

// FirstMatch 返回正则在文本中第一个捕获组的修剪结果，未命中返回空串
func FirstMatch(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// AllMatches 返回正则所有命中的第一个捕获组（修剪后），用于收集列表型字段
func AllMatches(re *regexp.Regexp, text string) []interface{} {
	var out []interface{}
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if len(m) > 1 {
			if v := strings.TrimSpace(m[1]); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}
