package parser

import "regexp"

// Platform 设备平台标识（封闭枚举，检测后不再变更）
type Platform string

const (
	PlatformHuaweiVRP     Platform = "huawei_vrp"
	PlatformHuaweiYunShan Platform = "huawei_yunshan"
	PlatformCiscoIOS      Platform = "cisco_ios"
	PlatformCiscoNXOS     Platform = "cisco_nxos"
	PlatformArubaAOSCX    Platform = "aruba_aoscx"
	PlatformUnknown       Platform = "unknown"
)

// Signature 平台签名：内容特征 + 命令关键字，两者同时命中才算识别成功，
// 避免仅提到厂商名称的文本被误判
type Signature struct {
	Platform Platform
	Content  *regexp.Regexp
	Command  *regexp.Regexp
}

// signatures 平台签名表（有序）。更具体的厂商特征排在前面：
// 华为两个变体优先于通用的 Cisco 特征，顺序即唯一的优先级规则
var signatures = []Signature{
	{PlatformHuaweiVRP, regexp.MustCompile(`(?i)(Huawei Versatile Routing Platform|VRP \(R\))`), regexp.MustCompile(`(?i)display`)},
	{PlatformHuaweiYunShan, regexp.MustCompile(`(?i)Huawei YunShan OS`), regexp.MustCompile(`(?i)display`)},
	{PlatformCiscoIOS, regexp.MustCompile(`(?i)Cisco IOS`), regexp.MustCompile(`(?i)show`)},
	{PlatformCiscoNXOS, regexp.MustCompile(`(?i)(Nexus Operating System|NX-OS)`), regexp.MustCompile(`(?i)show`)},
	{PlatformArubaAOSCX, regexp.MustCompile(`(?i)ArubaOS-CX`), regexp.MustCompile(`(?i)show`)},
}

// Detect 按签名表顺序检测平台，返回第一个内容与命令特征都命中的平台；
// 都未命中返回 unknown
func Detect(text string) Platform {
	for _, sig := range signatures {
		if sig.Content.MatchString(text) && sig.Command.MatchString(text) {
			return sig.Platform
		}
	}
	return PlatformUnknown
}

// Platforms 返回所有已知平台（不含 unknown），顺序与签名表一致
func Platforms() []Platform {
	out := make([]Platform, 0, len(signatures))
	for _, sig := range signatures {
		out = append(out, sig.Platform)
	}
	return out
}
