package auth

import (
	"net/url"
	"strings"
)

// LooksLikeReference 判断 credential 是否是 URL 形式的引用（例如 vault://...），而不是明文 key。
func LooksLikeReference(credential string) bool {
	u, err := url.Parse(strings.TrimSpace(credential))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// CheckExposure 返回需要提示运维的警告文本；不需要提示时返回空串。
// allowUntrusted 为 false 且 credential 是明文 key 时给出警告。
func CheckExposure(credential string, allowUntrusted bool) string {
	if allowUntrusted || strings.TrimSpace(credential) == "" || LooksLikeReference(credential) {
		return ""
	}
	return "api key is a literal secret; it may be exposed when the bridge runs in an untrusted context (set credential.allow_untrusted to acknowledge)"
}
