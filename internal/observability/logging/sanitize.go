package logging

import (
	"regexp"
)

var (
	// NewsAPI キー（クエリ・ヘッダー経由）
	apiKeyParamPattern  = regexp.MustCompile(`(?i)(apiKey=)[^&\s"]+`)
	apiKeyHeaderPattern = regexp.MustCompile(`(?i)(X-Api-Key:\s*)\S+`)

	// DSN / Redis URL 内のパスワード（ユーザー名なしの redis://:pw@ も含む）
	urlPasswordPattern = regexp.MustCompile(`://([^:/@\s]*):([^@\s]+)@`)
)

// SanitizeError masks credentials in an error message before it is logged.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}****")
	msg = apiKeyHeaderPattern.ReplaceAllString(msg, "${1}****")
	msg = urlPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
