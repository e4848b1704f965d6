package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	applog "github.com/darkkaiser/storefront-server/pkg/log"
)

// Excerpt 리치 텍스트 HTML에서 태그를 제거하고 지정된 길이로 잘라
// 미리보기용 요약문을 생성합니다.
//
// 공백 문자는 하나로 축약되며, 잘린 경우 말줄임표(…)가 덧붙습니다.
// 파싱에 실패하면 빈 문자열을 반환합니다.
func Excerpt(html string, maxLen int) string {
	if html == "" || maxLen <= 0 {
		return ""
	}

	// 인접한 블록 요소의 텍스트가 공백 없이 이어 붙는 것을 방지합니다.
	// 늘어난 공백은 아래에서 하나로 축약됩니다.
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(html, "<", " <")))
	if err != nil {
		applog.WithComponent(component).WithError(err).Warn("리치 텍스트 파싱 실패")
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	return strings.TrimSpace(string(runes[:maxLen])) + "…"
}
