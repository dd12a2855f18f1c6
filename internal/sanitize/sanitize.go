// Package sanitize чистит свободный текст перед записью в БД:
// HTML-теги удаляются, спецсимволы экранируются.
// Применяется ко всем открытым текстовым полям; пароли и шифртекст
// через него не проходят.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// strict-политика не оставляет ни одного тега
var policy = bluemonday.StrictPolicy()

// Clean возвращает строку без HTML-разметки.
func Clean(s string) string {
	return policy.Sanitize(s)
}
