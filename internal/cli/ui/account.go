package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/lvyanru/chat-history/internal/cli/types"
)

// RenderAccount renders the account behind the saved token as aligned key/value lines.
func RenderAccount(account *types.Account, server string) string {
	return keyValues([][2]string{
		{"Username", account.Username},
		{"User ID", account.ID},
		{"Server", server},
		{"Created", FormatTime(&account.CreatedAt)},
		{"Last login", FormatTime(account.LastLoginAt)},
	})
}

// RenderSession renders a fresh login for the success panel.
func RenderSession(session *types.Session, username, configPath string) string {
	userID := "-"
	if session.Account != nil {
		username = session.Account.Username
		userID = session.Account.ID
	}
	return keyValues([][2]string{
		{"Username", username},
		{"User ID", userID},
		{"Token expires", FormatTime(&session.Expire)},
		{"Config saved", configPath},
	})
}

// FormatTime prints t in local time, "-" when unset.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func keyValues(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		key := fmt.Sprintf("%-*s", width+1, r[0]+":")
		lines[i] = Styles.Muted.Render(key) + " " + r[1]
	}
	return strings.Join(lines, "\n")
}
