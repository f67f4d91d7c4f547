package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lvyanru/chat-history/internal/cli/types"
)

// RenderHistory renders turns, oldest first, as a table.
func RenderHistory(chatID string, turns []types.Turn) string {
	if len(turns) == 0 {
		return Styles.Muted.Render(fmt.Sprintf("No history for chat %q", chatID))
	}

	rows := make([][]string, 0, len(turns))
	for i, turn := range turns {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			turn.Role,
			truncate(oneLine(turn.Value), panelWidth),
			truncate(compactJSON(turn.ResponseData), panelWidth),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Styles.Muted).
		Headers("#", "ROLE", "VALUE", "RESPONSE DATA").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Header
			}
			if col == 1 && row >= 0 && row < len(turns) {
				return roleStyle(turns[row].Role)
			}
			return Styles.Cell
		})

	summary := Styles.Summary.Render(fmt.Sprintf("%d turn(s) in chat %s", len(turns), chatID))
	return t.String() + "\n" + summary
}

// RenderHistoryJSON renders turns as indented JSON, always an array.
func RenderHistoryJSON(turns []types.Turn) (string, error) {
	if turns == nil {
		turns = []types.Turn{}
	}
	data, err := sonic.ConfigStd.MarshalIndent(turns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal history: %w", err)
	}
	return string(data), nil
}

func compactJSON(v any) string {
	if v == nil {
		return "-"
	}
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
