package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

const maxNameWidth = 40

// StyledText applies a lipgloss style to text when colors are enabled.
// When colors are disabled, it returns the plain text unchanged.
func StyledText(text string, style lipgloss.Style) string {
	if ColorsEnabled() {
		return style.Render(text)
	}
	return text
}

// truncate shortens a string to maxLen runes, appending an ellipsis if truncated.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// EmptyState renders a styled empty-state message with an optional contextual hint.
// When colors are enabled the message is rendered in dim gray and the hint is italic.
// When quiet is true the hint is suppressed.
func EmptyState(message, hint string, quiet bool) string {
	if !ColorsEnabled() {
		if quiet || hint == "" {
			return message
		}
		return message + "\n" + hint
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	result := dimStyle.Render(message)
	if !quiet && hint != "" {
		result += "\n" + hintStyle.Render(hint)
	}
	return result
}

// RenderChatTable renders a list of chats with their message counts and
// last activity.
func RenderChatTable(chats []*model.ChatSummary) string {
	if len(chats) == 0 {
		return EmptyState("No chats found.", "Load some with: chatexport import <file>", false)
	}

	if !ColorsEnabled() {
		return renderPlainChatTable(chats)
	}

	headers := []string{"ID", "Name", "Messages", "Last activity"}

	rows := make([][]string, 0, len(chats))
	for _, c := range chats {
		rows = append(rows, chatToRow(c))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)

			if row == table.HeaderRow {
				return s.Bold(true).Foreground(lipgloss.Color("15"))
			}

			switch col {
			case 0: // ID
				return s.Foreground(lipgloss.Color("15"))
			case 1: // Name
				return s.Bold(true)
			case 2: // Messages
				return s.Foreground(lipgloss.Color("12")).Align(lipgloss.Right)
			default:
				return s.Foreground(lipgloss.Color("8"))
			}
		})

	return t.Render()
}

func chatToRow(c *model.ChatSummary) []string {
	return []string{
		model.FormatID(c.ID),
		truncate(c.NameOrDefault(), maxNameWidth),
		strconv.Itoa(c.MessageCount),
		lastActivity(c),
	}
}

func lastActivity(c *model.ChatSummary) string {
	if c.LastActivity == nil {
		return "never"
	}
	return humanize.Time(*c.LastActivity)
}

func renderPlainChatTable(chats []*model.ChatSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %-40s %-9s %s\n", "ID", "Name", "Messages", "Last activity")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 80))

	for _, c := range chats {
		fmt.Fprintf(&b, "%-10s %-40s %-9d %s\n",
			model.FormatID(c.ID),
			truncate(c.NameOrDefault(), maxNameWidth),
			c.MessageCount,
			lastActivity(c),
		)
	}

	return b.String()
}
