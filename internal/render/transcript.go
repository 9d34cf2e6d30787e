package render

import (
	"fmt"
	"strings"

	humanize "github.com/dustin/go-humanize"

	"github.com/charmbracelet/lipgloss"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// RenderTranscript renders a chat for the terminal: a header followed by
// each message with author, relative time, attachment and markdown body.
func RenderTranscript(chat *model.Chat, messages []*model.Message, authors model.Authors, selfID int) string {
	if !ColorsEnabled() {
		return renderPlainTranscript(chat, messages, authors, selfID)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	header := fmt.Sprintf("%s  %s",
		headerStyle.Render(chat.NameOrDefault()),
		dimStyle.Render(fmt.Sprintf("%s · %d messages", model.FormatID(chat.ID), len(messages))),
	)

	if len(messages) == 0 {
		return header + "\n\n" + EmptyState("No messages in this chat.", "", false)
	}

	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, renderTranscriptMessage(m, authors.Get(m.FromID), m.FromID == selfID))
	}

	return header + "\n\n" + strings.Join(parts, "\n\n")
}

func renderTranscriptMessage(m *model.Message, author model.ContactInfo, outgoing bool) string {
	authorColor := lipgloss.Color("12")
	if outgoing {
		authorColor = lipgloss.Color("10")
	}
	authorStyle := lipgloss.NewStyle().Bold(true).Foreground(authorColor)
	timeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	line := fmt.Sprintf("%s  %s", authorStyle.Render(author.Name), timeStyle.Render(humanize.Time(m.Timestamp)))
	if m.Encrypted {
		line += " " + timeStyle.Render("\U0001F512") // 🔒
	}

	var body []string
	if m.HasFile() {
		body = append(body, fileStyle.Render("\U0001F4CE "+m.Filename())) // 📎
	}
	if m.Text != "" {
		text, err := RenderMarkdown(m.Text)
		if err != nil {
			text = m.Text
		}
		body = append(body, text)
	}

	if len(body) == 0 {
		return line
	}
	return line + "\n" + strings.Join(body, "\n")
}

func renderPlainTranscript(chat *model.Chat, messages []*model.Message, authors model.Authors, selfID int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s, %d messages)\n", chat.NameOrDefault(), model.FormatID(chat.ID), len(messages))
	if len(messages) == 0 {
		b.WriteString("\nNo messages in this chat.\n")
		return b.String()
	}

	for _, m := range messages {
		marker := "<"
		if m.FromID == selfID {
			marker = ">"
		}
		fmt.Fprintf(&b, "\n%s %s  %s", marker, authors.Get(m.FromID).Name, humanize.Time(m.Timestamp))
		if m.Encrypted {
			b.WriteString(" [encrypted]")
		}
		b.WriteString("\n")
		if m.HasFile() {
			fmt.Fprintf(&b, "  [file] %s\n", m.Filename())
		}
		if m.Text != "" {
			fmt.Fprintf(&b, "  %s\n", m.Text)
		}
	}

	return b.String()
}
