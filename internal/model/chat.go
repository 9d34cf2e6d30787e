package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IDPrefix is the prefix used for chat IDs in display and JSON output.
const IDPrefix = "CHAT"

// FormatID returns the display form of a chat ID, e.g. "CHAT-5".
func FormatID(id int) string {
	return fmt.Sprintf("%s-%d", IDPrefix, id)
}

// ParseID accepts both "CHAT-5" and "5" and returns the numeric ID.
// The prefix check is case-insensitive; len(prefix) is safe to use for
// slicing because IDPrefix is ASCII and ToUpper preserves its byte length.
func ParseID(input string) (int, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, fmt.Errorf("empty chat ID")
	}

	prefix := IDPrefix + "-"
	if strings.HasPrefix(strings.ToUpper(s), prefix) {
		s = s[len(prefix):]
	}

	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid chat ID %q: %w", input, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid chat ID %q: must be positive", input)
	}

	return id, nil
}

// Chat is a conversation that owns an ordered list of messages.
type Chat struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

// NameOrDefault returns the chat name, falling back to the formatted ID.
func (c Chat) NameOrDefault() string {
	if c.Name == "" {
		return FormatID(c.ID)
	}
	return c.Name
}

// ChatSummary is a chat with aggregate message statistics, used by listings.
type ChatSummary struct {
	Chat
	MessageCount int
	LastActivity *time.Time
}

// chatJSON is the JSON wire format for Chat.
type chatJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// MarshalJSON implements custom JSON serialization for Chat.
func (c Chat) MarshalJSON() ([]byte, error) {
	return json.Marshal(chatJSON{
		ID:        FormatID(c.ID),
		Name:      c.Name,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// UnmarshalJSON implements custom JSON deserialization for Chat.
func (c *Chat) UnmarshalJSON(data []byte) error {
	var j chatJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	id, err := ParseID(j.ID)
	if err != nil {
		return fmt.Errorf("parsing chat id: %w", err)
	}
	c.ID = id
	c.Name = j.Name

	createdAt, err := time.Parse(time.RFC3339, j.CreatedAt)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	c.CreatedAt = createdAt

	return nil
}

// MarshalJSON flattens the embedded chat and adds the aggregate fields.
func (s ChatSummary) MarshalJSON() ([]byte, error) {
	j := struct {
		chatJSON
		MessageCount int     `json:"message_count"`
		LastActivity *string `json:"last_activity,omitempty"`
	}{
		chatJSON: chatJSON{
			ID:        FormatID(s.ID),
			Name:      s.Name,
			CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		},
		MessageCount: s.MessageCount,
	}
	if s.LastActivity != nil {
		ts := s.LastActivity.UTC().Format(time.RFC3339)
		j.LastActivity = &ts
	}
	return json.Marshal(j)
}
