package model

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// Message is a single stored chat message. The exporter treats it as
// read-only.
type Message struct {
	ID        int
	ChatID    int
	FromID    int
	Text      string
	File      string // filesystem path of the attachment, empty when none
	Encrypted bool
	Timestamp time.Time
}

// Filename returns the file-name component of the attachment path, or ""
// when the message has no attachment.
func (m Message) Filename() string {
	return baseName(m.File)
}

// HasFile reports whether the message carries an attachment.
func (m Message) HasFile() bool {
	return m.Filename() != ""
}

// baseName is filepath.Base without its "." and "/" results for empty or
// root paths.
func baseName(p string) string {
	if p == "" {
		return ""
	}
	name := filepath.Base(p)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// messageJSON is the JSON wire format for Message.
type messageJSON struct {
	ID        int    `json:"id"`
	ChatID    string `json:"chat_id"`
	FromID    int    `json:"from_id"`
	Text      string `json:"text,omitempty"`
	File      string `json:"file,omitempty"`
	Encrypted bool   `json:"encrypted"`
	Timestamp string `json:"timestamp"`
}

// MarshalJSON implements custom JSON serialization for Message.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		ID:        m.ID,
		ChatID:    FormatID(m.ChatID),
		FromID:    m.FromID,
		Text:      m.Text,
		File:      m.File,
		Encrypted: m.Encrypted,
		Timestamp: m.Timestamp.UTC().Format(time.RFC3339),
	})
}

// UnmarshalJSON implements custom JSON deserialization for Message.
func (m *Message) UnmarshalJSON(data []byte) error {
	var j messageJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	chatID, err := ParseID(j.ChatID)
	if err != nil {
		return fmt.Errorf("parsing chat id: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, j.Timestamp)
	if err != nil {
		return fmt.Errorf("parsing timestamp: %w", err)
	}

	m.ID = j.ID
	m.ChatID = chatID
	m.FromID = j.FromID
	m.Text = j.Text
	m.File = j.File
	m.Encrypted = j.Encrypted
	m.Timestamp = ts

	return nil
}
