package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFormatID(t *testing.T) {
	if got := FormatID(5); got != "CHAT-5" {
		t.Errorf("FormatID(5) = %q, want %q", got, "CHAT-5")
	}
	if got := FormatID(42); got != "CHAT-42" {
		t.Errorf("FormatID(42) = %q, want %q", got, "CHAT-42")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"CHAT-5", 5, false},
		{"chat-5", 5, false},
		{"5", 5, false},
		{" 42 ", 42, false},
		{"", 0, true},
		{"CHAT-", 0, true},
		{"abc", 0, true},
		{"CHAT-0", 0, true},
		{"CHAT--1", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestChatNameOrDefault(t *testing.T) {
	if got := (Chat{ID: 3, Name: "Family"}).NameOrDefault(); got != "Family" {
		t.Errorf("NameOrDefault() = %q, want %q", got, "Family")
	}
	if got := (Chat{ID: 3}).NameOrDefault(); got != "CHAT-3" {
		t.Errorf("NameOrDefault() = %q, want %q", got, "CHAT-3")
	}
}

func TestContactDisplayName(t *testing.T) {
	tests := []struct {
		contact Contact
		want    string
	}{
		{Contact{ID: 7, Name: "Alice", Addr: "alice@example.org"}, "Alice"},
		{Contact{ID: 7, Addr: "alice@example.org"}, "alice@example.org"},
		{Contact{ID: 7}, "Contact #7"},
	}

	for _, tt := range tests {
		if got := tt.contact.DisplayName(); got != tt.want {
			t.Errorf("DisplayName() = %q, want %q", got, tt.want)
		}
	}
}

func TestFilenameComponents(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ""},
		{"/data/blobs/photo.jpg", "photo.jpg"},
		{"photo.jpg", "photo.jpg"},
		{"/", ""},
		{"/data/avatars/", "avatars"},
	}

	for _, tt := range tests {
		m := Message{File: tt.path}
		if got := m.Filename(); got != tt.want {
			t.Errorf("Message{File: %q}.Filename() = %q, want %q", tt.path, got, tt.want)
		}
		if m.HasFile() != (tt.want != "") {
			t.Errorf("Message{File: %q}.HasFile() = %v", tt.path, m.HasFile())
		}
		c := Contact{ProfileImage: tt.path}
		if got := c.AvatarFilename(); got != tt.want {
			t.Errorf("Contact{ProfileImage: %q}.AvatarFilename() = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestAuthorsGetFallsBackToSentinel(t *testing.T) {
	authors := NewAuthors()
	authors[7] = ContactInfo{Name: "Alice", Initial: "#", Color: "rgb(18, 126, 208)"}

	if got := authors.Get(7); got.Name != "Alice" {
		t.Errorf("Get(7).Name = %q, want %q", got.Name, "Alice")
	}
	if got := authors.Get(99); got != UnknownContact {
		t.Errorf("Get(99) = %+v, want sentinel", got)
	}
	if got := authors[ContactIDUnknown]; got != UnknownContact {
		t.Errorf("authors[0] = %+v, want sentinel", got)
	}

	var empty Authors
	if got := empty.Get(7); got != UnknownContact {
		t.Errorf("nil Authors Get(7) = %+v, want sentinel", got)
	}
}

func TestUnknownContactValues(t *testing.T) {
	if UnknownContact.Name != "Err: Contact not found" {
		t.Errorf("Name = %q", UnknownContact.Name)
	}
	if UnknownContact.Initial != "#" || UnknownContact.Color != "grey" {
		t.Errorf("Initial/Color = %q/%q, want #/grey", UnknownContact.Initial, UnknownContact.Color)
	}
	if UnknownContact.HasAvatar() {
		t.Error("sentinel must not carry an avatar")
	}
}

func TestMessageJSON(t *testing.T) {
	m := Message{
		ID:        10,
		ChatID:    2,
		FromID:    7,
		Text:      "hi",
		File:      "/data/blobs/a.png",
		Encrypted: true,
		Timestamp: time.Date(2020, 2, 25, 15, 49, 0, 0, time.UTC),
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["chat_id"] != "CHAT-2" {
		t.Errorf("chat_id = %v, want CHAT-2", raw["chat_id"])
	}
	if raw["timestamp"] != "2020-02-25T15:49:00Z" {
		t.Errorf("timestamp = %v", raw["timestamp"])
	}

	var back Message
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.ChatID != 2 || back.FromID != 7 || !back.Encrypted || !back.Timestamp.Equal(m.Timestamp) {
		t.Errorf("decoded = %+v, want %+v", back, m)
	}
}

func TestMessageJSONRejectsBadChatID(t *testing.T) {
	var m Message
	err := json.Unmarshal([]byte(`{"id":1,"chat_id":"nope","from_id":1,"timestamp":"2020-02-25T15:49:00Z"}`), &m)
	if err == nil {
		t.Error("expected error for invalid chat_id")
	}
}

func TestDumpDataDecodes(t *testing.T) {
	input := `{
		"version": 1,
		"chats": [{"id": "CHAT-1", "name": "Family", "created_at": "2020-01-01T00:00:00Z"}],
		"contacts": [{"id": 7, "name": "Alice", "addr": "alice@example.org", "profile_image": "/p/alice.jpg"}],
		"messages": [{"id": 10, "chat_id": "CHAT-1", "from_id": 7, "text": "hi", "encrypted": false, "timestamp": "2020-02-25T15:49:00Z"}]
	}`

	var dump DumpData
	if err := json.Unmarshal([]byte(input), &dump); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(dump.Chats) != 1 || dump.Chats[0].ID != 1 || dump.Chats[0].Name != "Family" {
		t.Errorf("chats = %+v", dump.Chats)
	}
	if len(dump.Contacts) != 1 || dump.Contacts[0].AvatarFilename() != "alice.jpg" {
		t.Errorf("contacts = %+v", dump.Contacts)
	}
	if len(dump.Messages) != 1 || dump.Messages[0].ChatID != 1 {
		t.Errorf("messages = %+v", dump.Messages)
	}
}
