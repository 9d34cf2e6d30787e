package db

import (
	"errors"
	"testing"
	"time"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

func TestCreateAndGetChat(t *testing.T) {
	db := mustInit(t)

	id := mustCreateChat(t, db, "Family")
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	chat, err := GetChat(db, id)
	if err != nil {
		t.Fatalf("GetChat: %v", err)
	}
	if chat.Name != "Family" {
		t.Errorf("Name = %q, want %q", chat.Name, "Family")
	}
	if !chat.CreatedAt.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", chat.CreatedAt)
	}
}

func TestGetChatNotFound(t *testing.T) {
	db := mustInit(t)

	if _, err := GetChat(db, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetChat(42) error = %v, want ErrNotFound", err)
	}
}

func TestListChatsOrdersByActivity(t *testing.T) {
	db := mustInit(t)

	quiet := mustCreateChat(t, db, "quiet")
	busy := mustCreateChat(t, db, "busy")
	empty := mustCreateChat(t, db, "empty")

	base := time.Date(2021, 5, 1, 12, 0, 0, 0, time.UTC)
	mustCreateMessage(t, db, &model.Message{ChatID: quiet, FromID: 1, Text: "old", Timestamp: base})
	mustCreateMessage(t, db, &model.Message{ChatID: busy, FromID: 1, Text: "a", Timestamp: base.Add(time.Hour)})
	mustCreateMessage(t, db, &model.Message{ChatID: busy, FromID: 2, Text: "b", Timestamp: base.Add(2 * time.Hour)})

	chats, err := ListChats(db)
	if err != nil {
		t.Fatalf("ListChats: %v", err)
	}
	if len(chats) != 3 {
		t.Fatalf("expected 3 chats, got %d", len(chats))
	}

	if chats[0].ID != busy || chats[1].ID != quiet || chats[2].ID != empty {
		t.Errorf("order = %d,%d,%d, want %d,%d,%d", chats[0].ID, chats[1].ID, chats[2].ID, busy, quiet, empty)
	}
	if chats[0].MessageCount != 2 {
		t.Errorf("busy MessageCount = %d, want 2", chats[0].MessageCount)
	}
	if chats[0].LastActivity == nil || !chats[0].LastActivity.Equal(base.Add(2*time.Hour)) {
		t.Errorf("busy LastActivity = %v", chats[0].LastActivity)
	}
	if chats[2].LastActivity != nil {
		t.Errorf("empty chat LastActivity = %v, want nil", chats[2].LastActivity)
	}
}

func TestCountChats(t *testing.T) {
	db := mustInit(t)

	n, err := CountChats(db)
	if err != nil {
		t.Fatalf("CountChats: %v", err)
	}
	if n != 0 {
		t.Errorf("CountChats = %d, want 0", n)
	}

	mustCreateChat(t, db, "a")
	mustCreateChat(t, db, "b")

	if n, _ = CountChats(db); n != 2 {
		t.Errorf("CountChats = %d, want 2", n)
	}
}
