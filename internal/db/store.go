package db

import (
	"database/sql"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// Store exposes a database connection through the narrow lookups the
// exporter consumes.
type Store struct {
	DB *sql.DB
}

// NewStore wraps an open connection.
func NewStore(conn *sql.DB) *Store {
	return &Store{DB: conn}
}

// GetChat returns chat metadata.
func (s *Store) GetChat(chatID int) (*model.Chat, error) {
	return GetChat(s.DB, chatID)
}

// ListMessageIDs returns every message ID of a chat in display order.
func (s *Store) ListMessageIDs(chatID int) ([]int, error) {
	return ListMessageIDs(s.DB, chatID)
}

// LoadMessage loads one message.
func (s *Store) LoadMessage(id int) (*model.Message, error) {
	return GetMessage(s.DB, id)
}

// GetContact loads one contact.
func (s *Store) GetContact(id int) (*model.Contact, error) {
	return GetContact(s.DB, id)
}
