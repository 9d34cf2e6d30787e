package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// CreateChat inserts a new chat and returns its ID.
func CreateChat(db *sql.DB, chat *model.Chat) (int, error) {
	createdAt := chat.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := db.Exec(
		`INSERT INTO chats (name, created_at) VALUES (?, ?)`,
		chat.Name,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting chat: %w", err)
	}

	id64, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}
	return int(id64), nil
}

// GetChat retrieves a chat by ID.
func GetChat(db *sql.DB, id int) (*model.Chat, error) {
	row := db.QueryRow(`SELECT id, name, created_at FROM chats WHERE id = ?`, id)

	c, err := scanChatFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning chat: %w", err)
	}
	return c, nil
}

// ListChats returns every chat with its message count and the timestamp of
// its most recent message, most recently active first.
func ListChats(db *sql.DB) ([]*model.ChatSummary, error) {
	rows, err := db.Query(
		`SELECT c.id, c.name, c.created_at, COUNT(m.id), MAX(m.timestamp)
		 FROM chats c LEFT JOIN messages m ON m.chat_id = c.id
		 GROUP BY c.id
		 ORDER BY COALESCE(MAX(m.timestamp), c.created_at) DESC, c.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying chats: %w", err)
	}
	defer rows.Close()

	chats := make([]*model.ChatSummary, 0)
	for rows.Next() {
		var s model.ChatSummary
		var createdAt string
		var last sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &createdAt, &s.MessageCount, &last); err != nil {
			return nil, fmt.Errorf("scanning chat row: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if last.Valid {
			t, err := time.Parse(time.RFC3339, last.String)
			if err != nil {
				return nil, fmt.Errorf("parsing last activity: %w", err)
			}
			s.LastActivity = &t
		}
		chats = append(chats, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat rows: %w", err)
	}

	return chats, nil
}

// CountChats returns the total number of chats.
func CountChats(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM chats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chats: %w", err)
	}
	return n, nil
}

// InsertChatWithID inserts a chat with a specific ID, skipping if the ID
// already exists. Returns true if the row was inserted. Must be called
// within an existing transaction.
func InsertChatWithID(tx *sql.Tx, chat *model.Chat) (bool, error) {
	res, err := tx.Exec(
		`INSERT OR IGNORE INTO chats (id, name, created_at) VALUES (?, ?, ?)`,
		chat.ID,
		chat.Name,
		chat.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("inserting chat with id %d: %w", chat.ID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// scanChatFrom scans a single chat from any scanner (*sql.Row or *sql.Rows).
func scanChatFrom(s scanner) (*model.Chat, error) {
	var c model.Chat
	var createdAt string

	if err := s.Scan(&c.ID, &c.Name, &createdAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	c.CreatedAt = t

	return &c, nil
}
