package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// CreateMessage inserts a message into an existing chat and returns its ID.
func CreateMessage(db *sql.DB, msg *model.Message) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM chats WHERE id = ?)", msg.ChatID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("checking chat existence: %w", err)
	}
	if !exists {
		return 0, ErrNotFound
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := tx.Exec(
		`INSERT INTO messages (chat_id, from_id, text, file, encrypted, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ChatID,
		msg.FromID,
		nullableString(msg.Text),
		nullableString(msg.File),
		msg.Encrypted,
		ts.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting message: %w", err)
	}

	id64, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return int(id64), nil
}

// GetMessage retrieves a message by ID.
func GetMessage(db *sql.DB, id int) (*model.Message, error) {
	row := db.QueryRow(
		`SELECT id, chat_id, from_id, text, file, encrypted, timestamp
		 FROM messages WHERE id = ?`, id,
	)

	m, err := scanMessageFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("message %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning message %d: %w", id, err)
	}
	return m, nil
}

// ListMessageIDs returns the IDs of every message in a chat in display
// order (timestamp ascending, ties broken by ID). There is no paging.
func ListMessageIDs(db *sql.DB, chatID int) ([]int, error) {
	rows, err := db.Query(
		`SELECT id FROM messages WHERE chat_id = ? ORDER BY timestamp ASC, id ASC`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying message ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning message id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message ids: %w", err)
	}

	return ids, nil
}

// ListMessages returns every message in a chat in display order.
func ListMessages(db *sql.DB, chatID int) ([]*model.Message, error) {
	rows, err := db.Query(
		`SELECT id, chat_id, from_id, text, file, encrypted, timestamp
		 FROM messages WHERE chat_id = ? ORDER BY timestamp ASC, id ASC`,
		chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		m, err := scanMessageFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	return messages, nil
}

// InsertMessageWithID inserts a message with a specific ID, skipping if the
// ID already exists. Returns true if the row was inserted. Must be called
// within an existing transaction.
func InsertMessageWithID(tx *sql.Tx, msg *model.Message) (bool, error) {
	res, err := tx.Exec(
		`INSERT OR IGNORE INTO messages (id, chat_id, from_id, text, file, encrypted, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID,
		msg.ChatID,
		msg.FromID,
		nullableString(msg.Text),
		nullableString(msg.File),
		msg.Encrypted,
		msg.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("inserting message with id %d: %w", msg.ID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// scanMessageFrom scans a single message from any scanner (*sql.Row or *sql.Rows).
func scanMessageFrom(s scanner) (*model.Message, error) {
	var m model.Message
	var text, file sql.NullString
	var ts string

	if err := s.Scan(&m.ID, &m.ChatID, &m.FromID, &text, &file, &m.Encrypted, &ts); err != nil {
		return nil, err
	}
	m.Text = text.String
	m.File = file.String

	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}
	m.Timestamp = t

	return &m, nil
}
