package db

import (
	"database/sql"
	"fmt"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// ImportResult counts the rows written and skipped by ImportDump.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportDump writes every chat, contact and message of a dump in a single
// transaction, keeping their IDs. Rows whose ID already exists are skipped.
func ImportDump(db *sql.DB, dump *model.DumpData) (*ImportResult, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var result ImportResult
	count := func(inserted bool) {
		if inserted {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	// Chats before messages for the foreign key.
	for _, chat := range dump.Chats {
		inserted, err := InsertChatWithID(tx, chat)
		if err != nil {
			return nil, err
		}
		count(inserted)
	}

	for _, contact := range dump.Contacts {
		if contact.ID == model.ContactIDUnknown {
			return nil, fmt.Errorf("contact id %d is reserved", model.ContactIDUnknown)
		}
		inserted, err := InsertContactWithID(tx, contact)
		if err != nil {
			return nil, err
		}
		count(inserted)
	}

	for _, msg := range dump.Messages {
		inserted, err := InsertMessageWithID(tx, msg)
		if err != nil {
			return nil, err
		}
		count(inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import: %w", err)
	}

	return &result, nil
}

// ClearAllData deletes every chat, message and contact. The schema and meta
// table are left in place.
func ClearAllData(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tables := []string{
		"messages",
		"chats",
		"contacts",
	}
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	return tx.Commit()
}
