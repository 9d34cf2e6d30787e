package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// CreateContact inserts a contact. Contact IDs are assigned by the caller
// because messages refer to authors by a stable ID; ContactIDUnknown is
// reserved and rejected.
func CreateContact(db *sql.DB, contact *model.Contact) error {
	if contact.ID == model.ContactIDUnknown {
		return fmt.Errorf("contact id %d is reserved", model.ContactIDUnknown)
	}

	_, err := db.Exec(
		`INSERT INTO contacts (id, name, addr, profile_image) VALUES (?, ?, ?, ?)`,
		contact.ID,
		contact.Name,
		contact.Addr,
		nullableString(contact.ProfileImage),
	)
	if err != nil {
		return fmt.Errorf("inserting contact %d: %w", contact.ID, err)
	}
	return nil
}

// GetContact retrieves a contact by ID.
func GetContact(db *sql.DB, id int) (*model.Contact, error) {
	row := db.QueryRow(
		`SELECT id, name, addr, profile_image FROM contacts WHERE id = ?`, id,
	)

	c, err := scanContactFrom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}
	return c, nil
}

// ListContacts returns all contacts ordered by ID.
func ListContacts(db *sql.DB) ([]*model.Contact, error) {
	rows, err := db.Query(`SELECT id, name, addr, profile_image FROM contacts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*model.Contact, 0)
	for rows.Next() {
		c, err := scanContactFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}

	return contacts, nil
}

// InsertContactWithID inserts a contact, skipping if the ID already exists.
// Returns true if the row was inserted. Must be called within an existing
// transaction.
func InsertContactWithID(tx *sql.Tx, contact *model.Contact) (bool, error) {
	res, err := tx.Exec(
		`INSERT OR IGNORE INTO contacts (id, name, addr, profile_image) VALUES (?, ?, ?, ?)`,
		contact.ID,
		contact.Name,
		contact.Addr,
		nullableString(contact.ProfileImage),
	)
	if err != nil {
		return false, fmt.Errorf("inserting contact with id %d: %w", contact.ID, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// scanContactFrom scans a single contact from any scanner (*sql.Row or *sql.Rows).
func scanContactFrom(s scanner) (*model.Contact, error) {
	var c model.Contact
	var profileImage sql.NullString

	if err := s.Scan(&c.ID, &c.Name, &c.Addr, &profileImage); err != nil {
		return nil, err
	}
	c.ProfileImage = profileImage.String

	return &c, nil
}

// nullableString maps "" to SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
