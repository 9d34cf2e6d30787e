package db

import (
	"errors"
	"testing"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

func TestCreateAndGetContact(t *testing.T) {
	db := mustInit(t)

	want := &model.Contact{ID: 7, Name: "Alice", Addr: "alice@example.org", ProfileImage: "/p/alice.jpg"}
	if err := CreateContact(db, want); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	got, err := GetContact(db, 7)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if *got != *want {
		t.Errorf("GetContact = %+v, want %+v", got, want)
	}
}

func TestContactWithoutProfileImage(t *testing.T) {
	db := mustInit(t)

	if err := CreateContact(db, &model.Contact{ID: 8, Name: "Bob"}); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	var isNull bool
	if err := db.QueryRow("SELECT profile_image IS NULL FROM contacts WHERE id = 8").Scan(&isNull); err != nil {
		t.Fatalf("querying profile_image: %v", err)
	}
	if !isNull {
		t.Error("expected NULL profile_image for empty path")
	}

	got, err := GetContact(db, 8)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if got.AvatarFilename() != "" {
		t.Errorf("AvatarFilename = %q, want empty", got.AvatarFilename())
	}
}

func TestCreateContactRejectsReservedID(t *testing.T) {
	db := mustInit(t)

	if err := CreateContact(db, &model.Contact{ID: model.ContactIDUnknown, Name: "ghost"}); err == nil {
		t.Error("expected error for reserved contact id")
	}
}

func TestGetContactNotFound(t *testing.T) {
	db := mustInit(t)

	if _, err := GetContact(db, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetContact(99) error = %v, want ErrNotFound", err)
	}
}

func TestListContactsOrderedByID(t *testing.T) {
	db := mustInit(t)

	for _, id := range []int{9, 2, 5} {
		if err := CreateContact(db, &model.Contact{ID: id}); err != nil {
			t.Fatalf("CreateContact(%d): %v", id, err)
		}
	}

	contacts, err := ListContacts(db)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 3 || contacts[0].ID != 2 || contacts[1].ID != 5 || contacts[2].ID != 9 {
		t.Errorf("unexpected order: %+v", contacts)
	}
}
