package model

import "fmt"

// Reserved contact IDs.
const (
	// ContactIDUnknown keys the sentinel record used when an author cannot
	// be resolved.
	ContactIDUnknown = 0
	// ContactIDSelf is the default ID of the account owner.
	ContactIDSelf = 1
)

// Contact is a stored chat participant.
type Contact struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Addr         string `json:"addr"`
	ProfileImage string `json:"profile_image,omitempty"` // filesystem path, empty when none
}

// DisplayName returns the contact's name, falling back to its address and
// finally to a generated label.
func (c Contact) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Addr != "" {
		return c.Addr
	}
	return fmt.Sprintf("Contact #%d", c.ID)
}

// AvatarFilename returns the file-name component of the profile image path,
// or "" when the contact has no profile image.
func (c Contact) AvatarFilename() string {
	return baseName(c.ProfileImage)
}

// ContactInfo is the display record an export uses for a message author.
type ContactInfo struct {
	Name    string `json:"name"`
	Initial string `json:"initial"`
	Color   string `json:"color"`
	Avatar  string `json:"avatar,omitempty"` // blob filename, empty when none
}

// HasAvatar reports whether the author has a profile image blob.
func (ci ContactInfo) HasAvatar() bool {
	return ci.Avatar != ""
}

// UnknownContact is the sentinel display record stored under
// ContactIDUnknown.
var UnknownContact = ContactInfo{
	Name:    "Err: Contact not found",
	Initial: "#",
	Color:   "grey",
}

// Authors maps author IDs to display records for one export.
type Authors map[int]ContactInfo

// NewAuthors returns a map holding only the sentinel record.
func NewAuthors() Authors {
	return Authors{ContactIDUnknown: UnknownContact}
}

// Get returns the record for id, falling back to the sentinel.
func (a Authors) Get(id int) ContactInfo {
	if ci, ok := a[id]; ok {
		return ci
	}
	if ci, ok := a[ContactIDUnknown]; ok {
		return ci
	}
	return UnknownContact
}
