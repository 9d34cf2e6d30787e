package export

import (
	"log/slog"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// Appearance derives the avatar initial and color of a resolved contact.
type Appearance interface {
	Initial(c *model.Contact) string
	Color(c *model.Contact) string
}

// PlaceholderAppearance gives every resolved contact the same initial and
// color.
type PlaceholderAppearance struct{}

// PlaceholderColor is the avatar color of every resolved contact.
const PlaceholderColor = "rgb(18, 126, 208)"

func (PlaceholderAppearance) Initial(*model.Contact) string { return "#" }
func (PlaceholderAppearance) Color(*model.Contact) string   { return PlaceholderColor }

// ResolveOptions control author resolution.
type ResolveOptions struct {
	// AdjacentDedup only collapses consecutive duplicate author IDs, so an
	// author who appears again after someone else is looked up (and their
	// avatar listed) again.
	AdjacentDedup bool
	Appearance    Appearance
	Logger        *slog.Logger
}

// ResolveAuthors looks up each distinct author and returns the display map,
// which always holds the sentinel under model.ContactIDUnknown, and the avatar
// filenames discovered, in lookup order. Failed lookups are skipped; those
// authors fall back to the sentinel when rendered.
func ResolveAuthors(contacts ContactStore, authorIDs []int, opts ResolveOptions) (model.Authors, []string) {
	appearance := opts.Appearance
	if appearance == nil {
		appearance = PlaceholderAppearance{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	ids := DedupIDs(authorIDs)
	if opts.AdjacentDedup {
		ids = DedupAdjacent(authorIDs)
	}

	authors := model.NewAuthors()
	var avatars []string
	for _, id := range ids {
		if id == model.ContactIDUnknown {
			continue
		}
		c, err := contacts.GetContact(id)
		if err != nil {
			log.Debug("Contact lookup failed, using sentinel", "contact_id", id, "error", err)
			continue
		}

		avatar := c.AvatarFilename()
		if avatar != "" {
			avatars = append(avatars, avatar)
		}

		authors[id] = model.ContactInfo{
			Name:    c.DisplayName(),
			Initial: appearance.Initial(c),
			Color:   appearance.Color(c),
			Avatar:  avatar,
		}
	}

	return authors, avatars
}

// DedupAdjacent removes consecutive repeats, keeping order.
func DedupAdjacent(ids []int) []int {
	out := make([]int, 0, len(ids))
	for i, id := range ids {
		if i > 0 && ids[i-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}

// DedupIDs removes every repeat, keeping first-seen order.
func DedupIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
