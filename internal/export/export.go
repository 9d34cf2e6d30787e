// Package export renders a stored chat into a standalone HTML document and
// packages it with the blobs it references.
package export

import (
	"fmt"
	"log/slog"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

// ChatStore lists the messages of a chat.
type ChatStore interface {
	ListMessageIDs(chatID int) ([]int, error)
}

// MessageStore loads single messages.
type MessageStore interface {
	LoadMessage(id int) (*model.Message, error)
}

// ContactStore loads single contacts.
type ContactStore interface {
	GetContact(id int) (*model.Contact, error)
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithSelfID sets the contact ID whose messages render as outgoing.
func WithSelfID(id int) Option {
	return func(e *Exporter) {
		e.renderer.SelfID = id
	}
}

// WithTextPolicy sets how user text is placed into the HTML.
func WithTextPolicy(p render.TextPolicy) Option {
	return func(e *Exporter) {
		e.renderer.Policy = p
	}
}

// WithTimeFormatter sets the date strings shown under messages.
func WithTimeFormatter(f render.TimeFormatter) Option {
	return func(e *Exporter) {
		if f != nil {
			e.renderer.Times = f
		}
	}
}

// WithAdjacentDedup enables consecutive-only author deduplication.
func WithAdjacentDedup(on bool) Option {
	return func(e *Exporter) {
		e.resolve.AdjacentDedup = on
	}
}

// WithAppearance sets the initial/color derivation for resolved contacts.
func WithAppearance(a Appearance) Option {
	return func(e *Exporter) {
		if a != nil {
			e.resolve.Appearance = a
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// Exporter renders chats from its stores. It keeps no state between
// exports.
type Exporter struct {
	chats    ChatStore
	messages MessageStore
	contacts ContactStore
	renderer *render.HTMLRenderer
	resolve  ResolveOptions
	log      *slog.Logger
}

// New creates an Exporter. Defaults: self ID model.ContactIDSelf, escaped
// text, default date layouts in UTC, full author deduplication and
// placeholder avatar appearance.
func New(chats ChatStore, messages MessageStore, contacts ContactStore, opts ...Option) *Exporter {
	e := &Exporter{
		chats:    chats,
		messages: messages,
		contacts: contacts,
		renderer: render.NewHTMLRenderer(model.ContactIDSelf),
		resolve:  ResolveOptions{Appearance: PlaceholderAppearance{}},
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}
	e.resolve.Logger = e.log

	return e
}

// Renderer returns the renderer used for message fragments.
func (e *Exporter) Renderer() *render.HTMLRenderer {
	return e.renderer
}

// loadResult pairs a message ID with its load outcome.
type loadResult struct {
	id  int
	msg *model.Message
	err error
}

// ExportChat renders every message of a chat in order. Messages that fail to
// load become error items and authors that cannot be resolved render with
// the sentinel record; neither fails the export. The only error returned is
// a failure to list the chat's messages.
func (e *Exporter) ExportChat(chatID int) (*model.ExportChatResult, error) {
	ids, err := e.chats.ListMessageIDs(chatID)
	if err != nil {
		return nil, fmt.Errorf("listing messages of chat %d: %w", chatID, err)
	}

	results := make([]loadResult, 0, len(ids))
	for _, id := range ids {
		msg, err := e.messages.LoadMessage(id)
		if err != nil {
			e.log.Warn("Failed to load message", "chat_id", chatID, "message_id", id, "error", err)
		}
		results = append(results, loadResult{id: id, msg: msg, err: err})
	}

	// Attachments first, in message order; avatars follow in lookup order.
	var blobs []string
	var authorIDs []int
	for _, r := range results {
		if r.err != nil {
			continue
		}
		if f := r.msg.Filename(); f != "" {
			blobs = append(blobs, f)
		}
		authorIDs = append(authorIDs, r.msg.FromID)
	}

	authors, avatars := ResolveAuthors(e.contacts, authorIDs, e.resolve)
	blobs = append(blobs, avatars...)

	fragments := make([]string, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fragments = append(fragments, e.renderer.RenderError(r.err))
			continue
		}
		fragments = append(fragments, e.renderer.RenderMessage(authors, r.msg))
	}

	e.log.Info("Exported chat",
		"chat_id", chatID,
		"messages", len(ids),
		"failed", failed,
		"authors", len(authors)-1,
		"blobs", len(blobs),
	)

	if blobs == nil {
		blobs = []string{}
	}

	return &model.ExportChatResult{
		HTML:            render.RenderList(fragments),
		ReferencedBlobs: blobs,
	}, nil
}
