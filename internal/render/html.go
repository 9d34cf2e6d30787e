package render

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

// BlobDir is the directory, relative to the exported document, that holds
// attachments and avatars.
const BlobDir = "blobs"

// Message directions, used as CSS classes.
const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
	DirectionError    = "error"
)

// HTMLRenderer turns messages into <li> fragments of an exported chat.
// It holds no per-export state and is safe to reuse.
type HTMLRenderer struct {
	// SelfID is the contact ID of the account owner; its messages are
	// outgoing.
	SelfID int
	Policy TextPolicy
	Times  TimeFormatter
}

// NewHTMLRenderer returns a renderer with escaping enabled and the default
// date layouts.
func NewHTMLRenderer(selfID int) *HTMLRenderer {
	return &HTMLRenderer{
		SelfID: selfID,
		Policy: TextEscape,
		Times:  DefaultTimes(),
	}
}

// BlobRef returns the document-relative reference for a blob filename.
func BlobRef(filename string) string {
	return BlobDir + "/" + filename
}

// Direction returns the CSS direction class for a message author.
func (r *HTMLRenderer) Direction(fromID int) string {
	if fromID == r.SelfID {
		return DirectionOutgoing
	}
	return DirectionIncoming
}

// RenderMessage renders one message. Authors missing from the map render
// with the sentinel record.
func (r *HTMLRenderer) RenderMessage(authors model.Authors, msg *model.Message) string {
	author := authors.Get(msg.FromID)
	direction := r.Direction(msg.FromID)

	var b strings.Builder
	fmt.Fprintf(&b, `<li class="message %s">`, direction)
	b.WriteString(r.renderAvatar(author))
	b.WriteString(`<div class="msg-container">`)
	fmt.Fprintf(&b, `<span class="author" style="color: %s;">%s</span>`,
		r.Policy.plain(author.Color), r.Policy.plain(author.Name))
	b.WriteString(`<div class="msg-body">`)
	if msg.HasFile() {
		b.WriteString(r.renderAttachment(msg.Filename()))
	}
	fmt.Fprintf(&b, `<div dir="auto" class="text">%s</div>`, r.Policy.body(msg.Text))
	b.WriteString(`<div class="metadata">`)
	if msg.Encrypted {
		b.WriteString(`<div aria-label="Encryption padlock" class="padlock-icon"></div>`)
	}
	fmt.Fprintf(&b, `<span class="date date--%s" title="%s">%s</span>`,
		direction, r.Policy.plain(r.times().Full(msg.Timestamp)), r.Policy.plain(r.times().Short(msg.Timestamp)))
	b.WriteString(`<span class="spacer"></span>`)
	b.WriteString(`</div></div></div></li>`)

	return b.String()
}

// RenderError renders the placeholder for a message that failed to load.
func (r *HTMLRenderer) RenderError(err error) string {
	return fmt.Sprintf(
		`<li class="message %s"><div class="msg-container"><div class="msg-body"><div dir="auto" class="text">%s</div></div></div></li>`,
		DirectionError, r.Policy.plain(err.Error()),
	)
}

// RenderList wraps fragments in the outer list container.
func RenderList(fragments []string) string {
	return "<ul>" + strings.Join(fragments, "") + "</ul>"
}

func (r *HTMLRenderer) renderAvatar(author model.ContactInfo) string {
	name := r.Policy.plain(author.Name)
	if author.HasAvatar() {
		return fmt.Sprintf(`<div class="author-avatar"><img alt="%s" src="%s"/></div>`,
			name, r.Policy.plain(BlobRef(author.Avatar)))
	}
	return fmt.Sprintf(`<div class="author-avatar default" alt="%s"><div class="label" style="background-color: %s">%s</div></div>`,
		name, r.Policy.plain(author.Color), r.Policy.plain(author.Initial))
}

func (r *HTMLRenderer) renderAttachment(filename string) string {
	ref := r.Policy.plain(BlobRef(filename))
	name := r.Policy.plain(filename)
	if IsImage(filename) {
		return fmt.Sprintf(`<div class="attachment"><img src="%s" alt="%s"/></div>`, ref, name)
	}
	return fmt.Sprintf(`<div class="attachment"><a href="%s">%s</a></div>`, ref, name)
}

func (r *HTMLRenderer) times() TimeFormatter {
	if r.Times == nil {
		return DefaultTimes()
	}
	return r.Times
}

// IsImage reports whether a filename has an image MIME type by extension.
func IsImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	return strings.HasPrefix(mime.TypeByExtension(ext), "image/")
}
