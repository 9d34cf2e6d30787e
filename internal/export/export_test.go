package export

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
	"github.com/ALT-F4-LLC/chatexport/internal/render"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// topLevelItems counts <li elements directly under the outer list. Message
// fragments never nest list items.
func topLevelItems(html string) int {
	return strings.Count(html, "<li ")
}

func TestExportChatWorkedExample(t *testing.T) {
	s := newFakeStore()
	s.chats[1] = []int{1, 2}
	s.messages[1] = &model.Message{ID: 1, ChatID: 1, FromID: model.ContactIDSelf, Text: "hi", Encrypted: true, Timestamp: baseTime}
	s.messages[2] = &model.Message{ID: 2, ChatID: 1, FromID: 42, Text: "hello", Timestamp: baseTime}
	s.addContact(model.ContactIDSelf, "Me", "")
	s.addContact(42, "Alice", "")

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)

	html := result.HTML
	require.True(t, strings.HasPrefix(html, "<ul>"))
	require.True(t, strings.HasSuffix(html, "</ul>"))
	assert.Equal(t, 2, topLevelItems(html))

	items := strings.Split(strings.TrimSuffix(strings.TrimPrefix(html, "<ul>"), "</ul>"), "</li>")
	require.Len(t, items, 3) // two items plus the empty tail

	first, second := items[0], items[1]
	assert.True(t, strings.HasPrefix(first, `<li class="message outgoing">`))
	assert.Contains(t, first, `class="padlock-icon"`)

	assert.True(t, strings.HasPrefix(second, `<li class="message incoming">`))
	assert.Contains(t, second, `<span class="author" style="color: rgb(18, 126, 208);">Alice</span>`)
	assert.Contains(t, second, `<div class="author-avatar default" alt="Alice">`)
	assert.NotContains(t, second, "<img")
	assert.NotContains(t, second, "padlock-icon")

	assert.Empty(t, result.ReferencedBlobs)
	assert.NotNil(t, result.ReferencedBlobs)
}

func TestExportChatLoadFailureBecomesErrorItem(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 7, "before", "")
	s.addBrokenMessage(2)
	s.addMessage(3, 7, "after", "")
	s.addContact(7, "Alice", "")

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)

	assert.Equal(t, 3, topLevelItems(result.HTML))
	assert.Contains(t, result.HTML, `<li class="message error">`)
	assert.Contains(t, result.HTML, "message 2: not found")

	// The failed message contributes no author lookup.
	assert.Equal(t, []int{7}, s.contactCalls)
}

func TestExportChatErrorItemDoesNotAddAuthor(t *testing.T) {
	s := newFakeStore()
	s.addBrokenMessage(5)

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)

	assert.Equal(t, 1, topLevelItems(result.HTML))
	assert.Empty(t, s.contactCalls)
	assert.Empty(t, result.ReferencedBlobs)
}

func TestExportChatUnknownAuthorUsesSentinel(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 99, "who am I", "")

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)

	assert.Contains(t, result.HTML, `<span class="author" style="color: grey;">Err: Contact not found</span>`)
	assert.Contains(t, result.HTML, `style="background-color: grey">#</div>`)
}

func TestExportChatBlobsReferencedInHTML(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 7, "look", "/data/blobs/photo.jpg")
	s.addMessage(2, 8, "doc", "/data/blobs/report.pdf")
	s.addMessage(3, 7, "again", "")
	s.addContact(7, "Alice", "/avatars/alice.png")
	s.addContact(8, "Bob", "")

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)

	// Attachments in message order, then avatars in lookup order.
	assert.Equal(t, []string{"photo.jpg", "report.pdf", "alice.png"}, result.ReferencedBlobs)

	for _, name := range result.ReferencedBlobs {
		assert.Contains(t, result.HTML, render.BlobRef(name))
	}
}

func TestExportChatSelfDirection(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 1, "mine", "")
	s.addMessage(2, 7, "theirs", "")

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(result.HTML, `<li class="message outgoing">`))
	assert.Equal(t, 1, strings.Count(result.HTML, `<li class="message incoming">`))

	flipped, err := newTestExporter(s, WithSelfID(7), WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)
	assert.Contains(t, flipped.HTML, `<li class="message outgoing"><div class="author-avatar default" alt="Err: Contact not found">`)
}

func TestExportChatIdempotent(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 7, "<b>one</b>", "/x/a.png")
	s.addMessage(2, 8, "two", "")
	s.addBrokenMessage(3)
	s.addMessage(4, 7, "three", "/x/b.txt")
	s.addContact(7, "Alice", "/p/alice.jpg")
	s.addContact(8, "Bob", "/p/bob.jpg")

	e := newTestExporter(s, WithLogger(quietLogger()))

	first, err := e.ExportChat(1)
	require.NoError(t, err)
	second, err := e.ExportChat(1)
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first.ReferencedBlobs, second.ReferencedBlobs)
}

func TestExportChatEmptyChat(t *testing.T) {
	s := newFakeStore()

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)

	assert.Equal(t, "<ul></ul>", result.HTML)
	assert.Equal(t, []string{}, result.ReferencedBlobs)
}

func TestExportChatListFailure(t *testing.T) {
	s := newFakeStore()
	s.listErr = errors.New("database is locked")

	result, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, s.listErr)
}

func TestExportChatTextPolicy(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 7, "<script>x()</script>a & b", "")

	escaped, err := newTestExporter(s, WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)
	assert.Contains(t, escaped.HTML, "&lt;script&gt;x()&lt;/script&gt;a &amp; b")

	raw, err := newTestExporter(s, WithTextPolicy(render.TextRaw), WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)
	assert.Contains(t, raw.HTML, "<script>x()</script>a & b")
}

func TestExportChatTimeFormatter(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 7, "hi", "")

	result, err := newTestExporter(s,
		WithTimeFormatter(render.FixedTimeFormatter{FullText: "FULL", ShortText: "SHORT"}),
		WithLogger(quietLogger()),
	).ExportChat(1)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, `title="FULL">SHORT</span>`)
}

type initialsAppearance struct{}

func (initialsAppearance) Initial(c *model.Contact) string { return c.DisplayName()[:1] }
func (initialsAppearance) Color(*model.Contact) string     { return "teal" }

func TestExportChatAppearance(t *testing.T) {
	s := newFakeStore()
	s.addMessage(1, 7, "hi", "")
	s.addContact(7, "Alice", "")

	result, err := newTestExporter(s, WithAppearance(initialsAppearance{}), WithLogger(quietLogger())).ExportChat(1)
	require.NoError(t, err)
	assert.Contains(t, result.HTML, `<div class="label" style="background-color: teal">A</div>`)
}
