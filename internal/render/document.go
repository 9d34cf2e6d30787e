package render

import (
	"fmt"
	"html"
)

// documentStyle is the inline stylesheet of an exported chat.
const documentStyle = `
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #eceff1; margin: 0; padding: 16px; }
h1 { font-size: 20px; margin: 0 0 16px; color: #37474f; }
ul { list-style: none; margin: 0; padding: 0; max-width: 800px; }
.message { display: flex; align-items: flex-end; margin: 8px 0; }
.message.outgoing { flex-direction: row-reverse; }
.author-avatar { width: 36px; height: 36px; margin: 0 8px; flex-shrink: 0; }
.author-avatar img { width: 36px; height: 36px; border-radius: 50%; object-fit: cover; }
.author-avatar .label { width: 36px; height: 36px; border-radius: 50%; color: #fff; text-align: center; line-height: 36px; font-weight: bold; }
.msg-container { background: #fff; border-radius: 12px; padding: 8px 12px; max-width: 70%; }
.message.outgoing .msg-container { background: #efffde; }
.message.error .msg-container { background: #ffebee; color: #b71c1c; }
.author { display: block; font-weight: bold; font-size: 13px; margin-bottom: 2px; }
.text { white-space: pre-wrap; word-wrap: break-word; }
.attachment img { max-width: 100%; border-radius: 8px; }
.metadata { display: flex; justify-content: flex-end; align-items: center; gap: 4px; font-size: 11px; color: #78909c; margin-top: 4px; }
.padlock-icon { width: 10px; height: 10px; border: 1px solid #78909c; border-radius: 2px; }
`

// Document wraps a rendered message list in a standalone HTML page.
func Document(title, body string) string {
	t := html.EscapeString(title)
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>%s</style>
</head>
<body>
<h1>%s</h1>
%s
</body>
</html>
`, t, documentStyle, t, body)
}
