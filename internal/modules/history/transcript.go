package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/bankbot/core/internal/models"
)

var transcriptEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

const transcriptStyle = `body { max-width: 48em; margin: 2em auto; padding: 0 1em; font-family: sans-serif; line-height: 1.6; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: 0.3em; }
pre { background: #f6f8fa; padding: 1em; overflow-x: auto; }
.meta { color: #666; font-size: 0.85em; }`

// RenderTranscript renders a session as a standalone HTML document, oldest
// entry first. Answer bodies are treated as markdown, retrieval payloads
// are shown as fenced JSON.
func RenderTranscript(sessionID string, entries []models.QueryHistoryModel) []byte {
	var md strings.Builder
	md.WriteString("# Session transcript\n\n")

	// Entries arrive newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		entry := &entries[i]
		md.WriteString(fmt.Sprintf("## %s\n\n", entry.QueryText))
		md.WriteString(fmt.Sprintf("<p class=\"meta\">%s · %s</p>\n\n",
			entry.Route, entry.CreatedAt.Format("2006-01-02 15:04:05")))
		md.WriteString(formatEntryBody(entry))
		md.WriteString("\n\n")
	}

	var body bytes.Buffer
	if err := transcriptEngine.Convert([]byte(md.String()), &body); err != nil {
		body.Reset()
		body.WriteString("<pre>" + template.HTMLEscapeString(md.String()) + "</pre>")
	}

	var doc strings.Builder
	doc.Grow(body.Len() + 1024)
	doc.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	doc.WriteString("<meta charset=\"UTF-8\" />\n")
	doc.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\" />\n")
	doc.WriteString("<style>\n" + transcriptStyle + "\n</style>\n")
	doc.WriteString("<title>Session " + template.HTMLEscapeString(sessionID) + "</title>\n")
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("\n</body>\n</html>")
	return []byte(doc.String())
}

func formatEntryBody(entry *models.QueryHistoryModel) string {
	if entry.Route == models.RouteAnswer {
		var payload struct {
			Answer string `json:"answer"`
		}
		if err := json.Unmarshal([]byte(entry.ResponseText), &payload); err == nil && payload.Answer != "" {
			return payload.Answer
		}
		return entry.ResponseText
	}
	return "```json\n" + entry.ResponseText + "\n```"
}
