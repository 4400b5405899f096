package advice

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts model markdown output to HTML for display.
func RenderMarkdown(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
