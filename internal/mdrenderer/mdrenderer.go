// Package mdrenderer turns user-submitted markdown into HTML that is safe
// to inline in a page. Everything goes through the sanitizer, post bodies
// and comments alike.
package mdrenderer

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md        goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	return &Renderer{
		md:        md,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (r *Renderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return r.sanitizer.SanitizeBytes(buf.Bytes()), nil
}
