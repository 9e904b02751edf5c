package team

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/retromat/retromat-backend/pkg/intl"
)

// htmlWriter keeps the first write error so markup can be emitted without
// checking every call.
type htmlWriter struct {
	w   io.Writer
	ctx context.Context
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) textf(format string, args ...any) {
	h.text(fmt.Sprintf(format, args...))
}

func (h *htmlWriter) t(messageID string, data ...map[string]any) {
	h.text(intl.MustT(h.ctx, messageID, data...))
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w, ctx: ctx}
		fn(h)
		return h.err
	})
}

// Layout wraps content into the team area page chrome.
func Layout(title string, content templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		lang := "en"
		if tag, ok := intl.UseLocale(h.ctx); ok {
			lang = tag.String()
		}
		h.raw(`<!DOCTYPE html><html lang="`)
		h.text(lang)
		h.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(` | Retromat Team</title></head><body><header><nav><a href="/`)
		h.text(lang)
		h.raw(`/team/dashboard">`)
		h.t("Team.Nav.Dashboard")
		h.raw(`</a> <a href="/`)
		h.text(lang)
		h.raw(`/team/experiment/titles">`)
		h.t("Team.Nav.Titles")
		h.raw(`</a></nav></header><main><h1>`)
		h.text(title)
		h.raw(`</h1>`)
		h.render(content)
		h.raw(`</main></body></html>`)
	})
}
