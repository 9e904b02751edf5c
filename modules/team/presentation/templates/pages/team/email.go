package team

import (
	"github.com/a-h/templ"

	"github.com/retromat/retromat-backend/modules/team/presentation/viewmodels"
	"github.com/retromat/retromat-backend/pkg/intl"
)

type EmailProps struct {
	Page *viewmodels.EmailPage
}

func EmailExperiment(props *EmailProps) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(Layout(intl.MustT(h.ctx, "Team.Email.Title"), component(func(h *htmlWriter) {
			h.raw(`<p>`)
			h.t("Team.Email.Sent", map[string]any{"Recipient": props.Page.Recipient})
			h.raw(`</p><p><strong id="email-subject">`)
			h.text(props.Page.Subject)
			h.raw(`</strong></p>`)
		})))
	})
}
