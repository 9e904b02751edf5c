package team

import (
	"github.com/a-h/templ"

	"github.com/retromat/retromat-backend/modules/team/presentation/viewmodels"
	"github.com/retromat/retromat-backend/pkg/intl"
)

type DashboardProps struct {
	Page *viewmodels.DashboardPage
}

func Dashboard(props *DashboardProps) templ.Component {
	return component(func(h *htmlWriter) {
		page := props.Page
		h.render(Layout(intl.MustT(h.ctx, "Team.Dashboard.Title"), component(func(h *htmlWriter) {
			h.raw(`<section id="activity-stats"><h2>`)
			h.t("Team.Dashboard.Activities")
			h.raw(`</h2><dl><dt>`)
			h.t("Team.Dashboard.LegacyCount")
			h.raw(`</dt><dd data-stat="activities">`)
			h.textf("%d", page.Activities)
			h.raw(`</dd><dt>`)
			h.t("Team.Dashboard.TranslatableCount")
			h.raw(`</dt><dd data-stat="activity2">`)
			h.textf("%d", page.Activity2)
			h.raw(`</dd></dl>`)

			if len(page.Translations) > 0 {
				h.raw(`<table><thead><tr><th>`)
				h.t("Team.Dashboard.Locale")
				h.raw(`</th><th>`)
				h.t("Team.Dashboard.Translations")
				h.raw(`</th></tr></thead><tbody>`)
				for _, row := range page.Translations {
					h.raw(`<tr><td>`)
					h.text(row.Locale)
					h.raw(`</td><td>`)
					h.textf("%d", row.Count)
					h.raw(`</td></tr>`)
				}
				h.raw(`</tbody></table>`)
			}

			h.raw(`<form method="post" action="/`)
			h.text(page.Locale)
			h.raw(`/team/activities/import"><button type="submit">`)
			h.t("Team.Dashboard.Import")
			h.raw(`</button></form></section>`)

			h.raw(`<section><h2>`)
			h.t("Team.Dashboard.Experiments")
			h.raw(`</h2><ul><li><a href="/`)
			h.text(page.Locale)
			h.raw(`/team/experiment/titles">`)
			h.t("Team.Nav.Titles")
			h.raw(`</a></li><li><a href="/`)
			h.text(page.Locale)
			h.raw(`/team/experiment/email">`)
			h.t("Team.Nav.Email")
			h.raw(`</a></li><li><a href="/`)
			h.text(page.Locale)
			h.raw(`/team/experiment/error">`)
			h.t("Team.Nav.Error")
			h.raw(`</a></li></ul></section>`)
		})))
	})
}
