package team

import (
	"strings"

	"github.com/a-h/templ"

	"github.com/retromat/retromat-backend/modules/team/presentation/viewmodels"
	"github.com/retromat/retromat-backend/pkg/intl"
)

type TitlesProps struct {
	Page *viewmodels.TitlesPage
}

func Titles(props *TitlesProps) templ.Component {
	return component(func(h *htmlWriter) {
		page := props.Page
		h.render(Layout(intl.MustT(h.ctx, "Team.Titles.Title"), component(func(h *htmlWriter) {
			h.raw(`<p id="total-combinations">`)
			h.t("Team.Titles.TotalCombinations", map[string]any{"Count": page.TotalCombinations})
			h.raw(`</p><h2>`)
			h.t("Team.Titles.Sequences")
			h.raw(`</h2><ol start="0">`)
			for _, seq := range page.Sequences {
				h.raw(`<li><a href="/`)
				h.text(page.Locale)
				h.raw(`/team/experiment/titles/sequence/`)
				h.textf("%d", seq.ID)
				h.raw(`">`)
				h.text(strings.Join(seq.Groups, " + "))
				h.raw(`</a> (`)
				h.textf("%d", seq.Combinations)
				h.raw(`)</li>`)
			}
			h.raw(`</ol><h2>`)
			h.t("Team.Titles.Groups")
			h.raw(`</h2><dl>`)
			for _, group := range page.Groups {
				h.raw(`<dt>`)
				h.text(group.ID)
				h.raw(`</dt><dd><ol start="0">`)
				for _, term := range group.Terms {
					h.raw(`<li>`)
					h.text(term)
					h.raw(`</li>`)
				}
				h.raw(`</ol></dd>`)
			}
			h.raw(`</dl>`)
		})))
	})
}

type SequenceProps struct {
	Page *viewmodels.SequencePage
}

func TitlesBySequence(props *SequenceProps) templ.Component {
	return component(func(h *htmlWriter) {
		page := props.Page
		title := intl.MustT(h.ctx, "Team.Titles.SequenceTitle", map[string]any{"ID": page.SequenceID})
		h.render(Layout(title, component(func(h *htmlWriter) {
			h.raw(`<p>`)
			h.text(strings.Join(page.Groups, " + "))
			h.raw(`</p><p id="combinations-in-sequence">`)
			h.t("Team.Titles.CombinationsInSequence", map[string]any{
				"Count": page.CombinationsInSequence,
				"Total": page.TotalCombinations,
			})
			h.raw(`</p><form method="get"><input type="search" name="q" value="`)
			h.text(page.Query)
			h.raw(`" placeholder="`)
			h.t("Team.Titles.Search")
			h.raw(`"></form><table><thead><tr><th>ID</th><th>`)
			h.t("Team.Titles.Rendered")
			h.raw(`</th></tr></thead><tbody>`)
			for _, t := range page.Titles {
				h.raw(`<tr><td><code>`)
				h.text(t.ID)
				h.raw(`</code></td><td>`)
				h.text(t.Text)
				h.raw(`</td></tr>`)
			}
			h.raw(`</tbody></table>`)
		})))
	})
}
