package api

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/surveyguy/surveykit/handler"
	"github.com/surveyguy/surveykit/pkg/entitlement"
	"github.com/surveyguy/surveykit/pkg/gate"
)

// integrationsPage shows API credentials help to plans with API access and
// an upgrade prompt to everyone else.
func (a *API) integrationsPage(ctx handler.Context, _ struct{}) handler.Response {
	p := ProfileFromContext(ctx)
	content := gate.Gate(p.Plan, entitlement.PathIntegrationsAPI, apiAccessPanel(p),
		gate.WithCatalog(a.catalog),
		gate.WithUpgradeURL(a.cfg.UpgradeURL),
	)
	return handler.Templ(section("integrations-api", "API access", content))
}

func section(id, title string, children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="`+templ.EscapeString(id)+`" class="panel"><h2>`+templ.EscapeString(title)+`</h2>`); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</section>`)
		return err
	})
}

func apiAccessPanel(p Profile) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="api-access"><p>Your `+
			templ.EscapeString(p.Plan.DisplayName())+
			` plan includes REST API access.</p><a href="/app/settings/api-keys">Manage API keys</a></div>`)
		return err
	})
}
