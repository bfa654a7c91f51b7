package gate

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/surveyguy/surveykit/pkg/entitlement"
)

// Gate renders children when plan has the flag at path. Otherwise it renders
// the fallback component if one is set, or the default upgrade prompt.
// A nil children component renders nothing on success.
func Gate(plan entitlement.Plan, path entitlement.Path, children templ.Component, opts ...Option) templ.Component {
	o := newOptions(opts)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if o.catalog.HasFeature(plan, path) {
			if children == nil {
				return nil
			}
			return children.Render(ctx, w)
		}
		if o.fallback != nil {
			return o.fallback.Render(ctx, w)
		}
		return upgradePrompt(path, entitlement.UpgradeSuggestion(plan, path), o).Render(ctx, w)
	})
}

// UpgradePrompt renders the default upgrade prompt for a denied path.
func UpgradePrompt(plan entitlement.Plan, path entitlement.Path, opts ...Option) templ.Component {
	return upgradePrompt(path, entitlement.UpgradeSuggestion(plan, path), newOptions(opts))
}

func upgradePrompt(path entitlement.Path, s entitlement.Suggestion, o *options) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		fmt.Fprintf(&b, `<div class="upgrade-prompt" data-feature="%s" data-required-plan="%s">`,
			templ.EscapeString(path.String()), templ.EscapeString(s.RequiredPlan.String()))
		fmt.Fprintf(&b, `<p class="upgrade-prompt__message">%s</p>`, templ.EscapeString(s.Message))

		label := templ.EscapeString(s.ButtonLabel())
		if len(o.buttonAttrs) > 0 {
			fmt.Fprintf(&b, `<button type="button" class="upgrade-prompt__button"%s>%s</button>`,
				renderAttrs(o.buttonAttrs), label)
		} else {
			fmt.Fprintf(&b, `<form method="get" action="%s">`, templ.EscapeString(string(templ.URL(o.upgradeURL))))
			fmt.Fprintf(&b, `<button type="submit" class="upgrade-prompt__button">%s</button></form>`, label)
		}
		b.WriteString(`</div>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// renderAttrs writes attributes in key order. Boolean attributes render bare
// when true and are omitted when false.
func renderAttrs(attrs templ.Attributes) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		name := templ.EscapeString(k)
		switch v := attrs[k].(type) {
		case bool:
			if v {
				b.WriteString(" " + name)
			}
		case string:
			fmt.Fprintf(&b, ` %s="%s"`, name, templ.EscapeString(v))
		default:
			fmt.Fprintf(&b, ` %s="%s"`, name, templ.EscapeString(fmt.Sprint(v)))
		}
	}
	return b.String()
}
