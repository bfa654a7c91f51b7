package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type templResponse struct {
	component templ.Component
	status    int
	options   []datastar.PatchElementOption
}

// Render patches the component over SSE for DataStar clients and writes
// HTML otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.component, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.component.Render(r.Context(), w)
}

// Templ renders component as the response.
//
//	return handler.Templ(gate.Gate(plan, entitlement.PathIntegrationsAPI, panel),
//		datastar.WithSelector("#integrations"))
func Templ(component templ.Component, opts ...datastar.PatchElementOption) Response {
	return templResponse{component: component, options: opts}
}

// TemplWithStatus renders component with a non-200 status for plain HTML requests.
func TemplWithStatus(component templ.Component, status int, opts ...datastar.PatchElementOption) Response {
	return templResponse{component: component, status: status, options: opts}
}
