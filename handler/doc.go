// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value populated by binders,
// and returns a Response:
//
//	type pricingRequest struct {
//		Plan  string `path:"plan"`
//		Cycle string `query:"cycle"`
//	}
//
//	r.Get("/api/pricing/{plan}", handler.Wrap(
//		func(ctx handler.Context, req pricingRequest) handler.Response {
//			return handler.JSON(pricing)
//		},
//		handler.WithBinders(binder.Path(chi.URLParam), binder.Query()),
//	))
//
// JSON bodies use the JSONResponse envelope. Errors carry an HTTPError in
// their chain to choose the status and code; anything else renders as 500.
// Redirect and Templ responses switch to server-sent events for DataStar
// clients.
package handler
