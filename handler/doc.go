// Package handler adapts typed request handlers to net/http for the folio site.
//
// A HandlerFunc receives a Context and a request struct filled by binders
// (see package binder) and returns a Response. Responses cover the site's
// needs: templ pages, Datastar element patches (Templ, TemplPartial,
// TemplMulti), JSON for the generator API, and Empty for widget requests that
// ask for nothing.
//
//	type worksRequest struct {
//		Sort string `query:"sort"`
//	}
//
//	r.Get("/works", handler.Wrap(func(ctx handler.Context, req worksRequest) handler.Response {
//		return handler.Templ(pages.Works(site, req.Sort))
//	}, handler.WithBinders[handler.Context, worksRequest](binder.BindQuery())))
//
// Errors returned by binders or Render go to the ErrorHandler. NewErrorHandler
// logs them and renders a status page, or a toast patch when the request came
// from Datastar. HTTPError values carry the status code.
package handler
