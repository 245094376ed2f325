package binder

import "net/http"

// BindQuery binds `query` tagged fields from the URL query string.
// Requests without a query string are reported as ErrBinderNotApplicable.
//
//	type WorksRequest struct {
//		Sort string `query:"sort"`
//	}
func BindQuery() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if r.URL.RawQuery == "" {
			return ErrBinderNotApplicable
		}
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
