// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are only consulted when the caller names them: a site served
// directly must not let visitors pick their own address through
// X-Forwarded-For. Headers are tried in the order given and the first valid
// address wins; RemoteAddr is the fallback.
//
//	ip := clientip.FromRequest(r, "CF-Connecting-IP", "X-Forwarded-For")
//
// Middleware stores the resolved address in the request context for the rate
// limiter and the access log.
package clientip
