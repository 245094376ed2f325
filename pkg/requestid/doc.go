// Package requestid tags every site request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID from the client or mints a
// time-ordered UUID, stores it in the request context, and echoes it in the
// response. LoggerExtractor feeds the id into logger.WithContextExtractors so
// every log line written while serving a request carries request_id.
package requestid
