// Package httpserver runs the folio site over net/http with graceful shutdown.
//
// Server.Run binds the configured address; Server.Serve accepts an existing
// listener, which tests use with port 0. Both block until the context is
// cancelled, an interrupt or SIGTERM arrives, or Shutdown is called, then drain
// in-flight requests within the shutdown timeout. Listen failures are wrapped
// with ErrStart and drain failures with ErrShutdown.
//
// HealthCheckHandler serves the /healthz endpoint.
package httpserver
