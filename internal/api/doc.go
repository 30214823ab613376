// Package api exposes the marketplace over HTTP.
//
// Each endpoint is a plain function from a Request and an optional
// auth.AuthContext to a Response, independent of the router. Handle binds an
// endpoint to net/http: it collects path parameters, reads the body, passes
// the identity attached by the access guard, and renders the result or the
// mapped error.
package api
