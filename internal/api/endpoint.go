package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/kraftfix/kraftfix-api/internal/api/shared"
	"github.com/kraftfix/kraftfix-api/internal/domain"
	"github.com/kraftfix/kraftfix-api/internal/service/auth"
)

// Request is the transport independent view of an HTTP request.
type Request struct {
	Params map[string]string
	Query  url.Values
	// Body is nil when the request carried none.
	Body []byte
}

// Param returns the named path parameter.
func (r Request) Param(name string) string {
	return r.Params[name]
}

// Response is what an endpoint produces. A non-nil Err takes precedence
// over Body and is rendered through HandleAPIError.
type Response struct {
	Status  int
	Body    any
	Cookies []*http.Cookie
	Err     error
}

// Endpoint is a single route's logic. ac is nil on unprotected routes.
type Endpoint func(ctx context.Context, req Request, ac *auth.AuthContext) Response

// OK is a 200 response carrying body.
func OK(body any) Response {
	return Response{Status: http.StatusOK, Body: body}
}

// Fail is an error response.
func Fail(err error) Response {
	return Response{Err: err}
}

// Handle adapts e to an http.HandlerFunc. params names the chi path
// parameters copied into Request.Params.
func Handle(e Endpoint, params ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Params: make(map[string]string, len(params)),
			Query:  r.URL.Query(),
		}
		// chi routes on RawPath when the client escaped the path, leaving
		// the captured segments escaped.
		escaped := r.URL.RawPath != ""
		for _, name := range params {
			value := chi.URLParam(r, name)
			if escaped {
				unescaped, err := url.PathUnescape(value)
				if err != nil {
					HandleAPIError(w, r, domain.NewValidationError(name, "is not a valid path segment", err))
					return
				}
				value = unescaped
			}
			req.Params[name] = value
		}

		if hasBody(r.Method) {
			body, err := shared.ReadBody(r)
			switch {
			case errors.Is(err, shared.ErrEmptyBody):
			case err != nil:
				HandleAPIError(w, r, domain.NewValidationError("body", "could not be read", err))
				return
			default:
				req.Body = body
			}
		}

		resp := e(r.Context(), req, shared.AuthContextFrom(r.Context()))

		for _, c := range resp.Cookies {
			http.SetCookie(w, c)
		}
		if resp.Err != nil {
			HandleAPIError(w, r, resp.Err)
			return
		}
		status := resp.Status
		if status == 0 {
			status = http.StatusOK
		}
		shared.RespondWithJSON(w, r, status, resp.Body)
	}
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
