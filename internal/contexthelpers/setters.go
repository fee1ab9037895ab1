package contexthelpers

import (
	"context"
	"golang.org/x/text/language"
	"net/http"
)

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	ctx := context.WithValue(r.Context(), currentPathContextKey, currentPath)
	return r.WithContext(ctx)
}

func SetCSRFToken(r *http.Request, csrfToken string) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenContextKey, csrfToken)
	return r.WithContext(ctx)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	ctx := context.WithValue(r.Context(), cspNonceContextKey, nonce)
	return r.WithContext(ctx)
}

func SetLanguage(r *http.Request, tag language.Tag) *http.Request {
	ctx := context.WithValue(r.Context(), languageContextKey, tag)
	return r.WithContext(ctx)
}

func SetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}
