package main

import (
	"fmt"
	"github.com/OPSAF/Anime/internal/contexthelpers"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/i18n"
	"github.com/OPSAF/Anime/internal/logging"
	"github.com/OPSAF/Anime/internal/random"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/justinas/nosurf"
	"log/slog"
	"mime"
	"net/http"
	"time"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDLength = 16
	nonceLength     = 24
)

// secureHeaders sets the security headers of HTML pages. Scripts need the per-request nonce that the templates
// print with {{nonce}}.
func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := random.Letters(nonceLength)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		r = contexthelpers.SetCSPNonce(r, nonce)

		w.Header().Set("Content-Security-Policy",
			fmt.Sprintf(`script-src 'nonce-%s' 'strict-dynamic' https: http:;
				   object-src 'none';
				   base-uri 'none';`, nonce))

		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, r)
	})
}

func cacheForeverHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

		next.ServeHTTP(w, r)
	})
}

// requestID tags the request with the id sent by a proxy or a fresh one and adds it to every log record.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			var err error
			if id, err = random.Letters(requestIDLength); err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		w.Header().Set(requestIDHeader, id)
		r = contexthelpers.SetRequestID(r, id)
		r = r.WithContext(logging.WithAttrs(r.Context(), slog.String("request_id", id)))

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			start  = time.Now()
			ww     = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			proto  = r.Proto
			method = r.Method
			uri    = r.URL.RequestURI()
		)

		defer func() {
			app.logger.LogAttrs(r.Context(), slog.LevelDebug, "handled request",
				slog.String("proto", proto),
				slog.String("method", method),
				slog.String("uri", uri),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		}()

		next.ServeHTTP(ww, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, r, errors.New("recovered panic", slog.Any("panic", err)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// language resolves the language of the request and remembers an explicit ?lang= choice in a cookie.
func (app *application) language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag, persist := i18n.ResolveTag(r)
		if persist {
			i18n.SetLanguageCookie(w, tag)
		}
		r = contexthelpers.SetLanguage(r, tag)

		next.ServeHTTP(w, r)
	})
}

func commonContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = contexthelpers.SetCurrentPath(r, r.URL.Path)
		r = contexthelpers.SetCSRFToken(r, nosurf.Token(r))
		next.ServeHTTP(w, r)
	})
}

// noSurf implements CSRF protection using https://github.com/justinas/nosurf
func noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   true,
	})

	return csrfHandler
}

// requireJSON rejects state changing API requests that are not JSON. The API carries no CSRF token.
func requireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "expected Content-Type application/json")
			return
		}
		next.ServeHTTP(w, r)
	})
}
