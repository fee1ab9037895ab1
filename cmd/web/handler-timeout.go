package main

import (
	"fmt"
	"github.com/OPSAF/Anime/internal/contexthelpers"
	"github.com/OPSAF/Anime/internal/i18n"
	"golang.org/x/text/language"
	"html"
	"net/http"
	"time"
)

const timeoutBody = `<html lang="%s">
<head><title>%s</title></head>
<body>
<h1>%s</h1>
<p>%s</p>
<div>
    <a href="/">%s</a>
</div>
</body>
</html>
`

func timeoutPage(tag language.Tag) string {
	p := i18n.Printer(tag)
	title := html.EscapeString(p.Sprintf("ui.timeout_title"))
	return fmt.Sprintf(timeoutBody,
		tag.String(),
		title,
		title,
		html.EscapeString(p.Sprintf("ui.timeout_text")),
		html.EscapeString(p.Sprintf("ui.timeout_back")),
	)
}

// timeoutHandler responds with a 503 Service Unavailable error in the request's language when h does not meet the
// deadline. It has to run after the language middleware.
func timeoutHandler(h http.Handler, timeout time.Duration) http.Handler {
	// The timeout is a little shorter than the server's write timeout so that the
	// timeout handler has a chance to respond before the server closes the connection.
	httpHandlerTimeout := timeout - 500*time.Millisecond //nolint:mnd // 500ms

	byLanguage := make(map[language.Tag]http.Handler, len(i18n.Supported()))
	for _, tag := range i18n.Supported() {
		byLanguage[tag] = http.TimeoutHandler(h, httpHandlerTimeout, timeoutPage(tag))
	}
	fallback := byLanguage[i18n.Default()]

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := byLanguage[contexthelpers.Language(r.Context())]
		if !ok {
			handler = fallback
		}
		handler.ServeHTTP(w, r)
	})
}
