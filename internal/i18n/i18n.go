// Package i18n picks the language of a request and prints catalog messages in it.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"net/http"
	"strings"
	"time"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the player's language preference.
	LangCookieName = "anime_lang"
)

var supportedTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Match returns the supported tag closest to the preferred tags, or the default.
func Match(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(preferred...)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// ParseTag parses value and maps it onto a supported tag.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	_, index, confidence := tagMatcher.Match(tag)
	if confidence == language.No {
		return language.Und, false
	}
	return supportedTags[index], true
}

// ResolveTag determines the language for the request from the lang query parameter, the language cookie and
// the Accept-Language header, in that order. The bool reports whether the query parameter chose the language
// and should be persisted with [SetLanguageCookie].
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if langValue := strings.TrimSpace(r.URL.Query().Get(LangParam)); langValue != "" {
		if tag, ok := ParseTag(langValue); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return Match(tags...), false
		}
	}

	return Default(), false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
