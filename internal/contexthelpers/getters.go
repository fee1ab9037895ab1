package contexthelpers

import (
	"context"
	"github.com/OPSAF/Anime/internal/i18n"
	"golang.org/x/text/language"
)

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}

	return currentPath
}

func CSRFToken(ctx context.Context) string {
	csrfToken, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}

	return csrfToken
}

func CSPNonce(ctx context.Context) string {
	nonce, ok := ctx.Value(cspNonceContextKey).(string)
	if !ok {
		return ""
	}

	return nonce
}

// Language returns the language resolved for the request, or the default language.
func Language(ctx context.Context) language.Tag {
	tag, ok := ctx.Value(languageContextKey).(language.Tag)
	if !ok {
		return i18n.Default()
	}

	return tag
}

func RequestID(ctx context.Context) string {
	id, ok := ctx.Value(requestIDContextKey).(string)
	if !ok {
		return ""
	}

	return id
}
