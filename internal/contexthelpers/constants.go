package contexthelpers

type contextKey string

const currentPathContextKey = contextKey("currentPath")
const csrfTokenContextKey = contextKey("csrfToken")
const cspNonceContextKey = contextKey("cspNonce")
const languageContextKey = contextKey("language")
const requestIDContextKey = contextKey("requestID")
