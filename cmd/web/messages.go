package main

// Message keys of the web layer. Texts live in messages_en.go and messages_zh.go.
const (
	msgStillLoading     = "web.still_loading"
	msgFetchingDisabled = "web.fetching_disabled"
)
