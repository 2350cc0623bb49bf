package constants

// Session / context keys
const (
	SessionCookieName = "collab_session"
	ContextKeyUserID  = "user_id"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Authentication
const (
	MinPasswordLength = 8
)
