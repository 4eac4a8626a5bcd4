package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"
	HeaderAdminKey      = "X-Admin-Key"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"

	// Database table names
	TableApprovedRegistrations = "approved_registrations"
	TableUsers                 = "users"
	TableUserSessions          = "user_sessions"
	TableDeviceLogs            = "device_logs"

	// Device types accepted by the validation layer
	DeviceTypeAndroid = "android"
	DeviceTypeIOS     = "ios"
	DeviceTypeWeb     = "web"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgRateLimited         = "Too many requests. Please try again later."
)

const (
	// Pagination defaults
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
