package constants

// Context keys
const (
	ContextTokenData    = "token_data"
	ContextSessionToken = "session_token"
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Auth
const (
	VerificationCodeLength  = 6
	VerificationCodeTTLMin  = 15
	SessionTokenTTLHours    = 72
	InviteTokenLength       = 32
	TokenBlacklistKeyPrefix = "session:blacklist:"
)

// Mail task queue
const (
	MailQueueName    = "mail"
	MailTaskMaxRetry = 5
)
