package utils

import "time"

// Application Constants
const (
	AppName    = "Mewayz"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "en"
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128

	// Referral codes
	ReferralCodeLength  = 8
	MinCustomCodeLength = 4
	MaxCustomCodeLength = 20
	CodeInsertRetries   = 5

	// Click tracking
	ClickDedupeWindow    = 24 * time.Hour
	FraudIPClickWindow   = 1 * time.Hour
	FraudSelfReferWindow = 7 * 24 * time.Hour
	FraudIPClickLimit    = 10
	FraudSelfReferLimit  = 5

	// Fraud scoring
	FraudScoreIPVelocity   = 30
	FraudScoreBotAgent     = 50
	FraudScoreSelfReferral = 40
	FraudSuspiciousScore   = 50

	// Referral defaults
	DefaultCookieDurationDays = 30
	DefaultMaxCommission      = 1000.0
	DefaultMinimumPayout      = 50.0
	MaxCommissionRate         = 100.0

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
	ClickRateLimit   = 300

	// Notification
	NotificationRetryAttempts = 3
	NotificationTimeout       = 30 * time.Second

	// Reports
	ReportURLExpiry = 24 * time.Hour
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
)

// Cache Keys
const (
	CacheUserPrefix      = "user:"
	CacheProgramPrefix   = "referral_program:"
	CacheCodePrefix      = "referral_code:"
	CacheClickDedupe     = "refclick:"
	CacheRateLimitPrefix = "rate_limit:"
)

// Event Types
const (
	EventUserRegistered      = "user_registered"
	EventUserLogin           = "user_login"
	EventCodeGenerated       = "referral_code_generated"
	EventClickTracked        = "referral_click_tracked"
	EventConversionRecorded  = "referral_conversion_recorded"
	EventConversionApproved  = "referral_conversion_approved"
	EventConversionCancelled = "referral_conversion_cancelled"
	EventPayoutProcessed     = "referral_payout_processed"
	EventPayoutFailed        = "referral_payout_failed"
)

// Notification Channels
const (
	NotificationPush  = "push"
	NotificationSMS   = "sms"
	NotificationEmail = "email"
)

// Bot keywords checked against click user agents
var BotUserAgentKeywords = []string{"bot", "crawler", "spider", "scraper"}
