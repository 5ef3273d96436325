package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      *AppConfig
	Database *DatabaseConfig
	Redis    *RedisConfig
	Security *SecurityConfig
	SMTP     *SMTPConfig
	SMS      *SMSConfig
	Push     *PushConfig
	Payment  *PaymentConfig
	Storage  *StorageConfig
	OAuth    *OAuthConfig
	Referral *ReferralConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Port        int
	Host        string
	BaseURL     string
	Debug       bool
	LogLevel    string
	LogFormat   string
	Currency    string
}

type DatabaseConfig struct {
	URI            string
	Database       string
	MaxPoolSize    int
	MinPoolSize    int
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type SecurityConfig struct {
	JWTSecret          string
	JWTAccessTokenTTL  time.Duration
	JWTRefreshTokenTTL time.Duration
	CookieSigningKey   string
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	TrustedProxies     []string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type SMSConfig struct {
	Provider string // twilio, sns
	Twilio   TwilioConfig
	SNS      SNSConfig
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

type SNSConfig struct {
	Region string
}

type PushConfig struct {
	Provider        string // fcm, apns
	FCMCredentials  string
	APNSKeyFile     string
	APNSKeyID       string
	APNSTeamID      string
	APNSTopic       string
	APNSProduction  bool
}

type PaymentConfig struct {
	DefaultProvider string // stripe, razorpay, paypal
	Stripe          StripeConfig
	Razorpay        RazorpayConfig
	PayPal          PayPalConfig
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type RazorpayConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

type PayPalConfig struct {
	ClientID     string
	ClientSecret string
	Mode         string // sandbox, live
}

type StorageConfig struct {
	Provider  string // s3, gcs, local
	S3Bucket  string
	S3Region  string
	GCSBucket string
	GCSCreds  string
	LocalPath string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type ReferralConfig struct {
	DefaultRedirectURL string
	CookieName         string
	ReportPrefix       string
}

func Load() (*Config, error) {
	config := &Config{
		App:      loadAppConfig(),
		Database: loadDatabaseConfig(),
		Redis:    loadRedisConfig(),
		Security: loadSecurityConfig(),
		SMTP:     loadSMTPConfig(),
		SMS:      loadSMSConfig(),
		Push:     loadPushConfig(),
		Payment:  loadPaymentConfig(),
		Storage:  loadStorageConfig(),
		OAuth:    loadOAuthConfig(),
		Referral: loadReferralConfig(),
	}

	return config, nil
}

func loadAppConfig() *AppConfig {
	return &AppConfig{
		Name:        getEnv("APP_NAME", "Mewayz"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnvAsInt("APP_PORT", 8080),
		Host:        getEnv("APP_HOST", "localhost"),
		BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		Debug:       getEnvAsBool("APP_DEBUG", true),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Currency:    getEnv("APP_CURRENCY", "USD"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:       getEnv("MONGODB_DATABASE", "mewayz"),
		MaxPoolSize:    getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
		MinPoolSize:    getEnvAsInt("MONGODB_MIN_POOL_SIZE", 5),
		ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SocketTimeout:  getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
	}
}

func loadRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:         getEnv("REDIS_HOST", "localhost"),
		Port:         getEnvAsInt("REDIS_PORT", 6379),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvAsInt("REDIS_DB", 0),
		PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func loadSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		JWTSecret:          getEnv("JWT_SECRET", "change-me-in-production"),
		JWTAccessTokenTTL:  getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
		JWTRefreshTokenTTL: getEnvAsDuration("JWT_REFRESH_TOKEN_TTL", 7*24*time.Hour),
		CookieSigningKey:   getEnv("COOKIE_SIGNING_KEY", "change-me-in-production"),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
	}
}

func loadSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:      getEnv("SMTP_HOST", ""),
		Port:      getEnvAsInt("SMTP_PORT", 587),
		Username:  getEnv("SMTP_USERNAME", ""),
		Password:  getEnv("SMTP_PASSWORD", ""),
		FromEmail: getEnv("SMTP_FROM_EMAIL", "no-reply@mewayz.com"),
		FromName:  getEnv("SMTP_FROM_NAME", "Mewayz"),
	}
}

func loadSMSConfig() *SMSConfig {
	return &SMSConfig{
		Provider: getEnv("SMS_PROVIDER", "twilio"),
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		},
		SNS: SNSConfig{
			Region: getEnv("AWS_SNS_REGION", "us-east-1"),
		},
	}
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		Provider:       getEnv("PUSH_PROVIDER", "fcm"),
		FCMCredentials: getEnv("FCM_CREDENTIALS_FILE", ""),
		APNSKeyFile:    getEnv("APNS_KEY_FILE", ""),
		APNSKeyID:      getEnv("APNS_KEY_ID", ""),
		APNSTeamID:     getEnv("APNS_TEAM_ID", ""),
		APNSTopic:      getEnv("APNS_TOPIC", "com.mewayz.app"),
		APNSProduction: getEnvAsBool("APNS_PRODUCTION", false),
	}
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		DefaultProvider: getEnv("PAYMENT_PROVIDER", "stripe"),
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Razorpay: RazorpayConfig{
			KeyID:         getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
			WebhookSecret: getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		},
		PayPal: PayPalConfig{
			ClientID:     getEnv("PAYPAL_CLIENT_ID", ""),
			ClientSecret: getEnv("PAYPAL_CLIENT_SECRET", ""),
			Mode:         getEnv("PAYPAL_MODE", "sandbox"),
		},
	}
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		S3Bucket:  getEnv("S3_BUCKET", ""),
		S3Region:  getEnv("S3_REGION", "us-east-1"),
		GCSBucket: getEnv("GCS_BUCKET", ""),
		GCSCreds:  getEnv("GCS_CREDENTIALS_FILE", ""),
		LocalPath: getEnv("LOCAL_STORAGE_PATH", "./exports"),
	}
}

func loadOAuthConfig() *OAuthConfig {
	return &OAuthConfig{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
	}
}

func loadReferralConfig() *ReferralConfig {
	return &ReferralConfig{
		DefaultRedirectURL: getEnv("REFERRAL_REDIRECT_URL", "https://mewayz.com"),
		CookieName:         getEnv("REFERRAL_COOKIE_NAME", "mw_ref"),
		ReportPrefix:       getEnv("REFERRAL_REPORT_PREFIX", "referral-reports"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
