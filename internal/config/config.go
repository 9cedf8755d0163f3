// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// exam hub server. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters,
	// password hashing cost and OTP length.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and bearer transport settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for outbound integrations (SMTP, S3).
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background workers.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control security,
// token lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// TokenVersionCheck makes the session gate compare the token version
	// claim with the stored one on every request.
	// Env: APP_TOKEN_VERSION_CHECK
	TokenVersionCheck bool `env:"TOKEN_VERSION_CHECK"`

	// PasswordCost is the bcrypt work factor.
	// Env: APP_PASSWORD_COST
	PasswordCost int `env:"PASSWORD_COST"`

	// OTPBytes is the number of random bytes in a verification code; the
	// code itself is twice as long once hex-encoded.
	// Env: APP_OTP_BYTES
	OTPBytes int `env:"OTP_BYTES"`

	// PublicURL is the externally reachable base URL used in mailed links.
	// Env: APP_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// AdminEmail receives new-registration notifications.
	// Env: APP_ADMIN_EMAIL
	AdminEmail string `env:"ADMIN_EMAIL"`

	// LogLevel is the minimum zerolog level emitted ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenTransport selects where the bearer credential travels:
	// "cookie" or "header".
	// Env: SERVER_TOKEN_TRANSPORT
	TokenTransport string `env:"TOKEN_TRANSPORT"`

	// CookieSecure marks the token cookie Secure and SameSite=None.
	// Env: SERVER_COOKIE_SECURE
	CookieSecure bool `env:"COOKIE_SECURE"`

	// AllowedOrigins lists the CORS origins of the web front end.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns caps the connection pool; requests queue when it is
	// exhausted.
	// Env: STORAGE_DB_MAX_OPEN_CONNS
	MaxOpenConns int `env:"MAX_OPEN_CONNS"`
}

// Adapter holds configuration for outbound integrations.
type Adapter struct {
	SMTP SMTP `envPrefix:"SMTP_"`
	S3   S3   `envPrefix:"S3_"`
}

// SMTP holds the mail relay settings.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT"`
	From     string `env:"FROM"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

// S3 holds object storage settings for profile images. An empty Bucket
// disables image uploads.
type S3 struct {
	Region          string `env:"REGION"`
	EndpointURL     string `env:"ENDPOINT_URL"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Bucket          string `env:"BUCKET"`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// MailQueueSize bounds the asynchronous notification queue.
	// Env: WORKERS_MAIL_QUEUE_SIZE
	MailQueueSize int `env:"MAIL_QUEUE_SIZE"`
}

// Token transports accepted by [Server.TokenTransport].
const (
	TokenTransportCookie = "cookie"
	TokenTransportHeader = "header"
)

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to every field still zero after merging.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
