// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; core settings like ports,
// TLS, and log level live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token configuration
	TokenSecret string        // HS256 signing secret (must be strong in production)
	TokenExpiry time.Duration // Session token lifetime

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@issuedeck.io)

	// Base URL the mailed registration / password-reset links point at
	BaseURL string // e.g., "https://issuedeck.io/" or "http://localhost:3000/"

	// Lifetime of the mailed action links
	LinkExpiry time.Duration
}
