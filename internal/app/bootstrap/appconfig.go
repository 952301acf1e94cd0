// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: ports, TLS, log level and
// the like live in waffle's CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	JWTSecret   string        // Secret for signing bearer tokens (must be strong in production)
	TokenExpiry time.Duration // Bearer token lifetime (default: 168h)

	// Email/SMTP configuration
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty disables the mailer)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@parishhub.org)
	MailFromName string // From display name (e.g., ParishHub)

	// Image hosting
	ImgurClientID string // imgur anonymous-upload client ID (empty disables uploads)

	// Site identity, used in welcome emails
	SiteName string

	// Base URL for links in outgoing email
	BaseURL string
}
