// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.ImgurClientID == "" {
		logger.Warn("imgur_client_id not set; instructor creation will fail without image uploads")
	}
	if appCfg.MailSMTPUser == "" && appCfg.MailSMTPHost == "localhost" {
		logger.Info("mailer running against local SMTP (welcome emails best-effort)")
	}
	return nil
}
